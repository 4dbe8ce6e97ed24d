package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Assigner подбор партнёра для созданного бронирования
type Assigner interface {
	Assign(ctx context.Context, booking *domain.Booking, trigger string) (*assign_booking.Response, error)
}

// Notifier отправка уведомлений без ожидания доставки
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationKind, bookingID int64, payload map[string]string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
