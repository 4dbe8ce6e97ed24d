package bookings

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Unassign(ctx context.Context, bookingID int64) (bool, error)
	StartWork(ctx context.Context, bookingID, partnerID int64) (bool, error)
	CompleteWork(ctx context.Context, bookingID, partnerID int64) (bool, error)
	Cancel(ctx context.Context, bookingID int64, reason *string) (bool, error)
	Rate(ctx context.Context, bookingID, customerID int64, rating int, comment *string) (bool, error)
}

// Notifier отправка уведомлений без ожидания доставки
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationKind, bookingID int64, payload map[string]string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
