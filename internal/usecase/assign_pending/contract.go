package assign_pending

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByStatus(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.Booking, error)
}

// Assigner подбор партнёра для одного бронирования
type Assigner interface {
	Assign(ctx context.Context, booking *domain.Booking, trigger string) (*assign_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
