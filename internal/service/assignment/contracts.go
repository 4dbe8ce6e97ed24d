package assignment

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// BookingRepository условные обновления бронирования
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Assign(ctx context.Context, bookingID, partnerID int64, partnerName string) (bool, error)
	MarkUnassigned(ctx context.Context, bookingID int64) (bool, error)
}

// PartnerRepository блокировка строки партнёра на время фиксации назначения
type PartnerRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.Partner, error)
}

// ConflictChecker повторная проверка расписания под блокировкой
type ConflictChecker interface {
	HasConflict(ctx context.Context, partnerID int64, window domain.JobWindow) (bool, error)
}

// Notifier отправка уведомлений без ожидания доставки
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind domain.NotificationKind, bookingID int64, payload map[string]string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
