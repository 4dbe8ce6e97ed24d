package partners

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// PartnerRepository интерфейс репозитория партнёров
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) (*domain.Partner, error)
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
	UpdateAvailability(ctx context.Context, id int64, availability bool) error
	UpdateStatus(ctx context.Context, id int64, status domain.PartnerStatus) error
	UpdateLocation(ctx context.Context, id int64, point domain.GeoPoint) error
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
