package matching

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// PartnerIndex геопоиск активных и доступных партнёров
type PartnerIndex interface {
	FindNearby(ctx context.Context, point domain.GeoPoint, radiusMeters float64) ([]domain.PartnerCandidate, error)
}

// CommitmentReader загружает блокирующие бронирования партнёра вокруг окна работы
type CommitmentReader interface {
	Commitments(ctx context.Context, partnerID int64, window domain.JobWindow) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
