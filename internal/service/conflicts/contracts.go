package conflicts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// BookingRepository интерфейс чтения обязательств партнёра
type BookingRepository interface {
	ListByPartnerInWindow(
		ctx context.Context,
		partnerID int64,
		statuses []domain.BookingStatus,
		from, to time.Time,
	) ([]*domain.Booking, error)
}
