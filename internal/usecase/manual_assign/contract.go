package manual_assign

import (
	"context"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
)

// Committer ручная фиксация назначения
type Committer interface {
	ManualAssign(ctx context.Context, bookingID, partnerID int64) (*domain.Booking, assignment.Outcome, error)
}

// Metrics учёт итогов назначения
type Metrics interface {
	ObserveAssignment(trigger, outcome string, seconds float64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
