package assign_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/matching"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Matcher подбор ранжированных кандидатов
type Matcher interface {
	Match(ctx context.Context, booking *domain.Booking) (*matching.Result, error)
}

// Committer фиксация итога подбора
type Committer interface {
	Commit(ctx context.Context, booking *domain.Booking, candidate matching.Candidate) (assignment.Outcome, error)
	MarkUnassigned(ctx context.Context, booking *domain.Booking) (assignment.Outcome, error)
}

// Metrics учёт итогов назначения
type Metrics interface {
	ObserveAssignment(trigger, outcome string, seconds float64)
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
