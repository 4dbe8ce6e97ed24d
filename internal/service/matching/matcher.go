package matching

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Matcher подбирает партнёров для бронирования, ничего не изменяя
type Matcher struct {
	index   PartnerIndex
	checker CommitmentReader
	cfg     Config
	logger  Logger
}

// NewMatcher создает подборщик партнёров
func NewMatcher(index PartnerIndex, checker CommitmentReader, cfg Config, logger Logger) *Matcher {
	if cfg.MaxRadiusKm <= 0 {
		cfg.MaxRadiusKm = domain.DefaultMaxRadiusKm
	}
	if cfg.JobDuration <= 0 {
		cfg.JobDuration = domain.DefaultJobDuration
	}
	return &Matcher{
		index:   index,
		checker: checker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Match возвращает ранжированных кандидатов для бронирования
func (m *Matcher) Match(ctx context.Context, booking *domain.Booking) (*Result, error) {
	if err := Precondition(booking); err != nil {
		m.logger.Warn("Match: booking id=%d rejected: %v", bookingID(booking), err)
		return nil, err
	}

	window, _ := booking.Window(m.cfg.JobDuration)

	pool, err := m.index.FindNearby(ctx, *booking.ServiceLocation, m.cfg.MaxRadiusKm*1000)
	if err != nil {
		m.logger.Error("Match: geo query failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Match - geo query: %v", ErrInternal, err)
	}

	busy := make(map[int64][]*domain.Booking, len(pool))
	for _, c := range pool {
		commitments, err := m.checker.Commitments(ctx, c.Partner.ID, window)
		if err != nil {
			m.logger.Error("Match: conflict check failed for booking id=%d partner=%d: %v", booking.ID, c.Partner.ID, err)
			return nil, fmt.Errorf("%w: Match - conflict check: %v", ErrInternal, err)
		}
		busy[c.Partner.ID] = commitments
	}

	result, err := Rank(booking, pool, busy, m.cfg)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Match: booking id=%d nearby=%d eligible=%d", booking.ID, len(pool), len(result.Candidates))
	return result, nil
}

func bookingID(b *domain.Booking) int64 {
	if b == nil {
		return 0
	}
	return b.ID
}
