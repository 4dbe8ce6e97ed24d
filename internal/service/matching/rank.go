package matching

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/conflicts"
)

// Config параметры подбора
type Config struct {
	MaxRadiusKm float64
	JobDuration time.Duration
}

// DefaultConfig радиус 50 км и работа длительностью один час
func DefaultConfig() Config {
	return Config{
		MaxRadiusKm: domain.DefaultMaxRadiusKm,
		JobDuration: domain.DefaultJobDuration,
	}
}

// Candidate партнёр, прошедший все фильтры
type Candidate struct {
	Partner    domain.Partner
	DistanceKm float64
}

// Result ранжированный список кандидатов, лучший первым
type Result struct {
	Candidates []Candidate
}

// Best возвращает лучшего кандидата, ok=false если кандидатов нет
func (r *Result) Best() (Candidate, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Precondition проверяет, что у бронирования есть всё необходимое для подбора
func Precondition(booking *domain.Booking) error {
	if booking == nil {
		return fmt.Errorf("%w: booking is nil", ErrPreconditionFailed)
	}
	if missing := booking.MissingForAssignment(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrPreconditionFailed, strings.Join(missing, ", "))
	}
	return nil
}

// Rank чистое ядро подбора
// pool снимок партнёров с расстояниями, busy блокирующие бронирования по ID партнёра
// Партнёры вне радиуса, недоступные или занятые в окне работы отбрасываются,
// остальные сортируются по расстоянию, при равенстве по ID
func Rank(booking *domain.Booking, pool []domain.PartnerCandidate, busy map[int64][]*domain.Booking, cfg Config) (*Result, error) {
	if err := Precondition(booking); err != nil {
		return nil, err
	}

	window, _ := booking.Window(cfg.JobDuration)

	candidates := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if !c.Partner.IsAssignable() || c.Partner.Location == nil {
			continue
		}
		if c.DistanceKm > cfg.MaxRadiusKm {
			continue
		}
		if conflicts.Overlaps(window, busy[c.Partner.ID], cfg.JobDuration) {
			continue
		}
		candidates = append(candidates, Candidate{Partner: c.Partner, DistanceKm: c.DistanceKm})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm != candidates[j].DistanceKm {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Partner.ID < candidates[j].Partner.ID
	})

	return &Result{Candidates: candidates}, nil
}
