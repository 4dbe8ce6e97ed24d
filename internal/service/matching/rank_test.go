package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	jobStart = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	center   = domain.GeoPoint{Longitude: 174.7633, Latitude: -36.8485}
)

func newBooking() *domain.Booking {
	start := jobStart
	loc := center
	return &domain.Booking{
		ID:              100,
		Status:          domain.StatusPending,
		ServiceLocation: &loc,
		ScheduledDate:   &start,
	}
}

func candidate(id int64, distanceKm float64) domain.PartnerCandidate {
	loc := center
	return domain.PartnerCandidate{
		Partner: domain.Partner{
			ID:           id,
			Name:         "partner",
			Location:     &loc,
			Status:       domain.PartnerActive,
			Availability: true,
		},
		DistanceKm: distanceKm,
	}
}

func commitment(status domain.BookingStatus, at time.Time) *domain.Booking {
	return &domain.Booking{ID: 1, Status: status, ScheduledDate: &at}
}

func ids(r *Result) []int64 {
	out := make([]int64, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		out = append(out, c.Partner.ID)
	}
	return out
}

func TestRank_DistanceOrdering(t *testing.T) {
	pool := []domain.PartnerCandidate{
		candidate(3, 12.5),
		candidate(1, 2.0),
		candidate(2, 7.1),
	}

	result, err := Rank(newBooking(), pool, nil, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, ids(result))
	best, ok := result.Best()
	require.True(t, ok)
	assert.Equal(t, int64(1), best.Partner.ID)
}

func TestRank_TieBrokenByID(t *testing.T) {
	pool := []domain.PartnerCandidate{
		candidate(9, 4.0),
		candidate(4, 4.0),
		candidate(6, 4.0),
	}

	result, err := Rank(newBooking(), pool, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 6, 9}, ids(result))
}

func TestRank_RadiusCutoff(t *testing.T) {
	pool := []domain.PartnerCandidate{
		candidate(1, 49.9),
		candidate(2, 50.0),
		candidate(3, 50.1),
	}

	result, err := Rank(newBooking(), pool, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(result))
}

func TestRank_AvailabilityGate(t *testing.T) {
	unavailable := candidate(1, 1.0)
	unavailable.Partner.Availability = false

	pendingApproval := candidate(2, 1.5)
	pendingApproval.Partner.Status = domain.PartnerPending

	inactive := candidate(3, 2.0)
	inactive.Partner.Status = domain.PartnerInactive

	noLocation := candidate(4, 2.5)
	noLocation.Partner.Location = nil

	pool := []domain.PartnerCandidate{unavailable, pendingApproval, inactive, noLocation, candidate(5, 30)}

	result, err := Rank(newBooking(), pool, nil, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids(result))
}

func TestRank_ConflictExclusion(t *testing.T) {
	pool := []domain.PartnerCandidate{
		candidate(1, 1.0),
		candidate(2, 2.0),
		candidate(3, 3.0),
		candidate(4, 4.0),
	}
	busy := map[int64][]*domain.Booking{
		// пересекается с окном
		1: {commitment(domain.StatusAssigned, jobStart.Add(30*time.Minute))},
		// заканчивается ровно в начале окна
		2: {commitment(domain.StatusAssigned, jobStart.Add(-time.Hour))},
		// начинается ровно в конце окна
		3: {commitment(domain.StatusInProgress, jobStart.Add(time.Hour))},
		4: {commitment(domain.StatusInProgress, jobStart)},
	}

	result, err := Rank(newBooking(), pool, busy, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids(result))
}

func TestRank_TerminalBookingsDoNotBlock(t *testing.T) {
	pool := []domain.PartnerCandidate{candidate(1, 1.0)}
	busy := map[int64][]*domain.Booking{
		1: {
			commitment(domain.StatusCompleted, jobStart),
			commitment(domain.StatusCancelled, jobStart),
		},
	}

	result, err := Rank(newBooking(), pool, busy, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(result))
}

func TestRank_NoCandidates(t *testing.T) {
	result, err := Rank(newBooking(), nil, nil, DefaultConfig())
	require.NoError(t, err)

	_, ok := result.Best()
	assert.False(t, ok)
	assert.Empty(t, result.Candidates)
}

func TestRank_PreconditionFailed(t *testing.T) {
	noLocation := newBooking()
	noLocation.ServiceLocation = nil

	noDate := newBooking()
	noDate.ScheduledDate = nil

	tests := []struct {
		name    string
		booking *domain.Booking
		field   string
	}{
		{name: "no location", booking: noLocation, field: "service_location"},
		{name: "no date", booking: noDate, field: "scheduled_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rank(tt.booking, []domain.PartnerCandidate{candidate(1, 1)}, nil, DefaultConfig())
			require.ErrorIs(t, err, ErrPreconditionFailed)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestRank_ConfigurableDuration(t *testing.T) {
	pool := []domain.PartnerCandidate{candidate(1, 1.0)}
	busy := map[int64][]*domain.Booking{
		1: {commitment(domain.StatusAssigned, jobStart.Add(90*time.Minute))},
	}

	cfg := DefaultConfig()
	result, err := Rank(newBooking(), pool, busy, cfg)
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 1)

	cfg.JobDuration = 2 * time.Hour
	result, err = Rank(newBooking(), pool, busy, cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
}

type fakeIndex struct {
	pool         []domain.PartnerCandidate
	err          error
	radiusMeters float64
}

func (f *fakeIndex) FindNearby(_ context.Context, _ domain.GeoPoint, radiusMeters float64) ([]domain.PartnerCandidate, error) {
	f.radiusMeters = radiusMeters
	return f.pool, f.err
}

type fakeCommitments struct {
	busy  map[int64][]*domain.Booking
	err   error
	calls int
}

func (f *fakeCommitments) Commitments(_ context.Context, partnerID int64, _ domain.JobWindow) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.busy[partnerID], nil
}

func TestMatcher_Match(t *testing.T) {
	index := &fakeIndex{pool: []domain.PartnerCandidate{candidate(1, 1.0), candidate(2, 3.0)}}
	checker := &fakeCommitments{busy: map[int64][]*domain.Booking{
		1: {commitment(domain.StatusAssigned, jobStart)},
	}}

	matcher := NewMatcher(index, checker, Config{}, nopLogger{})

	result, err := matcher.Match(context.Background(), newBooking())
	require.NoError(t, err)

	assert.Equal(t, []int64{2}, ids(result))
	assert.InDelta(t, 50000, index.radiusMeters, 1e-9)
	assert.Equal(t, 2, checker.calls)
}

func TestMatcher_Match_PreconditionSkipsIndex(t *testing.T) {
	index := &fakeIndex{}
	matcher := NewMatcher(index, &fakeCommitments{}, DefaultConfig(), nopLogger{})

	booking := newBooking()
	booking.ScheduledDate = nil

	_, err := matcher.Match(context.Background(), booking)
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Zero(t, index.radiusMeters)
}

func TestMatcher_Match_StorageErrors(t *testing.T) {
	t.Run("geo query", func(t *testing.T) {
		matcher := NewMatcher(&fakeIndex{err: errors.New("db down")}, &fakeCommitments{}, DefaultConfig(), nopLogger{})
		_, err := matcher.Match(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("conflict check", func(t *testing.T) {
		index := &fakeIndex{pool: []domain.PartnerCandidate{candidate(1, 1.0)}}
		matcher := NewMatcher(index, &fakeCommitments{err: errors.New("db down")}, DefaultConfig(), nopLogger{})
		_, err := matcher.Match(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrInternal)
	})
}
