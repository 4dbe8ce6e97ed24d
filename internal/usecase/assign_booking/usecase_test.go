package assign_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PartnerAssignment/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/matching"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

type fakeMatcher struct {
	result *matching.Result
	err    error
	calls  int
}

func (m *fakeMatcher) Match(_ context.Context, b *domain.Booking) (*matching.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if err := matching.Precondition(b); err != nil {
		return nil, err
	}
	return m.result, nil
}

type fakeCommitter struct {
	repo       *fakeRepo
	reject     map[int64]bool
	lostRace   bool
	commitErr  error
	committed  []int64
	unassigned int
}

func (c *fakeCommitter) Commit(_ context.Context, b *domain.Booking, candidate matching.Candidate) (assignment.Outcome, error) {
	c.committed = append(c.committed, candidate.Partner.ID)
	if c.commitErr != nil {
		return "", c.commitErr
	}
	if c.reject[candidate.Partner.ID] {
		return "", fmt.Errorf("%w: busy", assignment.ErrCandidateRejected)
	}
	if c.lostRace {
		return assignment.OutcomeLostRace, nil
	}
	stored := c.repo.bookings[b.ID]
	stored.Status = domain.StatusAssigned
	id := candidate.Partner.ID
	stored.PartnerID = &id
	return assignment.OutcomeAssigned, nil
}

func (c *fakeCommitter) MarkUnassigned(_ context.Context, b *domain.Booking) (assignment.Outcome, error) {
	c.unassigned++
	c.repo.bookings[b.ID].Status = domain.StatusUnassigned
	return assignment.OutcomeUnassigned, nil
}

type observed struct {
	trigger string
	outcome string
}

type fakeMetrics struct {
	observed []observed
}

func (m *fakeMetrics) ObserveAssignment(trigger, outcome string, _ float64) {
	m.observed = append(m.observed, observed{trigger: trigger, outcome: outcome})
}

func pending(id int64) *domain.Booking {
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              id,
		Status:          domain.StatusPending,
		ServiceLocation: &domain.GeoPoint{Longitude: 174.76, Latitude: -36.84},
		ScheduledDate:   &at,
	}
}

func candidates(ids ...int64) *matching.Result {
	r := &matching.Result{}
	for i, id := range ids {
		r.Candidates = append(r.Candidates, matching.Candidate{
			Partner:    domain.Partner{ID: id, Status: domain.PartnerActive, Availability: true},
			DistanceKm: float64(i + 1),
		})
	}
	return r
}

type fixture struct {
	repo      *fakeRepo
	matcher   *fakeMatcher
	committer *fakeCommitter
	metrics   *fakeMetrics
	uc        *UseCase
}

func newFixture(result *matching.Result, bookings ...*domain.Booking) *fixture {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	f := &fixture{
		repo:      repo,
		matcher:   &fakeMatcher{result: result},
		committer: &fakeCommitter{repo: repo, reject: map[int64]bool{}},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(repo, f.matcher, f.committer, f.metrics, nopLogger{})
	return f
}

func TestUseCase_Execute_AssignsBest(t *testing.T) {
	f := newFixture(candidates(4, 7), pending(1))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Trigger: TriggerAdmin})
	require.NoError(t, err)

	assert.Equal(t, assignment.OutcomeAssigned, resp.Outcome)
	require.NotNil(t, resp.PartnerID)
	assert.Equal(t, int64(4), *resp.PartnerID)
	assert.Equal(t, domain.StatusAssigned, resp.Booking.Status)
	assert.Equal(t, []int64{4}, f.committer.committed)
	assert.Equal(t, []observed{{trigger: TriggerAdmin, outcome: "assigned"}}, f.metrics.observed)
}

func TestUseCase_Execute_AdvancesPastRejected(t *testing.T) {
	f := newFixture(candidates(4, 7, 9), pending(1))
	f.committer.reject[4] = true
	f.committer.reject[7] = true

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Trigger: TriggerAdmin})
	require.NoError(t, err)

	assert.Equal(t, assignment.OutcomeAssigned, resp.Outcome)
	assert.Equal(t, int64(9), *resp.PartnerID)
	assert.Equal(t, 2, resp.Rejected)
	assert.Equal(t, []int64{4, 7, 9}, f.committer.committed)
}

func TestUseCase_Execute_AllRejectedMarksUnassigned(t *testing.T) {
	f := newFixture(candidates(4), pending(1))
	f.committer.reject[4] = true

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeUnassigned, resp.Outcome)
	assert.Equal(t, 1, f.committer.unassigned)
}

func TestUseCase_Execute_NoCandidates(t *testing.T) {
	f := newFixture(candidates(), pending(1))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1, Trigger: TriggerBulk})
	require.NoError(t, err)

	assert.Equal(t, assignment.OutcomeUnassigned, resp.Outcome)
	assert.Nil(t, resp.PartnerID)
	assert.Equal(t, domain.StatusUnassigned, resp.Booking.Status)
	assert.Empty(t, f.committer.committed)
	assert.Equal(t, []observed{{trigger: TriggerBulk, outcome: "unassigned"}}, f.metrics.observed)
}

func TestUseCase_Execute_LostRace(t *testing.T) {
	f := newFixture(candidates(4, 7), pending(1))
	f.committer.lostRace = true

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeLostRace, resp.Outcome)
	assert.Nil(t, resp.PartnerID)
	assert.Equal(t, []int64{4}, f.committer.committed)
	assert.Zero(t, f.committer.unassigned)
}

func TestUseCase_Execute_RerunOnAssignedIsRejected(t *testing.T) {
	b := pending(1)
	b.Status = domain.StatusAssigned
	f := newFixture(candidates(4), b)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Zero(t, f.matcher.calls)
	assert.Empty(t, f.committer.committed)
}

func TestUseCase_Execute_PreconditionFailed(t *testing.T) {
	b := pending(1)
	b.ServiceLocation = nil
	f := newFixture(candidates(4), b)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
	require.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Contains(t, err.Error(), "service_location")
	assert.Equal(t, domain.StatusPending, f.repo.bookings[1].Status)
	assert.Equal(t, []observed{{outcome: "precondition_failed"}}, f.metrics.observed)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(candidates())
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newFixture(candidates())
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("matcher failure", func(t *testing.T) {
		f := newFixture(candidates(), pending(1))
		f.matcher.err = errors.New("db down")
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, domain.StatusPending, f.repo.bookings[1].Status)
	})

	t.Run("commit failure", func(t *testing.T) {
		f := newFixture(candidates(4), pending(1))
		f.committer.commitErr = fmt.Errorf("%w: db down", assignment.ErrInternal)
		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 1})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []observed{{outcome: "error"}}, f.metrics.observed)
	})
}
