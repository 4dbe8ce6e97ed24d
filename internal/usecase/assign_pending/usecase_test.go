package assign_pending

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListByStatus(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.Booking, error) {
	args := m.Called(ctx, status, limit)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAssigner struct {
	mock.Mock
}

func (m *mockAssigner) Assign(ctx context.Context, booking *domain.Booking, trigger string) (*assign_booking.Response, error) {
	args := m.Called(ctx, booking.ID, trigger)
	if v := args.Get(0); v != nil {
		return v.(*assign_booking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func outcome(o assignment.Outcome) *assign_booking.Response {
	return &assign_booking.Response{Outcome: o}
}

func TestUseCase_Execute_Summary(t *testing.T) {
	repo := new(mockRepo)
	assigner := new(mockAssigner)

	bookings := []*domain.Booking{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	repo.On("ListByStatus", mock.Anything, domain.StatusPending, MaxBatchSize).Return(bookings, nil)

	assigner.On("Assign", mock.Anything, int64(1), assign_booking.TriggerBulk).Return(outcome(assignment.OutcomeAssigned), nil)
	assigner.On("Assign", mock.Anything, int64(2), assign_booking.TriggerBulk).Return(outcome(assignment.OutcomeUnassigned), nil)
	assigner.On("Assign", mock.Anything, int64(3), assign_booking.TriggerBulk).Return(outcome(assignment.OutcomeLostRace), nil)
	assigner.On("Assign", mock.Anything, int64(4), assign_booking.TriggerBulk).Return(nil, assign_booking.ErrPreconditionFailed)
	assigner.On("Assign", mock.Anything, int64(5), assign_booking.TriggerBulk).Return(outcome(assignment.OutcomeAssigned), nil)

	uc := NewUseCase(repo, assigner, nopLogger{})

	resp, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, &Response{Attempted: 5, Assigned: 2, Unassigned: 1, LostRace: 1, Failed: 1}, resp)
	repo.AssertExpectations(t)
	assigner.AssertExpectations(t)
}

func TestUseCase_Execute_LimitAndTrigger(t *testing.T) {
	repo := new(mockRepo)
	assigner := new(mockAssigner)

	repo.On("ListByStatus", mock.Anything, domain.StatusPending, 10).Return([]*domain.Booking{{ID: 1}}, nil)
	assigner.On("Assign", mock.Anything, int64(1), assign_booking.TriggerScheduler).Return(outcome(assignment.OutcomeAssigned), nil)

	uc := NewUseCase(repo, assigner, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Limit: 10, Trigger: assign_booking.TriggerScheduler})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Assigned)
	assigner.AssertExpectations(t)
}

func TestUseCase_Execute_InvalidLimit(t *testing.T) {
	uc := NewUseCase(new(mockRepo), new(mockAssigner), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Limit: MaxBatchSize + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_ListError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("ListByStatus", mock.Anything, domain.StatusPending, MaxBatchSize).Return(nil, errors.New("db down"))

	uc := NewUseCase(repo, new(mockAssigner), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUseCase_Execute_StopsOnCancelledContext(t *testing.T) {
	repo := new(mockRepo)
	assigner := new(mockAssigner)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo.On("ListByStatus", mock.Anything, domain.StatusPending, MaxBatchSize).Return([]*domain.Booking{{ID: 1}, {ID: 2}}, nil)

	uc := NewUseCase(repo, assigner, nopLogger{})

	resp, err := uc.Execute(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, resp.Attempted)
	assigner.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything)
}
