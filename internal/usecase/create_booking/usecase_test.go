package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	"github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
	"github.com/m04kA/SMC-PartnerAssignment/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	created []*domain.Booking
	err     error
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	copied := *b
	copied.ID = int64(len(r.created) + 1)
	r.created = append(r.created, &copied)
	return &copied, nil
}

type fakeAssigner struct {
	triggers []string
	outcome  assignment.Outcome
	err      error
}

func (a *fakeAssigner) Assign(_ context.Context, b *domain.Booking, trigger string) (*assign_booking.Response, error) {
	a.triggers = append(a.triggers, trigger)
	if a.err != nil {
		return nil, a.err
	}
	updated := *b
	if a.outcome == assignment.OutcomeAssigned {
		updated.Status = domain.StatusAssigned
		updated.PartnerID = ptr.Ptr(int64(5))
	} else {
		updated.Status = domain.StatusUnassigned
	}
	return &assign_booking.Response{Booking: &updated, Outcome: a.outcome}, nil
}

type recordingNotifier struct {
	kinds []domain.NotificationKind
	users []int64
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, kind domain.NotificationKind, _ int64, _ map[string]string) error {
	n.kinds = append(n.kinds, kind)
	n.users = append(n.users, userID)
	return n.err
}

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newUseCase(repo *fakeRepo, assigner *fakeAssigner, notifier *recordingNotifier) *UseCase {
	uc := NewUseCase(repo, assigner, notifier, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	at := now.Add(48 * time.Hour)
	return &Request{
		CustomerID:     3,
		CustomerName:   "Alice",
		ServiceType:    "plumbing",
		ServiceAddress: "1 Queen St, Auckland",
		Longitude:      ptr.Ptr(174.76),
		Latitude:       ptr.Ptr(-36.84),
		ScheduledDate:  &at,
		Price:          120,
	}
}

func TestUseCase_Execute_CreatesAndAssigns(t *testing.T) {
	repo := &fakeRepo{}
	assigner := &fakeAssigner{outcome: assignment.OutcomeAssigned}
	notifier := &recordingNotifier{}
	uc := newUseCase(repo, assigner, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, domain.StatusPending, repo.created[0].Status)
	assert.Equal(t, domain.PaymentPending, repo.created[0].PaymentStatus)
	require.NotNil(t, repo.created[0].ServiceLocation)

	assert.Equal(t, []string{assign_booking.TriggerCreate}, assigner.triggers)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, assignment.OutcomeAssigned, *resp.Outcome)
	assert.Equal(t, domain.StatusAssigned, resp.Booking.Status)
	assert.Nil(t, resp.AssignmentError)

	assert.Equal(t, []domain.NotificationKind{domain.NotificationBookingCreated}, notifier.kinds)
	assert.Equal(t, []int64{3}, notifier.users)
}

func TestUseCase_Execute_AssignmentFailureKeepsBooking(t *testing.T) {
	repo := &fakeRepo{}
	assigner := &fakeAssigner{err: assign_booking.ErrPreconditionFailed}
	uc := newUseCase(repo, assigner, &recordingNotifier{})

	req := validRequest()
	req.Longitude, req.Latitude = nil, nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Booking.Status)
	assert.Nil(t, resp.Outcome)
	require.NotNil(t, resp.AssignmentError)
	assert.Len(t, repo.created, 1)
}

func TestUseCase_Execute_NotifierFailureIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("queue full")}
	uc := newUseCase(&fakeRepo{}, &fakeAssigner{outcome: assignment.OutcomeUnassigned}, notifier)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, assignment.OutcomeUnassigned, *resp.Outcome)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	past := now.Add(-time.Hour)
	longNotes := strings.Repeat("n", domain.MaxNotesLength+1)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no customer", mutate: func(r *Request) { r.CustomerID = 0 }, wantErr: ErrInvalidInput},
		{name: "no customer name", mutate: func(r *Request) { r.CustomerName = " " }, wantErr: ErrInvalidInput},
		{name: "no service type", mutate: func(r *Request) { r.ServiceType = "" }, wantErr: ErrInvalidInput},
		{name: "no address", mutate: func(r *Request) { r.ServiceAddress = "" }, wantErr: ErrInvalidInput},
		{name: "negative price", mutate: func(r *Request) { r.Price = -1 }, wantErr: ErrInvalidInput},
		{name: "notes too long", mutate: func(r *Request) { r.Notes = &longNotes }, wantErr: ErrInvalidInput},
		{name: "half location", mutate: func(r *Request) { r.Latitude = nil }, wantErr: ErrInvalidInput},
		{name: "bad longitude", mutate: func(r *Request) { r.Longitude = ptr.Ptr(181.0) }, wantErr: ErrInvalidInput},
		{name: "date in past", mutate: func(r *Request) { r.ScheduledDate = &past }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			assigner := &fakeAssigner{}
			uc := newUseCase(repo, assigner, &recordingNotifier{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
			assert.Empty(t, assigner.triggers)
		})
	}
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	assigner := &fakeAssigner{}
	uc := newUseCase(&fakeRepo{err: errors.New("db down")}, assigner, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, assigner.triggers)
}
