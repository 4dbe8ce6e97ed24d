package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/middleware"
	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err       error
	lastActor domain.Actor
}

func (s *fakeService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.lastActor = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: "assigned"}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		withActor  bool
		err        error
		wantStatus int
	}{
		{name: "ok", bookingID: "10", withActor: true, wantStatus: http.StatusOK},
		{name: "bad id", bookingID: "abc", withActor: true, wantStatus: http.StatusBadRequest},
		{name: "no actor", bookingID: "10", wantStatus: http.StatusUnauthorized},
		{name: "not found", bookingID: "10", withActor: true, err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", bookingID: "10", withActor: true, err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", bookingID: "10", withActor: true, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			h := NewHandler(svc, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+tt.bookingID, nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.bookingID})
			if tt.withActor {
				req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 3, Role: domain.RoleCustomer}))
			}
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.withActor && tt.bookingID == "10" {
				assert.Equal(t, int64(3), svc.lastActor.UserID)
			}
		})
	}
}
