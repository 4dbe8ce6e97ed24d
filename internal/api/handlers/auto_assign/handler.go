package auto_assign

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers"
	assignBooking "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgNotFound           = "бронирование не найдено"
	msgNotAwaiting        = "бронирование не ожидает назначения"
	msgPreconditionFailed = "у бронирования не заполнены адрес или дата"
)

type Handler struct {
	useCase AssignBookingUseCase
	logger  Logger
}

func NewHandler(useCase AssignBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/auto-assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/auto-assign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignBooking.Request{
		BookingID: bookingID,
		Trigger:   assignBooking.TriggerAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignBooking.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/auto-assign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, assignBooking.ErrPreconditionFailed):
			h.logger.Warn("POST /admin/bookings/{id}/auto-assign - Precondition failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, fmt.Sprintf("%s: %v", msgPreconditionFailed, err))

		case errors.Is(err, assignBooking.ErrInvalidTransition):
			h.logger.Warn("POST /admin/bookings/{id}/auto-assign - Not awaiting assignment: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotAwaiting)

		case errors.Is(err, assignBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("POST /admin/bookings/{id}/auto-assign - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/auto-assign - booking_id=%d, outcome=%s", bookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
