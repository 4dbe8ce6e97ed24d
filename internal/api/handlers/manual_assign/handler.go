package manual_assign

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/assignment"
	manualAssign "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/manual_assign"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPartnerID   = "некорректный ID партнёра"
	msgBookingNotFound    = "бронирование не найдено"
	msgPartnerNotFound    = "партнёр не найден"
	msgPartnerNotActive   = "партнёр не активен"
	msgNotAwaiting        = "бронирование не ожидает назначения"
)

type Handler struct {
	useCase ManualAssignUseCase
	logger  Logger
}

func NewHandler(useCase ManualAssignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/bookings/{bookingId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/assign - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ManualAssignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &manualAssign.Request{
		BookingID: bookingID,
		PartnerID: req.PartnerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, manualAssign.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPartnerID)

		case errors.Is(err, assignment.ErrBookingNotFound):
			h.logger.Warn("PUT /admin/bookings/{id}/assign - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, assignment.ErrPartnerNotFound):
			h.logger.Warn("PUT /admin/bookings/{id}/assign - Partner not found: partner_id=%d", req.PartnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, assignment.ErrPartnerNotActive):
			h.logger.Warn("PUT /admin/bookings/{id}/assign - Partner not active: partner_id=%d", req.PartnerID)
			handlers.RespondConflict(w, msgPartnerNotActive)

		case errors.Is(err, assignment.ErrInvalidTransition):
			h.logger.Warn("PUT /admin/bookings/{id}/assign - Not awaiting assignment: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotAwaiting)

		default:
			h.logger.Error("PUT /admin/bookings/{id}/assign - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/bookings/{id}/assign - booking_id=%d, partner_id=%d, outcome=%s",
		bookingID, req.PartnerID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
