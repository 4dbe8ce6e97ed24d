package booking_lifecycle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers"
	"github.com/m04kA/SMC-PartnerAssignment/internal/api/middleware"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "переход из текущего статуса невозможен"
	msgNotCompleted       = "оценить можно только завершённое бронирование"
)

// Handler обработчики смены статуса бронирования
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleStartWork PUT /api/v1/bookings/{bookingId}/work-started
func (h *Handler) HandleStartWork(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /bookings/{id}/work-started"

	bookingID, partnerID, ok := h.bookingAndUser(w, r, op)
	if !ok {
		return
	}

	booking, err := h.service.StartWork(r.Context(), bookingID, partnerID)
	h.respond(w, op, bookingID, booking, err)
}

// HandleCompleteWork PUT /api/v1/bookings/{bookingId}/work-completed
func (h *Handler) HandleCompleteWork(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /bookings/{id}/work-completed"

	bookingID, partnerID, ok := h.bookingAndUser(w, r, op)
	if !ok {
		return
	}

	booking, err := h.service.CompleteWork(r.Context(), bookingID, partnerID)
	h.respond(w, op, bookingID, booking, err)
}

// HandleRate PUT /api/v1/bookings/{bookingId}/rate
func (h *Handler) HandleRate(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /bookings/{id}/rate"

	bookingID, customerID, ok := h.bookingAndUser(w, r, op)
	if !ok {
		return
	}

	var req models.RateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Rate(r.Context(), bookingID, customerID, &req)
	h.respond(w, op, bookingID, booking, err)
}

// HandleUnassign PATCH /api/v1/admin/bookings/{bookingId}/unassign
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /admin/bookings/{id}/unassign"

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Unassign(r.Context(), bookingID)
	h.respond(w, op, bookingID, booking, err)
}

// HandleCancel PATCH /api/v1/admin/bookings/{bookingId}/cancel
// Тело запроса необязательно
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	const op = "PATCH /admin/bookings/{id}/cancel"

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("%s - Invalid request body: %v", op, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, &req)
	h.respond(w, op, bookingID, booking, err)
}

// Вспомогательные методы

func (h *Handler) bookingAndUser(w http.ResponseWriter, r *http.Request, op string) (int64, int64, bool) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, 0, false
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return bookingID, userID, true
}

func (h *Handler) respond(w http.ResponseWriter, op string, bookingID int64, booking *models.BookingResponse, err error) {
	if err == nil {
		h.logger.Info("%s - booking_id=%d, status=%s", op, bookingID, booking.Status)
		handlers.RespondJSON(w, http.StatusOK, booking)
		return
	}

	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%d", op, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: booking_id=%d", op, bookingID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, bookings.ErrNotCompleted):
		h.logger.Warn("%s - Booking not completed: booking_id=%d", op, bookingID)
		handlers.RespondConflict(w, msgNotCompleted)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: booking_id=%d, error=%v", op, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
