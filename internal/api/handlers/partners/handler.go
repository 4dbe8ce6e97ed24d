package partners

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers"
	"github.com/m04kA/SMC-PartnerAssignment/internal/api/middleware"
	partnerService "github.com/m04kA/SMC-PartnerAssignment/internal/service/partners"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/partners/models"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнёра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "партнёр не найден"
	msgAlreadyExists      = "партнёр с таким email уже зарегистрирован"
	msgInvalidTransition  = "партнёр уже в этом статусе"
)

// Handler обработчики профиля и статуса партнёра
type Handler struct {
	service PartnerService
	logger  Logger
}

func NewHandler(service PartnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/admin/partners
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "POST /admin/partners"

	var req models.CreatePartnerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	partner, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, 0, err)
		return
	}

	h.logger.Info("%s - Partner registered: partner_id=%d", op, partner.ID)
	handlers.RespondJSON(w, http.StatusCreated, partner)
}

// HandleGet GET /api/v1/admin/partners/{partnerId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "GET /admin/partners/{id}"

	partnerID, ok := h.partnerFromPath(w, r, op)
	if !ok {
		return
	}

	partner, err := h.service.GetByID(r.Context(), partnerID)
	h.respond(w, op, partnerID, partner, err)
}

// HandleApprove PUT /api/v1/admin/partners/{partnerId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /admin/partners/{id}/approve"

	partnerID, ok := h.partnerFromPath(w, r, op)
	if !ok {
		return
	}

	partner, err := h.service.Approve(r.Context(), partnerID)
	h.respond(w, op, partnerID, partner, err)
}

// HandleDeactivate PUT /api/v1/admin/partners/{partnerId}/deactivate
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /admin/partners/{id}/deactivate"

	partnerID, ok := h.partnerFromPath(w, r, op)
	if !ok {
		return
	}

	partner, err := h.service.Deactivate(r.Context(), partnerID)
	h.respond(w, op, partnerID, partner, err)
}

// HandleAvailability PUT /api/v1/partners/me/availability
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /partners/me/availability"

	partnerID, ok := h.currentPartner(w, r, op)
	if !ok {
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	partner, err := h.service.SetAvailability(r.Context(), partnerID, &req)
	h.respond(w, op, partnerID, partner, err)
}

// HandleLocation PUT /api/v1/partners/me/location
func (h *Handler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /partners/me/location"

	partnerID, ok := h.currentPartner(w, r, op)
	if !ok {
		return
	}

	var req models.UpdateLocationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	partner, err := h.service.UpdateLocation(r.Context(), partnerID, &req)
	h.respond(w, op, partnerID, partner, err)
}

// Вспомогательные методы

func (h *Handler) partnerFromPath(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	partnerID, err := handlers.PathID(r, "partnerId")
	if err != nil {
		h.logger.Warn("%s - Invalid partner ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return 0, false
	}
	return partnerID, true
}

// currentPartner ID партнёра совпадает с ID пользователя
func (h *Handler) currentPartner(w http.ResponseWriter, r *http.Request, op string) (int64, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, false
	}
	return userID, true
}

func (h *Handler) respond(w http.ResponseWriter, op string, partnerID int64, partner *models.PartnerResponse, err error) {
	if err != nil {
		h.respondError(w, op, partnerID, err)
		return
	}

	h.logger.Info("%s - partner_id=%d, status=%s, availability=%t", op, partnerID, partner.Status, partner.Availability)
	handlers.RespondJSON(w, http.StatusOK, partner)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, partnerID int64, err error) {
	switch {
	case errors.Is(err, partnerService.ErrPartnerNotFound):
		h.logger.Warn("%s - Partner not found: partner_id=%d", op, partnerID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, partnerService.ErrPartnerAlreadyExists):
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, partnerService.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: partner_id=%d", op, partnerID)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, partnerService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: partner_id=%d, error=%v", op, partnerID, err)
		handlers.RespondInternalError(w)
	}
}
