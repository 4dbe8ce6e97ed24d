package assign_pending

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PartnerAssignment/internal/api/handlers"
	assignBooking "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
	assignPending "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_pending"
)

const msgInvalidLimit = "некорректный параметр limit"

type Handler struct {
	useCase AssignPendingUseCase
	logger  Logger
}

func NewHandler(useCase AssignPendingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/assign-pending?limit=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("POST /admin/bookings/assign-pending - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &assignPending.Request{
		Limit:   limit,
		Trigger: assignBooking.TriggerBulk,
	})
	if err != nil {
		if errors.Is(err, assignPending.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		h.logger.Error("POST /admin/bookings/assign-pending - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/bookings/assign-pending - attempted=%d, assigned=%d", result.Attempted, result.Assigned)
	handlers.RespondJSON(w, http.StatusOK, result)
}
