package manual_assign

import (
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
	manualAssign "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/manual_assign"
)

// ManualAssignRequest HTTP request model
type ManualAssignRequest struct {
	PartnerID int64 `json:"partnerId"`
}

// ManualAssignResponse HTTP response model
type ManualAssignResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Outcome string                  `json:"outcome"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *manualAssign.Response) *ManualAssignResponse {
	return &ManualAssignResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Outcome: string(resp.Outcome),
	}
}
