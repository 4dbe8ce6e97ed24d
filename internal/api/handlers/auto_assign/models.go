package auto_assign

import (
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
	assignBooking "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/assign_booking"
)

// AssignResponse HTTP response model
type AssignResponse struct {
	Booking    *models.BookingResponse `json:"booking"`
	Outcome    string                  `json:"outcome"`
	PartnerID  *int64                  `json:"partnerId,omitempty"`
	DistanceKm *float64                `json:"distanceKm,omitempty"`
	Candidates int                     `json:"candidates"`
	Rejected   int                     `json:"rejected"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *assignBooking.Response) *AssignResponse {
	return &AssignResponse{
		Booking:    models.FromDomainBooking(resp.Booking),
		Outcome:    string(resp.Outcome),
		PartnerID:  resp.PartnerID,
		DistanceKm: resp.DistanceKm,
		Candidates: resp.Candidates,
		Rejected:   resp.Rejected,
	}
}
