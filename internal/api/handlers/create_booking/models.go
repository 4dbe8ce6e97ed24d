package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
	"github.com/m04kA/SMC-PartnerAssignment/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-PartnerAssignment/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID     *int64   `json:"customerId,omitempty"` // только для администратора
	CustomerName   string   `json:"customerName"`
	ServiceType    string   `json:"serviceType"`
	ServiceAddress string   `json:"serviceAddress"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	ScheduledDate  *string  `json:"scheduledDate,omitempty"` // "2025-10-15T10:00:00Z"
	Price          float64  `json:"price"`
	Notes          *string  `json:"notes,omitempty"`
}

// AssignmentResponse итог автоматического подбора
type AssignmentResponse struct {
	Outcome *string `json:"outcome,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking    *models.BookingResponse `json:"booking"`
	Assignment AssignmentResponse      `json:"assignment"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	var scheduled *time.Time
	if r.ScheduledDate != nil {
		t, err := time.Parse(domain.DateTimeFormat, *r.ScheduledDate)
		if err != nil {
			return nil, err
		}
		scheduled = &t
	}

	return &createBooking.Request{
		CustomerID:     customerID,
		CustomerName:   r.CustomerName,
		ServiceType:    r.ServiceType,
		ServiceAddress: r.ServiceAddress,
		Longitude:      r.Longitude,
		Latitude:       r.Latitude,
		ScheduledDate:  scheduled,
		Price:          r.Price,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Assignment: AssignmentResponse{
			Error: resp.AssignmentError,
		},
	}
	if resp.Outcome != nil {
		outcome := string(*resp.Outcome)
		out.Assignment.Outcome = &outcome
	}
	return out
}
