package models

import (
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// RateBookingRequest запрос на оценку завершённого бронирования
type RateBookingRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}

// Response модели

// LocationResponse координаты точки
type LocationResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64             `json:"id"`
	CustomerID     int64             `json:"customerId"`
	CustomerName   string            `json:"customerName"`
	ServiceType    string            `json:"serviceType"`
	ServiceAddress string            `json:"serviceAddress"`
	Location       *LocationResponse `json:"location,omitempty"`
	ScheduledDate  *string           `json:"scheduledDate,omitempty"` // ISO 8601 format
	Status         string            `json:"status"`

	PartnerID         *int64  `json:"partnerId,omitempty"`
	PartnerName       *string `json:"partnerName,omitempty"`
	PartnerAssignedAt *string `json:"partnerAssignedAt,omitempty"`
	WorkStartedAt     *string `json:"workStartedAt,omitempty"`
	WorkCompletedAt   *string `json:"workCompletedAt,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	Price         float64 `json:"price"`
	PaymentStatus string  `json:"paymentStatus"`
	Notes         *string `json:"notes,omitempty"`

	CustomerRating *int    `json:"customerRating,omitempty"`
	RatingComment  *string `json:"ratingComment,omitempty"`
	RatedAt        *string `json:"ratedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		CustomerName:       b.CustomerName,
		ServiceType:        b.ServiceType,
		ServiceAddress:     b.ServiceAddress,
		ScheduledDate:      formatTime(b.ScheduledDate),
		Status:             string(b.Status),
		PartnerID:          b.PartnerID,
		PartnerName:        b.PartnerName,
		PartnerAssignedAt:  formatTime(b.PartnerAssignedAt),
		WorkStartedAt:      formatTime(b.WorkStartedAt),
		WorkCompletedAt:    formatTime(b.WorkCompletedAt),
		CancellationReason: b.CancellationReason,
		CancelledAt:        formatTime(b.CancelledAt),
		Price:              b.Price,
		PaymentStatus:      string(b.PaymentStatus),
		Notes:              b.Notes,
		CustomerRating:     b.CustomerRating,
		RatingComment:      b.RatingComment,
		RatedAt:            formatTime(b.RatedAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.ServiceLocation != nil {
		resp.Location = &LocationResponse{
			Longitude: b.ServiceLocation.Longitude,
			Latitude:  b.ServiceLocation.Latitude,
		}
	}

	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(domain.DateTimeFormat)
	return &s
}
