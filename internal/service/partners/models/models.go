package models

import (
	"time"

	"github.com/m04kA/SMC-PartnerAssignment/internal/domain"
)

// Request модели

// CreatePartnerRequest запрос на регистрацию партнёра
type CreatePartnerRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
}

// UpdateAvailabilityRequest запрос на переключение доступности
type UpdateAvailabilityRequest struct {
	Availability bool `json:"availability"`
}

// UpdateLocationRequest запрос на обновление местоположения
type UpdateLocationRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Response модели

// LocationResponse координаты партнёра
type LocationResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// PartnerResponse ответ с данными партнёра
type PartnerResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Location     *LocationResponse `json:"location,omitempty"`
	Status       string            `json:"status"`
	Availability bool              `json:"availability"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// FromDomainPartner конвертирует domain модель в DTO
func FromDomainPartner(p *domain.Partner) *PartnerResponse {
	if p == nil {
		return nil
	}

	resp := &PartnerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Status:       string(p.Status),
		Availability: p.Availability,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if p.Location != nil {
		resp.Location = &LocationResponse{Longitude: p.Location.Longitude, Latitude: p.Location.Latitude}
	}

	return resp
}

// ToDomainPartner конвертирует запрос в нового партнёра, ожидающего одобрения
func (r *CreatePartnerRequest) ToDomainPartner() *domain.Partner {
	p := &domain.Partner{
		Name:   r.Name,
		Email:  r.Email,
		Status: domain.PartnerPending,
	}
	if r.Longitude != nil && r.Latitude != nil {
		p.Location = &domain.GeoPoint{Longitude: *r.Longitude, Latitude: *r.Latitude}
	}
	return p
}
