package domain

import "time"

// PartnerStatus represents the approval state of a partner account
type PartnerStatus string

const (
	PartnerActive   PartnerStatus = "active"
	PartnerPending  PartnerStatus = "pending"
	PartnerInactive PartnerStatus = "inactive"
)

// Partner is an independent service provider who receives bookings
type Partner struct {
	ID           int64
	Name         string
	Email        string
	Location     *GeoPoint
	Status       PartnerStatus
	Availability bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive returns true once the partner is approved and not deactivated
func (p *Partner) IsActive() bool {
	return p.Status == PartnerActive
}

// IsAssignable returns true if the partner can receive automatic assignments
func (p *Partner) IsAssignable() bool {
	return p.IsActive() && p.Availability
}

// PartnerCandidate is a partner annotated with its distance to a service location
type PartnerCandidate struct {
	Partner    Partner
	DistanceKm float64
}
