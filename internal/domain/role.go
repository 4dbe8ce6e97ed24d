package domain

// Role of the caller as asserted by the gateway
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RolePartner  Role = "partner"
)

// IsValid reports whether the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RolePartner:
		return true
	}
	return false
}

// Actor identifies who performs an operation
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanView reports whether the actor may read the booking
// Admins see everything, customers their own bookings, partners the bookings assigned to them
func (a Actor) CanView(b *Booking) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleCustomer:
		return b.CustomerID == a.UserID
	case RolePartner:
		return b.IsAssignedTo(a.UserID)
	}
	return false
}
