package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusAssigned   BookingStatus = "assigned"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusUnassigned BookingStatus = "unassigned"
)

// PaymentStatus is carried along with the booking, the assignment core never reads it
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a customer's request for a home service
type Booking struct {
	ID           int64
	CustomerID   int64
	CustomerName string

	ServiceType     string
	ServiceAddress  string
	ServiceLocation *GeoPoint
	ScheduledDate   *time.Time

	Status      BookingStatus
	PartnerID   *int64
	PartnerName *string

	PartnerAssignedAt *time.Time
	WorkStartedAt     *time.Time
	WorkCompletedAt   *time.Time
	CancelledAt       *time.Time

	CancellationReason *string

	Price         float64
	PaymentStatus PaymentStatus
	Notes         *string

	CustomerRating *int
	RatingComment  *string
	RatedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true for completed and cancelled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsPreAssignment returns true while the booking is waiting for a partner
func (b *Booking) IsPreAssignment() bool {
	return b.Status == StatusPending || b.Status == StatusUnassigned
}

// IsAssignedTo returns true if the booking is held by the given partner
func (b *Booking) IsAssignedTo(partnerID int64) bool {
	return b.PartnerID != nil && *b.PartnerID == partnerID
}

// CanBeRated returns true if the customer may leave a rating
func (b *Booking) CanBeRated() bool {
	return b.Status == StatusCompleted
}

// BlocksSchedule returns true if the booking occupies its partner's time
func (b *Booking) BlocksSchedule() bool {
	return b.Status == StatusAssigned || b.Status == StatusInProgress
}

// Window returns the job window of the booking
// ok is false when the booking has no scheduled date
func (b *Booking) Window(duration time.Duration) (JobWindow, bool) {
	if b.ScheduledDate == nil {
		return JobWindow{}, false
	}
	return NewJobWindow(*b.ScheduledDate, duration), true
}

// MissingForAssignment lists the fields required by the matcher that are not set
func (b *Booking) MissingForAssignment() []string {
	missing := make([]string, 0, 2)
	if b.ServiceLocation == nil {
		missing = append(missing, "service_location")
	}
	if b.ScheduledDate == nil {
		missing = append(missing, "scheduled_date")
	}
	return missing
}
