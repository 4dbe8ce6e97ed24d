package domain

import "time"

// NotificationKind identifies the reason a user is notified
type NotificationKind string

const (
	NotificationBookingAssigned NotificationKind = "booking-assigned"
	NotificationNewBooking      NotificationKind = "new-booking"
	NotificationBookingStatus   NotificationKind = "booking-status"
	NotificationBookingCreated  NotificationKind = "booking-created"
	NotificationPartnerApproved NotificationKind = "partner-approved"
)

// Notification is an in-app message stored for a user
type Notification struct {
	ID               int64
	UserID           int64
	Kind             NotificationKind
	Title            string
	Description      string
	RelatedBookingID *int64
	Metadata         map[string]string
	IsRead           bool
	CreatedAt        time.Time
}
