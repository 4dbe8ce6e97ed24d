package domain

import "time"

// Assignment defaults
const (
	DefaultMaxRadiusKm        = 50.0
	DefaultJobDurationMinutes = 60
	DefaultJobDuration        = DefaultJobDurationMinutes * time.Minute
	MaxSearchRadiusKm         = 500.0
	MaxJobDurationMinutes     = 24 * 60
)

// Business validation constants
const (
	MinRating              = 1
	MaxRating              = 5
	MaxNotesLength         = 500
	MaxRatingCommentLength = 1000
	MaxCancelReasonLength  = 500
)

// Time format constants
const (
	DateTimeFormat = time.RFC3339
)

// AllStatuses every booking status in lifecycle order
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusUnassigned,
	StatusAssigned,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// PreAssignmentStatuses statuses from which a partner can be assigned
// Guard of the conditional assignment update
var PreAssignmentStatuses = []BookingStatus{
	StatusPending,
	StatusUnassigned,
}

// ScheduleBlockingStatuses statuses in which a booking occupies the partner's time
// Pending, unassigned, completed and cancelled bookings never block
var ScheduleBlockingStatuses = []BookingStatus{
	StatusAssigned,
	StatusInProgress,
}
