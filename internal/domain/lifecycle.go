package domain

// transitions booking state machine: source -> allowed targets
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusAssigned, StatusUnassigned, StatusCancelled},
	StatusUnassigned: {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusUnassigned, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// SourcesFor returns every status from which the target status is reachable
// Used as the guard of conditional updates
func SourcesFor(to BookingStatus) []BookingStatus {
	sources := make([]BookingStatus, 0, len(transitions))
	for _, from := range AllStatuses {
		if CanTransition(from, to) {
			sources = append(sources, from)
		}
	}
	return sources
}

// IsValidStatus reports whether the value is a known booking status
func IsValidStatus(s BookingStatus) bool {
	_, ok := transitions[s]
	return ok
}
