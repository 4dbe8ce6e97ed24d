package domain

import "time"

// JobWindow is the half-open interval [Start, End) a job occupies
type JobWindow struct {
	Start time.Time
	End   time.Time
}

// NewJobWindow builds a window starting at start and lasting duration
func NewJobWindow(start time.Time, duration time.Duration) JobWindow {
	return JobWindow{Start: start, End: start.Add(duration)}
}

// Overlaps reports whether two half-open windows intersect
// Adjacent windows (one ends exactly when the other starts) do not overlap
func (w JobWindow) Overlaps(other JobWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}
