package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusUnassigned, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusUnassigned, StatusAssigned, true},
		{StatusUnassigned, StatusCancelled, true},
		{StatusUnassigned, StatusInProgress, false},
		{StatusAssigned, StatusInProgress, true},
		{StatusAssigned, StatusUnassigned, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusAssigned, StatusCompleted, false},
		{StatusAssigned, StatusAssigned, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusUnassigned, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestSourcesFor(t *testing.T) {
	assert.ElementsMatch(t, PreAssignmentStatuses, SourcesFor(StatusAssigned))
	assert.ElementsMatch(t, []BookingStatus{StatusAssigned}, SourcesFor(StatusInProgress))
	assert.ElementsMatch(t, []BookingStatus{StatusInProgress}, SourcesFor(StatusCompleted))
	assert.ElementsMatch(t,
		[]BookingStatus{StatusPending, StatusUnassigned, StatusAssigned, StatusInProgress},
		SourcesFor(StatusCancelled),
	)
	assert.Empty(t, SourcesFor(StatusPending))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("confirmed"))
}
