package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

func TestCanTransitionTo_Table(t *testing.T) {
	all := []AppointmentStatus{
		StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow,
	}
	allowed := map[AppointmentStatus]map[AppointmentStatus]bool{
		StatusScheduled:  {StatusInProgress: true, StatusCancelled: true},
		StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransitionTo(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionTo_UnknownStatuses(t *testing.T) {
	assert.False(t, CanTransitionTo(AppointmentStatus("BOGUS"), StatusCompleted))
	assert.False(t, CanTransitionTo(StatusScheduled, AppointmentStatus("BOGUS")))
}

func TestAppointmentStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestAppointment_TransitionGuardsMutation(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}

	require.NoError(t, a.Transition(StatusInProgress))
	assert.Equal(t, StatusInProgress, a.Status)

	require.NoError(t, a.Transition(StatusCompleted))
	assert.Equal(t, StatusCompleted, a.Status)

	err := a.Transition(StatusInProgress)
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, StatusCompleted, a.Status, "failed transition must not mutate")
}

func TestAppointment_EndTime(t *testing.T) {
	dur, err := valueobject.NewAppointmentDuration(60)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	a := &Appointment{StartTime: start, Duration: dur}
	assert.Equal(t, start.Add(time.Hour), a.EndTime())
}
