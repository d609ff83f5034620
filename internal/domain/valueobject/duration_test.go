package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointmentDuration_ValidSteps(t *testing.T) {
	for _, mins := range []int{30, 45, 60, 75, 90} {
		d, err := NewAppointmentDuration(mins)
		require.NoError(t, err, "minutes=%d", mins)
		assert.Equal(t, mins, d.Minutes())
	}
}

func TestNewAppointmentDuration_ChecksRunInOrder(t *testing.T) {
	cases := []struct {
		mins   int
		reason string
	}{
		{29, "too short, minimum is 30 minutes"},
		{15, "too short, minimum is 30 minutes"},
		{91, "too long, maximum is 90 minutes"},
		{120, "too long, maximum is 90 minutes"},
		{40, "must be a multiple of 15 minutes"},
		{50, "must be a multiple of 15 minutes"},
	}
	for _, tc := range cases {
		_, err := NewAppointmentDuration(tc.mins)
		require.Error(t, err, "minutes=%d", tc.mins)

		var rerr *RangeError
		require.ErrorAs(t, err, &rerr, "minutes=%d", tc.mins)
		assert.Equal(t, tc.reason, rerr.Reason, "minutes=%d", tc.mins)
		assert.Equal(t, tc.mins, rerr.Value)
	}
}

func TestDurationForType_Defaults(t *testing.T) {
	assert.Equal(t, 90, DurationForType(TypeFirstConsult).Minutes())
	assert.Equal(t, 30, DurationForType(TypeCheckUp).Minutes())
	assert.Equal(t, 30, DurationForType(TypeFollowUp).Minutes())
	assert.Equal(t, 60, DurationForType(AppointmentType("WALK_IN")).Minutes())
}

func TestAppointmentDuration_EndTime(t *testing.T) {
	d, err := NewAppointmentDuration(45)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, start.Add(45*time.Minute), d.EndTime(start))
}

func TestAppointmentDuration_Format(t *testing.T) {
	cases := map[int]string{
		30: "30m",
		45: "45m",
		60: "1h",
		75: "1h 15m",
		90: "1h 30m",
	}
	for mins, want := range cases {
		d, err := NewAppointmentDuration(mins)
		require.NoError(t, err)
		assert.Equal(t, want, d.Format())
	}
}

func TestAppointmentDuration_FitsOperatingHours(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}
	d90, err := NewAppointmentDuration(90)
	require.NoError(t, err)
	d30, err := NewAppointmentDuration(30)
	require.NoError(t, err)

	assert.True(t, d30.FitsOperatingHours(day(9, 0)))   // opening slot
	assert.True(t, d90.FitsOperatingHours(day(16, 30))) // ends exactly at close
	assert.False(t, d30.FitsOperatingHours(day(8, 30))) // before opening
	assert.False(t, d90.FitsOperatingHours(day(17, 30))) // runs past close
}

func TestAppointmentDuration_Comparisons(t *testing.T) {
	a, err := NewAppointmentDuration(60)
	require.NoError(t, err)
	b, err := NewAppointmentDuration(60)
	require.NoError(t, err)
	c, err := NewAppointmentDuration(30)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Longer(c))
	assert.False(t, c.Longer(a))
}
