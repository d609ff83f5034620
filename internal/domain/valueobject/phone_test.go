package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPhoneNumber_Valid(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"91234567", "91234567"},
		{"+6591234567", "91234567"},
		{"+65 9123 4567", "91234567"},
		{"9123-4567", "91234567"},
		{"  81234567  ", "81234567"},
		{"61234567", "61234567"},
	}
	for _, tc := range cases {
		p, err := NewPhoneNumber(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, p.String(), "raw=%q", tc.raw)
	}
}

func TestNewPhoneNumber_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1234567",    // too short
		"912345678",  // too long
		"71234567",   // bad leading digit
		"+6571234567",
		"+44 9123 4567",
		"9123456a",
	}
	for _, raw := range cases {
		_, err := NewPhoneNumber(raw)
		require.Error(t, err, "raw=%q", raw)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr, "raw=%q", raw)
		assert.Equal(t, "phone number", ferr.Field)
		assert.Equal(t, raw, ferr.Value)
	}
}

func TestPhoneNumber_Renderings(t *testing.T) {
	p, err := NewPhoneNumber("+65 9123 4567")
	require.NoError(t, err)

	assert.Equal(t, "91234567", p.String())
	assert.Equal(t, "+65 9123 4567", p.Display())
	assert.Equal(t, "+6591234567", p.SMS())
}

func TestPhoneNumber_SMSFormRoundTrips(t *testing.T) {
	p, err := NewPhoneNumber("81234567")
	require.NoError(t, err)

	again, err := NewPhoneNumber(p.SMS())
	require.NoError(t, err)
	assert.True(t, p.Equal(again))
}

func TestPhoneNumber_IsZero(t *testing.T) {
	assert.True(t, PhoneNumber{}.IsZero())

	p, err := NewPhoneNumber("91234567")
	require.NoError(t, err)
	assert.False(t, p.IsZero())
}
