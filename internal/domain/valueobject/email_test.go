package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailAddress_Normalizes(t *testing.T) {
	e, err := NewEmailAddress("  Jane.Doe@Example.COM ")
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", e.String())
	assert.Equal(t, "jane.doe", e.Username())
	assert.Equal(t, "example.com", e.Domain())
}

func TestNewEmailAddress_Invalid(t *testing.T) {
	cases := []string{
		"",
		"plainstring",
		"@example.com",
		"jane@",
		"jane@nodot",
		"jane doe@example.com",
		"jane@exa mple.com",
	}
	for _, raw := range cases {
		_, err := NewEmailAddress(raw)
		require.Error(t, err, "raw=%q", raw)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr, "raw=%q", raw)
		assert.Equal(t, "email address", ferr.Field)
	}
}

func TestEmailAddress_EqualIgnoresInputCase(t *testing.T) {
	a, err := NewEmailAddress("jane@example.com")
	require.NoError(t, err)
	b, err := NewEmailAddress("JANE@EXAMPLE.COM")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}
