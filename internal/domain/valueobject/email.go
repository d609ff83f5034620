package valueobject

import (
	"regexp"
	"strings"
)

// EmailAddress is a normalized (lower-cased, trimmed) email. The pattern is
// deliberately permissive, not full RFC 5322.
type EmailAddress struct {
	value string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NewEmailAddress(raw string) (EmailAddress, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(normalized) {
		return EmailAddress{}, &FormatError{
			Field:    "email address",
			Value:    raw,
			Expected: "local@domain.tld",
		}
	}
	return EmailAddress{value: normalized}, nil
}

func (e EmailAddress) String() string { return e.value }

// Username returns the part before the @.
func (e EmailAddress) Username() string {
	return e.value[:strings.LastIndex(e.value, "@")]
}

// Domain returns the part after the @.
func (e EmailAddress) Domain() string {
	return e.value[strings.LastIndex(e.value, "@")+1:]
}

func (e EmailAddress) Equal(other EmailAddress) bool { return e.value == other.value }

func (e EmailAddress) IsZero() bool { return e.value == "" }
