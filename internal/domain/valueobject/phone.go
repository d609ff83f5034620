package valueobject

import (
	"regexp"
	"strings"
)

// PhoneNumber is a Singapore mobile number. The canonical form (String) is
// the 8-digit local number without country code; Display and SMS render the
// +65 variants. Singapore mobile numbers start with 6, 8 or 9.
type PhoneNumber struct {
	digits string
}

var phonePattern = regexp.MustCompile(`^(\+65)?[689]\d{7}$`)

// NewPhoneNumber validates and normalizes a raw phone string. Whitespace and
// hyphens are stripped before matching, so "+65 9123-4567" is accepted.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(strings.TrimSpace(raw))
	if !phonePattern.MatchString(cleaned) {
		return PhoneNumber{}, &FormatError{
			Field:    "phone number",
			Value:    raw,
			Expected: "a Singapore mobile number (+65 optional, 8 digits starting with 6, 8 or 9)",
		}
	}
	digits := strings.TrimPrefix(cleaned, "+65")
	// The pattern above already pins the first digit; keep the guard so a
	// future pattern edit cannot silently admit landline prefixes.
	switch digits[0] {
	case '6', '8', '9':
	default:
		return PhoneNumber{}, &FormatError{
			Field:    "phone number",
			Value:    raw,
			Expected: "a mobile number starting with 6, 8 or 9",
		}
	}
	return PhoneNumber{digits: digits}, nil
}

// String returns the canonical storage form: 8 local digits, no country code.
func (p PhoneNumber) String() string { return p.digits }

// Display returns the number formatted for humans: +65 XXXX XXXX.
func (p PhoneNumber) Display() string {
	return "+65 " + p.digits[:4] + " " + p.digits[4:]
}

// SMS returns the E.164 form expected by SMS gateways: +65XXXXXXXX.
func (p PhoneNumber) SMS() string { return "+65" + p.digits }

func (p PhoneNumber) Equal(other PhoneNumber) bool { return p.digits == other.digits }

func (p PhoneNumber) IsZero() bool { return p.digits == "" }
