package valueobject

import "fmt"

// FormatError reports an input that did not match the required pattern.
// Expected carries a human-readable description of the pattern.
type FormatError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Value, e.Expected)
}

// RangeError reports a numeric value outside its allowed bounds or with a
// wrong increment.
type RangeError struct {
	Field  string
	Value  int
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}
