package valueobject

import (
	"fmt"
	"time"
)

// AppointmentDuration is a validated slot length in minutes: 30-90 inclusive,
// in 15-minute increments. This is the one hard domain invariant enforced
// outside the persistence layer.
type AppointmentDuration struct {
	minutes int
}

const (
	MinAppointmentMinutes = 30
	MaxAppointmentMinutes = 90
	AppointmentIncrement  = 15

	openingHour = 9
	closingHour = 18
)

// NewAppointmentDuration validates minutes. Checks run in order: too short,
// too long, bad increment; only the first failure is reported.
func NewAppointmentDuration(minutes int) (AppointmentDuration, error) {
	if minutes < MinAppointmentMinutes {
		return AppointmentDuration{}, &RangeError{
			Field: "appointment duration", Value: minutes,
			Reason: fmt.Sprintf("too short, minimum is %d minutes", MinAppointmentMinutes),
		}
	}
	if minutes > MaxAppointmentMinutes {
		return AppointmentDuration{}, &RangeError{
			Field: "appointment duration", Value: minutes,
			Reason: fmt.Sprintf("too long, maximum is %d minutes", MaxAppointmentMinutes),
		}
	}
	if minutes%AppointmentIncrement != 0 {
		return AppointmentDuration{}, &RangeError{
			Field: "appointment duration", Value: minutes,
			Reason: fmt.Sprintf("must be a multiple of %d minutes", AppointmentIncrement),
		}
	}
	return AppointmentDuration{minutes: minutes}, nil
}

// DurationForType returns the default duration for an appointment type:
// first consults get the full 90 minutes, check-ups and follow-ups 30,
// anything else 60.
func DurationForType(t AppointmentType) AppointmentDuration {
	switch t {
	case TypeFirstConsult:
		return AppointmentDuration{minutes: 90}
	case TypeCheckUp, TypeFollowUp:
		return AppointmentDuration{minutes: 30}
	default:
		return AppointmentDuration{minutes: 60}
	}
}

// AppointmentType enumerates the bookable visit kinds.
type AppointmentType string

const (
	TypeFirstConsult AppointmentType = "FIRST_CONSULT"
	TypeCheckUp      AppointmentType = "CHECK_UP"
	TypeFollowUp     AppointmentType = "FOLLOW_UP"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case TypeFirstConsult, TypeCheckUp, TypeFollowUp:
		return true
	}
	return false
}

func (d AppointmentDuration) Minutes() int { return d.minutes }

// EndTime returns start plus the slot length.
func (d AppointmentDuration) EndTime(start time.Time) time.Time {
	return start.Add(time.Duration(d.minutes) * time.Minute)
}

// Format renders the duration for humans, e.g. "1h 30m" or "45m".
func (d AppointmentDuration) Format() string {
	if d.minutes < 60 {
		return fmt.Sprintf("%dm", d.minutes)
	}
	if d.minutes%60 == 0 {
		return fmt.Sprintf("%dh", d.minutes/60)
	}
	return fmt.Sprintf("%dh %dm", d.minutes/60, d.minutes%60)
}

// FitsOperatingHours reports whether a slot starting at start stays within
// clinic hours (09:00-18:00). The comparison is hour-granular only.
func (d AppointmentDuration) FitsOperatingHours(start time.Time) bool {
	if start.Hour() < openingHour {
		return false
	}
	end := d.EndTime(start)
	return end.Hour() <= closingHour
}

func (d AppointmentDuration) Equal(other AppointmentDuration) bool {
	return d.minutes == other.minutes
}

func (d AppointmentDuration) Longer(other AppointmentDuration) bool {
	return d.minutes > other.minutes
}
