package entity

import (
	"errors"
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// AppointmentStatus lifecycle:
//
//	SCHEDULED → IN_PROGRESS → COMPLETED
//	SCHEDULED → CANCELLED
//	IN_PROGRESS → CANCELLED
//	NO_SHOW, COMPLETED, CANCELLED are terminal
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "SCHEDULED"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"
	StatusNoShow     AppointmentStatus = "NO_SHOW"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are defined from s.
func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransitionTo is a total predicate over the transition table. Unknown
// current or target statuses have no transitions defined and yield false.
func CanTransitionTo(current, target AppointmentStatus) bool {
	for _, s := range allowedTransitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

var ErrInvalidStatusTransition = errors.New("invalid appointment status transition")

type Appointment struct {
	ID        valueobject.AppointmentID
	PatientID valueobject.PatientID
	DoctorID  valueobject.DoctorID
	Type      valueobject.AppointmentType
	Status    AppointmentStatus
	StartTime time.Time
	Duration  valueobject.AppointmentDuration
	Reason    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition is the only status mutation path; it consults the transition
// table so an illegal move cannot be applied in memory.
func (a *Appointment) Transition(target AppointmentStatus) error {
	if !CanTransitionTo(a.Status, target) {
		return ErrInvalidStatusTransition
	}
	a.Status = target
	return nil
}

// EndTime returns the scheduled end of the slot.
func (a *Appointment) EndTime() time.Time {
	return a.Duration.EndTime(a.StartTime)
}
