package repository

import (
	"context"
	"time"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// AppointmentFilter narrows List results; zero fields are ignored.
type AppointmentFilter struct {
	PatientID valueobject.PatientID
	DoctorID  valueobject.DoctorID
	Status    entity.AppointmentStatus
	From      time.Time
	To        time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id valueobject.AppointmentID) (*entity.Appointment, error)
	List(ctx context.Context, f AppointmentFilter) ([]*entity.Appointment, error)
	// Update rewrites the mutable attributes (start, duration, reason,
	// notes), not the status.
	Update(ctx context.Context, a *entity.Appointment) error
	// UpdateStatus persists a status change guarded by the expected current
	// status; a stale expectation yields ErrConflict.
	UpdateStatus(ctx context.Context, id valueobject.AppointmentID, from, to entity.AppointmentStatus) error
	// Delete removes an appointment outright. Only SCHEDULED appointments
	// may be deleted; anything later in the lifecycle is cancelled instead.
	Delete(ctx context.Context, id valueobject.AppointmentID) error
}
