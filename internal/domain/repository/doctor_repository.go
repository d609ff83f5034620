package repository

import (
	"context"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *entity.Doctor) error
	GetByID(ctx context.Context, id valueobject.DoctorID) (*entity.Doctor, error)
	// GetByEmail resolves the doctor record behind a DOCTOR-role login.
	GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.Doctor, error)
	ListActive(ctx context.Context) ([]*entity.Doctor, error)
	Update(ctx context.Context, d *entity.Doctor) error
	// Deactivate flips the active flag; doctors with appointments are never
	// deleted.
	Deactivate(ctx context.Context, id valueobject.DoctorID) error
}
