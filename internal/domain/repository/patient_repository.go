package repository

import (
	"context"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByID(ctx context.Context, id valueobject.PatientID) (*entity.Patient, error)
	GetByUserID(ctx context.Context, userID valueobject.UserID) (*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
}
