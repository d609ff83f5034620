package repository

import (
	"context"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	GetByID(ctx context.Context, id valueobject.DocumentID) (*entity.Document, error)
	ListByPatient(ctx context.Context, patientID valueobject.PatientID) ([]*entity.Document, error)
	Update(ctx context.Context, d *entity.Document) error
	Delete(ctx context.Context, id valueobject.DocumentID) error
}
