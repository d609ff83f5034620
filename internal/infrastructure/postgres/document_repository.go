package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

const documentColumns = `id, patient_id, doctor_id, appointment_id, uploaded_by, file_name, mime_type, size_bytes, storage_key, category, shared, created_at, updated_at`

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *DocumentRepository) Create(ctx context.Context, d *entity.Document) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (id, patient_id, doctor_id, appointment_id, uploaded_by,
		                       file_name, mime_type, size_bytes, storage_key, category, shared)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`, d.ID.String(), d.PatientID.String(), nullable(d.DoctorID.String()), nullable(d.AppointmentID.String()),
		d.UploadedBy.String(), d.FileName, d.MIMEType, d.SizeBytes, d.StorageKey, string(d.Category), d.Shared)

	return mapErr(row.Scan(&d.CreatedAt, &d.UpdatedAt))
}

func (r *DocumentRepository) GetByID(ctx context.Context, id valueobject.DocumentID) (*entity.Document, error) {
	return scanDocument(r.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id.String()))
}

func (r *DocumentRepository) ListByPatient(ctx context.Context, patientID valueobject.PatientID) ([]*entity.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID.String())
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]*entity.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, mapErr(rows.Err())
}

func (r *DocumentRepository) Update(ctx context.Context, d *entity.Document) error {
	d.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE documents
		SET doctor_id = $1, appointment_id = $2, file_name = $3, category = $4, shared = $5, updated_at = $6
		WHERE id = $7
	`, nullable(d.DoctorID.String()), nullable(d.AppointmentID.String()),
		d.FileName, string(d.Category), d.Shared, d.UpdatedAt, d.ID.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id valueobject.DocumentID) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		id, patientID, uploadedBy, fileName, mimeType, storageKey, category string
		doctorID, appointmentID                                             *string
		sizeBytes                                                           int64
		shared                                                              bool
		created, updated                                                    time.Time
	)
	if err := row.Scan(&id, &patientID, &doctorID, &appointmentID, &uploadedBy,
		&fileName, &mimeType, &sizeBytes, &storageKey, &category, &shared, &created, &updated); err != nil {
		return nil, mapErr(err)
	}
	docID, err := valueobject.ParseDocumentID(id)
	if err != nil {
		return nil, err
	}
	pid, err := valueobject.ParsePatientID(patientID)
	if err != nil {
		return nil, err
	}
	uid, err := valueobject.ParseUserID(uploadedBy)
	if err != nil {
		return nil, err
	}
	d := &entity.Document{
		ID:         docID,
		PatientID:  pid,
		UploadedBy: uid,
		FileName:   fileName,
		MIMEType:   mimeType,
		SizeBytes:  sizeBytes,
		StorageKey: storageKey,
		Category:   entity.DocumentCategory(category),
		Shared:     shared,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}
	if doctorID != nil {
		did, err := valueobject.ParseDoctorID(*doctorID)
		if err != nil {
			return nil, err
		}
		d.DoctorID = did
	}
	if appointmentID != nil {
		aid, err := valueobject.ParseAppointmentID(*appointmentID)
		if err != nil {
			return nil, err
		}
		d.AppointmentID = aid
	}
	return d, nil
}

var _ repository.DocumentRepository = (*DocumentRepository)(nil)
