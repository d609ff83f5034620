package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, doctor_id, type, status, start_time, duration_mins, reason, notes, created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, type, status, start_time, duration_mins, reason, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`, a.ID.String(), a.PatientID.String(), a.DoctorID.String(), string(a.Type),
		string(a.Status), a.StartTime, a.Duration.Minutes(), a.Reason, a.Notes)

	return mapErr(row.Scan(&a.CreatedAt, &a.UpdatedAt))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id valueobject.AppointmentID) (*entity.Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id.String()))
}

func (r *AppointmentRepository) List(ctx context.Context, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.PatientID != "" {
		add("patient_id = $%d", f.PatientID.String())
	}
	if f.DoctorID != "" {
		add("doctor_id = $%d", f.DoctorID.String())
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if !f.From.IsZero() {
		add("start_time >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("start_time < $%d", f.To)
	}

	q := `SELECT ` + appointmentColumns + ` FROM appointments`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY start_time"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]*entity.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}

func (r *AppointmentRepository) Update(ctx context.Context, a *entity.Appointment) error {
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET type = $1, start_time = $2, duration_mins = $3, reason = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`, string(a.Type), a.StartTime, a.Duration.Minutes(), a.Reason, a.Notes, a.UpdatedAt, a.ID.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateStatus is guarded by the expected current status so a concurrent
// transition on the same row loses cleanly instead of overwriting.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id valueobject.AppointmentID, from, to entity.AppointmentStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE appointments SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
	`, string(to), id.String(), string(from))
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		// Distinguish a missing row from a stale status expectation.
		var exists bool
		if qErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id.String(),
		).Scan(&exists); qErr != nil {
			return mapErr(qErr)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	return nil
}

// Delete only removes appointments still in their initial state; later
// lifecycle stages are cancelled, never erased.
func (r *AppointmentRepository) Delete(ctx context.Context, id valueobject.AppointmentID) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM appointments WHERE id = $1 AND status = $2
	`, id.String(), string(entity.StatusScheduled))
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if qErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id.String(),
		).Scan(&exists); qErr != nil {
			return mapErr(qErr)
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	return nil
}

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var (
		id, patientID, doctorID, typ, status, reason, notes string
		durationMins                                        int
		start, created, updated                             time.Time
	)
	if err := row.Scan(&id, &patientID, &doctorID, &typ, &status, &start, &durationMins, &reason, &notes, &created, &updated); err != nil {
		return nil, mapErr(err)
	}
	aid, err := valueobject.ParseAppointmentID(id)
	if err != nil {
		return nil, err
	}
	pid, err := valueobject.ParsePatientID(patientID)
	if err != nil {
		return nil, err
	}
	did, err := valueobject.ParseDoctorID(doctorID)
	if err != nil {
		return nil, err
	}
	dur, err := valueobject.NewAppointmentDuration(durationMins)
	if err != nil {
		return nil, err
	}
	return &entity.Appointment{
		ID:        aid,
		PatientID: pid,
		DoctorID:  did,
		Type:      valueobject.AppointmentType(typ),
		Status:    entity.AppointmentStatus(status),
		StartTime: start,
		Duration:  dur,
		Reason:    reason,
		Notes:     notes,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

var _ repository.AppointmentRepository = (*AppointmentRepository)(nil)
