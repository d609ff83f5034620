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

type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

const doctorColumns = `id, first_name, last_name, email, specialization, active, created_at, updated_at`

func (r *DoctorRepository) Create(ctx context.Context, d *entity.Doctor) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (id, first_name, last_name, email, specialization, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, d.ID.String(), d.FirstName, d.LastName, d.Email.String(), d.Specialization, d.Active)

	return mapErr(row.Scan(&d.CreatedAt, &d.UpdatedAt))
}

func (r *DoctorRepository) GetByID(ctx context.Context, id valueobject.DoctorID) (*entity.Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id.String()))
}

func (r *DoctorRepository) GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE email = $1`, email.String()))
}

func (r *DoctorRepository) ListActive(ctx context.Context) ([]*entity.Doctor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE active ORDER BY last_name, first_name`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]*entity.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, mapErr(rows.Err())
}

func (r *DoctorRepository) Update(ctx context.Context, d *entity.Doctor) error {
	d.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE doctors
		SET first_name = $1, last_name = $2, email = $3, specialization = $4,
		    active = $5, updated_at = $6
		WHERE id = $7
	`, d.FirstName, d.LastName, d.Email.String(), d.Specialization, d.Active, d.UpdatedAt, d.ID.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DoctorRepository) Deactivate(ctx context.Context, id valueobject.DoctorID) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE doctors SET active = false, updated_at = now() WHERE id = $1
	`, id.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanDoctor(row pgx.Row) (*entity.Doctor, error) {
	var (
		id, first, last, email, spec string
		active                       bool
		created, updated             time.Time
	)
	if err := row.Scan(&id, &first, &last, &email, &spec, &active, &created, &updated); err != nil {
		return nil, mapErr(err)
	}
	did, err := valueobject.ParseDoctorID(id)
	if err != nil {
		return nil, err
	}
	addr, err := valueobject.NewEmailAddress(email)
	if err != nil {
		return nil, err
	}
	return &entity.Doctor{
		ID:             did,
		FirstName:      first,
		LastName:       last,
		Email:          addr,
		Specialization: spec,
		Active:         active,
		CreatedAt:      created,
		UpdatedAt:      updated,
	}, nil
}

var _ repository.DoctorRepository = (*DoctorRepository)(nil)
