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

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

const patientColumns = `id, user_id, first_name, last_name, email, phone, date_of_birth, address, created_at, updated_at`

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, user_id, first_name, last_name, email, phone, date_of_birth, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, p.ID.String(), p.UserID.String(), p.FirstName, p.LastName,
		p.Email.String(), p.PhoneNumber.String(), p.DateOfBirth, p.Address)

	return mapErr(row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *PatientRepository) GetByID(ctx context.Context, id valueobject.PatientID) (*entity.Patient, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id.String()))
}

func (r *PatientRepository) GetByUserID(ctx context.Context, userID valueobject.UserID) (*entity.Patient, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE user_id = $1`, userID.String()))
}

func (r *PatientRepository) Update(ctx context.Context, p *entity.Patient) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
		    date_of_birth = $5, address = $6, updated_at = $7
		WHERE id = $8
	`, p.FirstName, p.LastName, p.Email.String(), p.PhoneNumber.String(),
		p.DateOfBirth, p.Address, p.UpdatedAt, p.ID.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PatientRepository) scanOne(row pgx.Row) (*entity.Patient, error) {
	var (
		id, userID, first, last, email, phone, address string
		dob, created, updated                          time.Time
	)
	if err := row.Scan(&id, &userID, &first, &last, &email, &phone, &dob, &address, &created, &updated); err != nil {
		return nil, mapErr(err)
	}
	pid, err := valueobject.ParsePatientID(id)
	if err != nil {
		return nil, err
	}
	uid, err := valueobject.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	addr, err := valueobject.NewEmailAddress(email)
	if err != nil {
		return nil, err
	}
	pn, err := valueobject.NewPhoneNumber(phone)
	if err != nil {
		return nil, err
	}
	return &entity.Patient{
		ID:          pid,
		UserID:      uid,
		FirstName:   first,
		LastName:    last,
		Email:       addr,
		PhoneNumber: pn,
		DateOfBirth: dob,
		Address:     address,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
