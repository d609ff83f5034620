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

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, u.ID.String(), u.Email.String(), u.Password, string(u.Role), u.PhoneNumber.String())

	return mapErr(row.Scan(&u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id valueobject.UserID) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, phone, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id.String()))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, phone, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email.String()))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, phone = $3, updated_at = $4
		WHERE id = $5
	`, u.Email.String(), u.Password, u.PhoneNumber.String(), u.UpdatedAt, u.ID.String())
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*entity.User, error) {
	var (
		id, email, hash, role, phone string
		created, updated             time.Time
	)
	if err := row.Scan(&id, &email, &hash, &role, &phone, &created, &updated); err != nil {
		return nil, mapErr(err)
	}
	return hydrateUser(id, email, hash, role, phone, created, updated)
}

func hydrateUser(id, email, hash, role, phone string, created, updated time.Time) (*entity.User, error) {
	uid, err := valueobject.ParseUserID(id)
	if err != nil {
		return nil, err
	}
	addr, err := valueobject.NewEmailAddress(email)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:        uid,
		Email:     addr,
		Password:  hash,
		Role:      entity.Role(role),
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if phone != "" {
		pn, err := valueobject.NewPhoneNumber(phone)
		if err != nil {
			return nil, err
		}
		u.PhoneNumber = pn
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
