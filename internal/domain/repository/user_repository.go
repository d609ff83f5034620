package repository

import (
	"context"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// UserRepository defines account persistence. Email uniqueness is enforced by
// the store and surfaced as ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id valueobject.UserID) (*entity.User, error)
	GetByEmail(ctx context.Context, email valueobject.EmailAddress) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
