package entity

import (
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// Patient is owned 1:1 by a parent user account. It is never hard-deleted
// while appointments reference it; the store's referential constraints
// enforce that.
type Patient struct {
	ID          valueobject.PatientID
	UserID      valueobject.UserID
	FirstName   string
	LastName    string
	Email       valueobject.EmailAddress
	PhoneNumber valueobject.PhoneNumber
	DateOfBirth time.Time
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
