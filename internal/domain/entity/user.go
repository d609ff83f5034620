package entity

import (
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// Role is a flat authorization role; access rules are boolean predicates over
// these, not a policy engine.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleStaff   Role = "STAFF"
)

func (r Role) IsValid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleStaff:
		return true
	}
	return false
}

// User is the account aggregate; passwords are stored as bcrypt hashes.
type User struct {
	ID          valueobject.UserID
	Email       valueobject.EmailAddress
	Password    string
	Role        Role
	PhoneNumber valueobject.PhoneNumber
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
