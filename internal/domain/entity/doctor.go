package entity

import (
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// Doctor is created by staff and deactivated rather than deleted once
// appointments reference it.
type Doctor struct {
	ID             valueobject.DoctorID
	FirstName      string
	LastName       string
	Email          valueobject.EmailAddress
	Specialization string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d *Doctor) FullName() string {
	return "Dr " + d.FirstName + " " + d.LastName
}
