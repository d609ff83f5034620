package entity

import (
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

// QueueTicket is a short-lived check-in record kept in Redis, not Postgres.
// Tickets are issued at check-in and consumed when the doctor calls the
// patient in.
type QueueTicket struct {
	ID            valueobject.QueueTicketID `json:"id"`
	AppointmentID valueobject.AppointmentID `json:"appointment_id"`
	PatientID     valueobject.PatientID     `json:"patient_id"`
	DoctorID      valueobject.DoctorID      `json:"doctor_id"`
	PatientName   string                    `json:"patient_name"`
	CheckedInAt   time.Time                 `json:"checked_in_at"`
}
