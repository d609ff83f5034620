package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/internal/interface/middleware"
)

// Wire shapes. Entities keep value objects internally; these flatten them
// into the JSON the clients consume.

type patientDTO struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth string    `json:"date_of_birth"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func patientJSON(p *entity.Patient) patientDTO {
	return patientDTO{
		ID:          p.ID.String(),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email.String(),
		Phone:       p.PhoneNumber.Display(),
		DateOfBirth: p.DateOfBirth.Format("2006-01-02"),
		Address:     p.Address,
		CreatedAt:   p.CreatedAt,
	}
}

type principalDTO struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	Phone  string `json:"phone_number"`
}

func principalJSON(p *application.Principal) principalDTO {
	return principalDTO{
		UserID: p.UserID.String(),
		Role:   string(p.Role),
		Email:  p.Email.String(),
		Phone:  p.PhoneNumber,
	}
}

type doctorDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Active         bool   `json:"active"`
}

func doctorJSON(d *entity.Doctor) doctorDTO {
	return doctorDTO{
		ID:             d.ID.String(),
		Name:           d.FullName(),
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email.String(),
		Specialization: d.Specialization,
		Active:         d.Active,
	}
}

type appointmentDTO struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	DoctorID     string    `json:"doctor_id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	DurationMins int       `json:"duration_minutes"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func appointmentJSON(a *entity.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:           a.ID.String(),
		PatientID:    a.PatientID.String(),
		DoctorID:     a.DoctorID.String(),
		Type:         string(a.Type),
		Status:       string(a.Status),
		StartTime:    a.StartTime,
		EndTime:      a.EndTime(),
		DurationMins: a.Duration.Minutes(),
		Reason:       a.Reason,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}

type documentDTO struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id,omitempty"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	UploadedBy    string    `json:"uploaded_by"`
	FileName      string    `json:"file_name"`
	MIMEType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	Category      string    `json:"category"`
	Shared        bool      `json:"shared"`
	CreatedAt     time.Time `json:"created_at"`
}

func documentJSON(d *entity.Document) documentDTO {
	return documentDTO{
		ID:            d.ID.String(),
		PatientID:     d.PatientID.String(),
		DoctorID:      d.DoctorID.String(),
		AppointmentID: d.AppointmentID.String(),
		UploadedBy:    d.UploadedBy.String(),
		FileName:      d.FileName,
		MIMEType:      d.MIMEType,
		SizeBytes:     d.SizeBytes,
		Category:      string(d.Category),
		Shared:        d.Shared,
		CreatedAt:     d.CreatedAt,
	}
}

// principalFrom rebuilds the caller's identity from the auth middleware
// context keys. The session values were written from validated entities, so
// the identifiers parse back cleanly.
func principalFrom(c *gin.Context) *application.Principal {
	uid, _ := valueobject.ParseUserID(c.GetString(middleware.CtxUserID))
	email, _ := valueobject.NewEmailAddress(c.GetString(middleware.CtxUserEmail))
	return &application.Principal{
		UserID:      uid,
		Role:        entity.Role(c.GetString(middleware.CtxUserRole)),
		Email:       email,
		PhoneNumber: c.GetString(middleware.CtxUserPhone),
	}
}
