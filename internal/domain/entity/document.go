package entity

import (
	"time"

	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

type DocumentCategory string

const (
	CategoryLabResult    DocumentCategory = "LAB_RESULT"
	CategoryPrescription DocumentCategory = "PRESCRIPTION"
	CategoryReferral     DocumentCategory = "REFERRAL"
	CategoryImaging      DocumentCategory = "IMAGING"
	CategoryOther        DocumentCategory = "OTHER"
)

func (c DocumentCategory) IsValid() bool {
	switch c {
	case CategoryLabResult, CategoryPrescription, CategoryReferral, CategoryImaging, CategoryOther:
		return true
	}
	return false
}

// Document is the metadata record for an uploaded file; the bytes live in
// object storage under StorageKey.
type Document struct {
	ID            valueobject.DocumentID
	PatientID     valueobject.PatientID
	DoctorID      valueobject.DoctorID      // optional, zero when unassigned
	AppointmentID valueobject.AppointmentID // optional
	UploadedBy    valueobject.UserID
	FileName      string
	MIMEType      string
	SizeBytes     int64
	StorageKey    string
	Category      DocumentCategory
	Shared        bool // visible to the owning patient
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
