package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
)

func TestCanAccess(t *testing.T) {
	patientID := valueobject.NewPatientID()
	otherPatientID := valueobject.NewPatientID()
	doctorID := valueobject.NewDoctorID()
	otherDoctorID := valueobject.NewDoctorID()
	uploaderID := valueobject.NewUserID()

	doc := &entity.Document{
		ID:         valueobject.NewDocumentID(),
		PatientID:  patientID,
		DoctorID:   doctorID,
		UploadedBy: uploaderID,
		Shared:     true,
	}
	unshared := &entity.Document{
		ID:         valueobject.NewDocumentID(),
		PatientID:  patientID,
		UploadedBy: uploaderID,
		Shared:     false,
	}

	staff := &Principal{UserID: valueobject.NewUserID(), Role: entity.RoleStaff}
	assert.True(t, CanAccess(staff, "", "", doc))
	assert.True(t, CanAccess(staff, "", "", unshared))

	uploader := &Principal{UserID: uploaderID, Role: entity.RoleDoctor}
	assert.True(t, CanAccess(uploader, "", otherDoctorID, doc), "uploading doctor always sees the record")

	assigned := &Principal{UserID: valueobject.NewUserID(), Role: entity.RoleDoctor}
	assert.True(t, CanAccess(assigned, "", doctorID, doc), "assigned doctor sees the record")
	assert.False(t, CanAccess(assigned, "", otherDoctorID, doc), "unrelated doctor does not")
	assert.False(t, CanAccess(assigned, "", "", unshared))

	owner := &Principal{UserID: valueobject.NewUserID(), Role: entity.RolePatient}
	assert.True(t, CanAccess(owner, patientID, "", doc))
	assert.False(t, CanAccess(owner, patientID, "", unshared), "unshared records stay hidden from the patient")
	assert.False(t, CanAccess(owner, otherPatientID, "", doc))

	unknown := &Principal{UserID: valueobject.NewUserID(), Role: entity.Role("AUDITOR")}
	assert.False(t, CanAccess(unknown, patientID, doctorID, doc))
}
