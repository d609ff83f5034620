package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/response"
	"github.com/careloop/clinic-api/pkg/validation"
)

type DocumentHandler struct {
	Svc      *application.DocumentService
	Patients *application.PatientService
	Doctors  *application.DoctorService
	Logger   *logrus.Logger
}

func NewDocumentHandler(svc *application.DocumentService, patients *application.PatientService, doctors *application.DoctorService, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{Svc: svc, Patients: patients, Doctors: doctors, Logger: logger}
}

type initUploadRequest struct {
	PatientID string `json:"patient_id"`
	FileName  string `json:"file_name" binding:"required"`
	MIMEType  string `json:"mime_type" binding:"required"`
	SizeBytes int64  `json:"size_bytes" binding:"required,gt=0"`
}

// InitUpload POST /api/documents/upload — phase one: reserve a handle and a
// signed PUT URL. Patients upload into their own record; doctors and staff
// name the patient.
func (h *DocumentHandler) InitUpload(c *gin.Context) {
	var req initUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pr := principalFrom(c)
	var patientID valueobject.PatientID
	if pr.Role == entity.RolePatient {
		own, err := h.Patients.GetByUserID(c.Request.Context(), pr.UserID)
		if err != nil {
			writeErr(c, err)
			return
		}
		patientID = own.ID
	} else {
		var err error
		patientID, err = valueobject.ParsePatientID(req.PatientID)
		if err != nil {
			writeErr(c, err)
			return
		}
	}

	handle, err := h.Svc.InitUpload(c.Request.Context(), patientID, pr.UserID, req.FileName, req.MIMEType, req.SizeBytes)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, handle, "upload initialized", nil)
}

type confirmUploadRequest struct {
	Token         string `json:"token" binding:"required"`
	Category      string `json:"category" binding:"required"`
	Shared        bool   `json:"shared"`
	DoctorID      string `json:"doctor_id"`
	AppointmentID string `json:"appointment_id"`
}

// ConfirmUpload POST /api/documents/confirm — phase two: consume the pending
// handle and persist the metadata record.
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat := entity.DocumentCategory(req.Category)
	if !cat.IsValid() {
		response.Fail(c, http.StatusBadRequest, "unknown document category", nil)
		return
	}

	in := application.ConfirmUploadInput{Token: req.Token, Category: cat, Shared: req.Shared}
	if req.DoctorID != "" {
		id, err := valueobject.ParseDoctorID(req.DoctorID)
		if err != nil {
			writeErr(c, err)
			return
		}
		in.DoctorID = id
	}
	if req.AppointmentID != "" {
		id, err := valueobject.ParseAppointmentID(req.AppointmentID)
		if err != nil {
			writeErr(c, err)
			return
		}
		in.AppointmentID = id
	}

	// Documents a patient uploads about themselves are theirs to see.
	if principalFrom(c).Role == entity.RolePatient {
		in.Shared = true
	}

	d, err := h.Svc.ConfirmUpload(c.Request.Context(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, documentJSON(d), "document created", nil)
}

// GetByID GET /api/documents/:id — access is decided per record.
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := valueobject.ParseDocumentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	d, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	if !h.canAccess(c, d) {
		response.Fail(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	response.Success(c, http.StatusOK, documentJSON(d), "ok", nil)
}

// ListByPatient GET /api/patients/:id/documents — records the caller may not
// access are filtered out rather than erroring the whole listing.
func (h *DocumentHandler) ListByPatient(c *gin.Context) {
	patientID, err := valueobject.ParsePatientID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	ds, err := h.Svc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]documentDTO, 0, len(ds))
	for _, d := range ds {
		if h.canAccess(c, d) {
			out = append(out, documentJSON(d))
		}
	}
	response.Success(c, http.StatusOK, out, "ok", gin.H{"count": len(out)})
}

type updateDocumentRequest struct {
	FileName string `json:"file_name"`
	Category string `json:"category"`
	Shared   *bool  `json:"shared"`
}

// Update PUT /api/documents/:id — doctors and staff only.
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := valueobject.ParseDocumentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	var req updateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateDocumentInput{FileName: req.FileName, Shared: req.Shared}
	if req.Category != "" {
		cat := entity.DocumentCategory(req.Category)
		if !cat.IsValid() {
			response.Fail(c, http.StatusBadRequest, "unknown document category", nil)
			return
		}
		in.Category = cat
	}
	d, err := h.Svc.UpdateMeta(c.Request.Context(), id, in)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, documentJSON(d), "document updated", nil)
}

// Delete DELETE /api/documents/:id — staff, or the uploading user.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := valueobject.ParseDocumentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	d, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	pr := principalFrom(c)
	if pr.Role != entity.RoleStaff && d.UploadedBy != pr.UserID {
		response.Fail(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "document deleted", nil)
}

// canAccess resolves the caller's own patient or doctor identity and defers
// to the access predicate.
func (h *DocumentHandler) canAccess(c *gin.Context, d *entity.Document) bool {
	pr := principalFrom(c)
	var ownPatientID valueobject.PatientID
	var doctorID valueobject.DoctorID
	switch pr.Role {
	case entity.RolePatient:
		if own, err := h.Patients.GetByUserID(c.Request.Context(), pr.UserID); err == nil {
			ownPatientID = own.ID
		}
	case entity.RoleDoctor:
		if doc, err := h.Doctors.GetByEmail(c.Request.Context(), pr.Email); err == nil {
			doctorID = doc.ID
		}
	}
	return application.CanAccess(pr, ownPatientID, doctorID, d)
}
