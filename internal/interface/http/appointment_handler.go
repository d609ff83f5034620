package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/entity"
	"github.com/careloop/clinic-api/internal/domain/repository"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/response"
	"github.com/careloop/clinic-api/pkg/validation"
)

type AppointmentHandler struct {
	Svc      *application.AppointmentService
	Patients *application.PatientService
	Doctors  *application.DoctorService
	Logger   *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, patients *application.PatientService, doctors *application.DoctorService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Patients: patients, Doctors: doctors, Logger: logger}
}

type bookAppointmentRequest struct {
	PatientID    string    `json:"patient_id"`
	DoctorID     string    `json:"doctor_id" binding:"required"`
	Type         string    `json:"type" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	DurationMins int       `json:"duration_minutes"`
	Reason       string    `json:"reason"`
}

// Book POST /api/appointments. Patients always book for themselves; staff
// must name the patient.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req bookAppointmentRequest
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

	doctorID, err := valueobject.ParseDoctorID(req.DoctorID)
	if err != nil {
		writeErr(c, err)
		return
	}

	a, err := h.Svc.Book(c.Request.Context(), application.BookAppointmentInput{
		PatientID:    patientID,
		DoctorID:     doctorID,
		Type:         valueobject.AppointmentType(req.Type),
		StartTime:    req.StartTime,
		DurationMins: req.DurationMins,
		Reason:       req.Reason,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, appointmentJSON(a), "appointment booked", nil)
}

// GetByID GET /api/appointments/:id — callers only see appointments they are
// a party to.
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, err := valueobject.ParseAppointmentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	a, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	if !h.isParty(c, a) {
		response.Fail(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	response.Success(c, http.StatusOK, appointmentJSON(a), "ok", nil)
}

// List GET /api/appointments?status=&from=&to=&doctor_id=&patient_id=
// Patients see their own; doctors see their own schedule; staff see all.
func (h *AppointmentHandler) List(c *gin.Context) {
	f := repository.AppointmentFilter{
		Status: entity.AppointmentStatus(c.Query("status")),
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid from timestamp", nil)
			return
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "invalid to timestamp", nil)
			return
		}
		f.To = t
	}

	pr := principalFrom(c)
	switch pr.Role {
	case entity.RolePatient:
		own, err := h.Patients.GetByUserID(c.Request.Context(), pr.UserID)
		if err != nil {
			writeErr(c, err)
			return
		}
		f.PatientID = own.ID
	case entity.RoleDoctor:
		d, err := h.Doctors.GetByEmail(c.Request.Context(), pr.Email)
		if err != nil {
			writeErr(c, err)
			return
		}
		f.DoctorID = d.ID
	default:
		if v := c.Query("doctor_id"); v != "" {
			id, err := valueobject.ParseDoctorID(v)
			if err != nil {
				writeErr(c, err)
				return
			}
			f.DoctorID = id
		}
		if v := c.Query("patient_id"); v != "" {
			id, err := valueobject.ParsePatientID(v)
			if err != nil {
				writeErr(c, err)
				return
			}
			f.PatientID = id
		}
	}

	as, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]appointmentDTO, 0, len(as))
	for _, a := range as {
		out = append(out, appointmentJSON(a))
	}
	response.Success(c, http.StatusOK, out, "ok", gin.H{"count": len(out)})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeStatus PATCH /api/appointments/:id/status. Staff and doctors drive
// the lifecycle; a patient may only cancel their own appointment.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, err := valueobject.ParseAppointmentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	target := entity.AppointmentStatus(req.Status)
	if !target.IsValid() {
		response.Fail(c, http.StatusBadRequest, "unknown status", nil)
		return
	}

	pr := principalFrom(c)
	if pr.Role == entity.RolePatient {
		if target != entity.StatusCancelled {
			response.Fail(c, http.StatusForbidden, "patients may only cancel", nil)
			return
		}
		a, err := h.Svc.GetByID(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		if !h.ownsAsPatient(c, a) {
			response.Fail(c, http.StatusForbidden, "forbidden", nil)
			return
		}
	}

	a, err := h.Svc.ChangeStatus(c.Request.Context(), id, target)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, appointmentJSON(a), "status updated", nil)
}

type rescheduleRequest struct {
	StartTime    time.Time `json:"start_time"`
	DurationMins int       `json:"duration_minutes"`
	Reason       string    `json:"reason"`
	Notes        string    `json:"notes"`
}

// Reschedule PUT /api/appointments/:id — SCHEDULED appointments only.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := valueobject.ParseAppointmentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pr := principalFrom(c)
	if pr.Role == entity.RolePatient {
		a, err := h.Svc.GetByID(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		if !h.ownsAsPatient(c, a) {
			response.Fail(c, http.StatusForbidden, "forbidden", nil)
			return
		}
	}

	a, err := h.Svc.Reschedule(c.Request.Context(), id, application.RescheduleInput{
		StartTime:    req.StartTime,
		DurationMins: req.DurationMins,
		Reason:       req.Reason,
		Notes:        req.Notes,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, appointmentJSON(a), "appointment rescheduled", nil)
}

// Delete DELETE /api/appointments/:id — staff only; removes a SCHEDULED
// appointment outright.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := valueobject.ParseAppointmentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "appointment deleted", nil)
}

// SendReminder POST /api/appointments/:id/reminder — staff only.
func (h *AppointmentHandler) SendReminder(c *gin.Context) {
	id, err := valueobject.ParseAppointmentID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if err := h.Svc.SendReminder(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reminder_sent": true}, "reminder queued", nil)
}

// ownsAsPatient reports whether the calling patient owns the appointment.
func (h *AppointmentHandler) ownsAsPatient(c *gin.Context, a *entity.Appointment) bool {
	own, err := h.Patients.GetByUserID(c.Request.Context(), principalFrom(c).UserID)
	if err != nil {
		return false
	}
	return own.ID == a.PatientID
}

// isParty reports whether the caller is the appointment's patient, its
// doctor, or staff.
func (h *AppointmentHandler) isParty(c *gin.Context, a *entity.Appointment) bool {
	pr := principalFrom(c)
	switch pr.Role {
	case entity.RoleStaff:
		return true
	case entity.RoleDoctor:
		d, err := h.Doctors.GetByEmail(c.Request.Context(), pr.Email)
		return err == nil && d.ID == a.DoctorID
	case entity.RolePatient:
		return h.ownsAsPatient(c, a)
	}
	return false
}
