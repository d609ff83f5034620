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

type QueueHandler struct {
	Svc      *application.QueueService
	Patients *application.PatientService
	Logger   *logrus.Logger
}

func NewQueueHandler(svc *application.QueueService, patients *application.PatientService, logger *logrus.Logger) *QueueHandler {
	return &QueueHandler{Svc: svc, Patients: patients, Logger: logger}
}

type checkInRequest struct {
	AppointmentID string `json:"appointment_id" binding:"required"`
}

// CheckIn POST /api/queue/check-in — issues a ticket for a same-day
// SCHEDULED appointment.
func (h *QueueHandler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	id, err := valueobject.ParseAppointmentID(req.AppointmentID)
	if err != nil {
		writeErr(c, err)
		return
	}

	// Patients check in their own appointments only.
	var forPatient *valueobject.PatientID
	if pr := principalFrom(c); pr.Role == entity.RolePatient {
		own, err := h.Patients.GetByUserID(c.Request.Context(), pr.UserID)
		if err != nil {
			response.Fail(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		forPatient = &own.ID
	}

	t, err := h.Svc.CheckIn(c.Request.Context(), id, forPatient)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "checked in", nil)
}

// List GET /api/queue/doctors/:id — the doctor's waiting line, in order.
func (h *QueueHandler) List(c *gin.Context) {
	doctorID, err := valueobject.ParseDoctorID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	ts, err := h.Svc.List(c.Request.Context(), doctorID)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, ts, "ok", gin.H{"count": len(ts)})
}

// CallNext POST /api/queue/doctors/:id/next — pops the head of the line and
// moves its appointment to IN_PROGRESS.
func (h *QueueHandler) CallNext(c *gin.Context) {
	doctorID, err := valueobject.ParseDoctorID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	t, err := h.Svc.CallNext(c.Request.Context(), doctorID)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "patient called", nil)
}

// Position GET /api/queue/tickets/:id — ticket detail plus 1-based place in
// line.
func (h *QueueHandler) Position(c *gin.Context) {
	id, err := valueobject.ParseQueueTicketID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	t, pos, err := h.Svc.Position(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "ok", gin.H{"position": pos})
}
