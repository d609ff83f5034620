package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/careloop/clinic-api/internal/application"
	"github.com/careloop/clinic-api/internal/domain/valueobject"
	"github.com/careloop/clinic-api/pkg/response"
	"github.com/careloop/clinic-api/pkg/validation"
)

type PatientHandler struct {
	Svc    *application.PatientService
	Logger *logrus.Logger
}

func NewPatientHandler(svc *application.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

// Me GET /api/patients/me — the caller's own patient record.
func (h *PatientHandler) Me(c *gin.Context) {
	p, err := h.Svc.GetByUserID(c.Request.Context(), principalFrom(c).UserID)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, patientJSON(p), "ok", nil)
}

type updatePatientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"omitempty,sgphone"`
	Address   string `json:"address"`
}

// UpdateMe PUT /api/patients/me
func (h *PatientHandler) UpdateMe(c *gin.Context) {
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	own, err := h.Svc.GetByUserID(c.Request.Context(), principalFrom(c).UserID)
	if err != nil {
		writeErr(c, err)
		return
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), own.ID, application.UpdatePatientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, patientJSON(p), "profile updated", nil)
}

// GetByID GET /api/patients/:id — staff and doctors only.
func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := valueobject.ParsePatientID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	p, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, patientJSON(p), "ok", nil)
}

// Search GET /api/patients/search?q=&size= — full-text over the patient
// index; staff and doctors only.
func (h *PatientHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("patient search failed")
		response.Fail(c, http.StatusServiceUnavailable, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "ok", gin.H{"count": len(hits)})
}
