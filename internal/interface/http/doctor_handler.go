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

type DoctorHandler struct {
	Svc    *application.DoctorService
	Logger *logrus.Logger
}

func NewDoctorHandler(svc *application.DoctorService, logger *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{Svc: svc, Logger: logger}
}

type createDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"required"`
}

// Create POST /api/doctors — staff only.
func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), application.CreateDoctorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doctorJSON(d), "doctor created", nil)
}

// List GET /api/doctors — active doctors, any authenticated role.
func (h *DoctorHandler) List(c *gin.Context) {
	ds, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]doctorDTO, 0, len(ds))
	for _, d := range ds {
		out = append(out, doctorJSON(d))
	}
	response.Success(c, http.StatusOK, out, "ok", gin.H{"count": len(out)})
}

// GetByID GET /api/doctors/:id
func (h *DoctorHandler) GetByID(c *gin.Context) {
	id, err := valueobject.ParseDoctorID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	d, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	// Inactive doctors are hidden from patients; staff still see them.
	if !d.Active && principalFrom(c).Role == entity.RolePatient {
		response.Fail(c, http.StatusNotFound, "not found", nil)
		return
	}
	response.Success(c, http.StatusOK, doctorJSON(d), "ok", nil)
}

type updateDoctorRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" binding:"omitempty,email"`
	Specialization string `json:"specialization"`
}

// Update PUT /api/doctors/:id — staff only.
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := valueobject.ParseDoctorID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Update(c.Request.Context(), id, application.UpdateDoctorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
	})
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, doctorJSON(d), "doctor updated", nil)
}

// Deactivate DELETE /api/doctors/:id — staff only; soft delete.
func (h *DoctorHandler) Deactivate(c *gin.Context) {
	id, err := valueobject.ParseDoctorID(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if err := h.Svc.Deactivate(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deactivated": true}, "doctor deactivated", nil)
}
