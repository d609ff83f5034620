package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careloop/clinic-api/internal/container"
	"github.com/careloop/clinic-api/internal/domain/entity"
	handlers "github.com/careloop/clinic-api/internal/interface/http"
	"github.com/careloop/clinic-api/internal/interface/middleware"
	"github.com/careloop/clinic-api/pkg/helpers"
)

// PatientModule wires the patient profile routes plus the per-patient
// document listing, which hangs off the patient resource.
type PatientModule struct {
	Handler   *handlers.PatientHandler
	Documents *handlers.DocumentHandler
	JWT       *helpers.JWTManager
}

func NewPatientModule(h *handlers.PatientHandler, docs *handlers.DocumentHandler, jwt *helpers.JWTManager) *PatientModule {
	return &PatientModule{Handler: h, Documents: docs, JWT: jwt}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/patients/me", m.Handler.Me)
		auth.PUT("/patients/me", m.Handler.UpdateMe)

		clinical := auth.Group("/")
		clinical.Use(middleware.RequireRole(entity.RoleDoctor, entity.RoleStaff))
		{
			clinical.GET("/patients/search", m.Handler.Search)
			clinical.GET("/patients/:id", m.Handler.GetByID)
		}

		// Per-record access filtering happens in the handler.
		auth.GET("/patients/:id/documents", m.Documents.ListByPatient)
	}
}
