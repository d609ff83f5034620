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

// DocumentModule wires the two-phase upload and the document metadata
// routes.
type DocumentModule struct {
	Handler *handlers.DocumentHandler
	JWT     *helpers.JWTManager
}

func NewDocumentModule(h *handlers.DocumentHandler, jwt *helpers.JWTManager) *DocumentModule {
	return &DocumentModule{Handler: h, JWT: jwt}
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	uploadLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/documents/upload", uploadLimiter, m.Handler.InitUpload)
		auth.POST("/documents/confirm", m.Handler.ConfirmUpload)
		auth.GET("/documents/:id", m.Handler.GetByID)
		auth.DELETE("/documents/:id", m.Handler.Delete)

		clinical := auth.Group("/")
		clinical.Use(middleware.RequireRole(entity.RoleDoctor, entity.RoleStaff))
		{
			clinical.PUT("/documents/:id", m.Handler.Update)
		}
	}
}
