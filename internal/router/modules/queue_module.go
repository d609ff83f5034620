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

// QueueModule wires the walk-in queue. Check-in and ticket lookup are open
// to patients; the doctor-side queue views are gated.
type QueueModule struct {
	Handler *handlers.QueueHandler
	JWT     *helpers.JWTManager
}

func NewQueueModule(h *handlers.QueueHandler, jwt *helpers.JWTManager) *QueueModule {
	return &QueueModule{Handler: h, JWT: jwt}
}

func (m *QueueModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	// Kiosks on the clinic network are exempt from the per-user limit.
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.POST("/queue/check-in", m.Handler.CheckIn)
		auth.GET("/queue/tickets/:id", m.Handler.Position)

		clinical := auth.Group("/")
		clinical.Use(middleware.RequireRole(entity.RoleDoctor, entity.RoleStaff))
		{
			clinical.GET("/queue/doctors/:id", m.Handler.List)
			clinical.POST("/queue/doctors/:id/next", m.Handler.CallNext)
		}
	}
}
