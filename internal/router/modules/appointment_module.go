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

// AppointmentModule wires the scheduling routes. Ownership checks beyond the
// role gates live in the handler.
type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	JWT     *helpers.JWTManager
}

func NewAppointmentModule(h *handlers.AppointmentHandler, jwt *helpers.JWTManager) *AppointmentModule {
	return &AppointmentModule{Handler: h, JWT: jwt}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/appointments", m.Handler.Book)
		auth.GET("/appointments", m.Handler.List)
		auth.GET("/appointments/:id", m.Handler.GetByID)
		auth.PUT("/appointments/:id", m.Handler.Reschedule)
		auth.PATCH("/appointments/:id/status", m.Handler.ChangeStatus)

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(entity.RoleStaff))
		{
			staff.DELETE("/appointments/:id", m.Handler.Delete)
			staff.POST("/appointments/:id/reminder", m.Handler.SendReminder)
		}
	}
}
