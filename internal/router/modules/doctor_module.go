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

// DoctorModule wires the doctor directory. Reads are open to any
// authenticated caller; writes are staff only.
type DoctorModule struct {
	Handler *handlers.DoctorHandler
	JWT     *helpers.JWTManager
}

func NewDoctorModule(h *handlers.DoctorHandler, jwt *helpers.JWTManager) *DoctorModule {
	return &DoctorModule{Handler: h, JWT: jwt}
}

func (m *DoctorModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/doctors", m.Handler.List)
		auth.GET("/doctors/:id", m.Handler.GetByID)

		staff := auth.Group("/")
		staff.Use(middleware.RequireRole(entity.RoleStaff))
		{
			staff.POST("/doctors", m.Handler.Create)
			staff.PUT("/doctors/:id", m.Handler.Update)
			staff.DELETE("/doctors/:id", m.Handler.Deactivate)
		}
	}
}
