package router

import (
	"github.com/gin-gonic/gin"

	"basketball-manager/internal/app"
	"basketball-manager/internal/core/server"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/transport/http/ez"
	mdw "basketball-manager/internal/transport/http/middleware"
)

// NewAdminEngine serves /admin/v1 to Administrator tokens only.
func NewAdminEngine(a *app.App, reg *Registry) *gin.Engine {
	r := server.NewRouter(a.Log)
	r.Use(common(a)...)

	r.GET("/health", health)
	r.GET("/metrics", mdw.MetricsHandler())

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(a.JWT, domain.AdministratorRoleName))

	reg.MountAllAdmin(ez.New(admin, a.Log))
	return r
}
