package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"basketball-manager/internal/app"
	"basketball-manager/internal/core/server"
	"basketball-manager/internal/transport/http/ez"
	mdw "basketball-manager/internal/transport/http/middleware"
)

// common is the middleware chain shared by both engines.
func common(a *app.App) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16 << 20),
		mdw.Timeout(10 * time.Second),
		mdw.Recovery(a.Log),
		mdw.Metrics(),
		mdw.AccessLog(a.Log),
	}
}

func health(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) }

func NewAPIEngine(a *app.App, reg *Registry) *gin.Engine {
	r := server.NewRouter(a.Log)
	r.Use(common(a)...)

	r.GET("/health", health)
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api/v1")
	user := api.Group("")
	user.Use(mdw.AuthJWT(a.JWT, ""))

	reg.MountAllAPI(ez.New(api, a.Log), ez.New(user, a.Log))
	return r
}
