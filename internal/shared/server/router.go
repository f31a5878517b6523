package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dinewise-backend/internal/recs"
	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/metrics"
	"dinewise-backend/internal/shared/server/middleware"
	"dinewise-backend/internal/shared/server/respond"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, recsHandler *recs.Handler, healthy func() bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"ok": true}
		if healthy != nil && !healthy() {
			status = http.StatusServiceUnavailable
			body = gin.H{"ok": false}
		}
		respond.JSON(c, status, body)
	})
	recsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
