package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"dinewise-backend/internal/shared/server/respond"
	"dinewise-backend/internal/shared/telemetry"
)

// Recovery converts panics into a 500 error response so a single bad
// request cannot take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"panic":      fmt.Sprintf("%v", rec),
				"stack":      string(debug.Stack()),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			})
			respond.Error(c, http.StatusInternalServerError, "internal", "internal server error", nil)
		}()
		c.Next()
	}
}
