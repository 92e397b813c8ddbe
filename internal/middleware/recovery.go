package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medboard/hospital-api/pkg/httputil"
)

// Recovery converts panics into a 500 envelope instead of dropping the
// connection.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("stack", string(debug.Stack())).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("request_id", c.GetString(ContextRequestID)).
					Msg("request panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, httputil.Response{
					Success: false,
					Error: &httputil.Error{
						Code:    http.StatusInternalServerError,
						Message: "internal server error",
					},
				})
			}
		}()
		c.Next()
	}
}
