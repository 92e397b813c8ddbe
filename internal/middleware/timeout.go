package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medboard/hospital-api/pkg/httputil"
)

// Timeout bounds request handling, including the simulated dispatch
// latency, with a deadline on the request context.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusGatewayTimeout,
					Message: "request timeout",
				},
			})
		}
	}
}
