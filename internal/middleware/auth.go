package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medboard/hospital-api/internal/service/auth"
)

const ContextClaims = "claims"

// Identify resolves a Bearer token into session claims when one is
// present. The API is open: a missing or stale token is not an error,
// the request just proceeds anonymous.
func Identify(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}
		if claims, ok := authSvc.Session(parts[1]); ok {
			c.Set(ContextClaims, claims)
		}
		c.Next()
	}
}
