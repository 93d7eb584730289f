package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"padelwatch/models"
)

const identityKey = "identity"

// IdentityMiddleware reads the caller identity injected by the upstream
// gateway as headers. The service never authenticates on its own; a
// request without a user id is rejected outright.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			return
		}

		c.Set(identityKey, models.Identity{
			UserID: userID,
			Admin:  strings.EqualFold(strings.TrimSpace(c.GetHeader("X-User-Role")), "admin"),
		})
		c.Next()
	}
}

// IdentityFrom returns the identity stored by IdentityMiddleware.
func IdentityFrom(c *gin.Context) models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}
	}
	identity, _ := v.(models.Identity)
	return identity
}

// RequireAdmin guards routes reserved for admin identities.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
