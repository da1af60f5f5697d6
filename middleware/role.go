package middleware

import (
	"net/http"

	"reservio/models"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware gates administrative endpoints. It must run after
// JWTAuthMiddleware, which sets the role on the context.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Administrator privileges required",
			})
			return
		}
		c.Next()
	}
}
