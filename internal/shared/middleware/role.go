package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to one of the given roles.
// Runs after AuthMiddleware, which sets the role in context.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextKeyRole)
		if !exists {
			forbid(c)
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			forbid(c)
			return
		}
		if _, ok := allowed[role]; !ok {
			forbid(c)
			return
		}

		c.Next()
	}
}

func forbid(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error":   "Access denied: insufficient role",
	})
	c.Abort()
}
