package middleware

import (
	"fmt"

	"stagelink-backend/internal/shared/response"
	"stagelink-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts handler panics into a 500 envelope so one bad
// request cannot take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered",
					fmt.Errorf("request %s: %v", c.GetString("request_id"), r))

				response.InternalServerError(c, "something went wrong")
				c.Abort()
			}
		}()

		c.Next()
	}
}
