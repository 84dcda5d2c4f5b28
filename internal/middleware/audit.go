package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/service"
)

// Audit records an audit entry after a successful request.
func Audit(audit *service.AuditService, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !audit.Enabled() {
			c.Next()
			return
		}
		start := time.Now().UTC()
		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		var userID *string
		if claims, ok := CurrentUser(c); ok {
			userID = &claims.UserID
		}
		var resourceID *string
		if id := c.Param("id"); id != "" {
			resourceID = &id
		}

		audit.Record(c.Request.Context(), &models.AuditLog{
			UserID:     userID,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			NewValues: service.AuditValues(map[string]interface{}{
				"path":    c.FullPath(),
				"method":  c.Request.Method,
				"status":  c.Writer.Status(),
				"latency": time.Since(start).Milliseconds(),
				"fields":  Body(c),
			}),
			IPAddress: c.ClientIP(),
			UserAgent: c.GetHeader("User-Agent"),
		})
	}
}
