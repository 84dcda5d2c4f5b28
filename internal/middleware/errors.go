package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
	"github.com/man-in-dev/goal-backend-sub001/pkg/middleware/requestid"
	"github.com/man-in-dev/goal-backend-sub001/pkg/response"
)

// ErrorHandler renders the last error recorded on the context. Diagnostic
// detail is attached only outside production.
func ErrorHandler(isProduction bool, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := appErrors.FromError(err)
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("request_id", requestid.Value(c)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("code", appErr.Code),
				zap.Error(err),
			)
		}
		response.Failure(c, appErr, !isProduction)
	}
}

// Recovery turns panics into the internal error envelope.
func Recovery(isProduction bool, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.String("request_id", requestid.Value(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		err := appErrors.Wrap(fmt.Errorf("panic: %v", recovered), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Internal server error")
		response.Failure(c, err, !isProduction)
		c.Abort()
	})
}

// NotFound answers unmatched routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Not found - %s", c.Request.URL.Path)))
	}
}
