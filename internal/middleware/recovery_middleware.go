package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apperrors "github.com/ikkim/storerate-backend/internal/errors"
)

// RecoveryMiddleware turns a panic into a 500 envelope
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		GetLoggerFromContext(c).Error("Panic recovered", fmt.Errorf("%v", recovered), map[string]interface{}{
			"path":  c.Request.URL.Path,
			"stack": string(debug.Stack()),
		})
		apperrors.InternalError(c, "")
		c.Abort()
	})
}
