package router

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// SessionMiddleware validates the :sessionId path parameter and stores it
// under "sessionId" for the cart handlers.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("session id required", []global.ValidationError{
				{Field: "sessionId", Message: "session id is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		if !sessionIDPattern.MatchString(sessionID) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid session id", []global.ValidationError{
				{Field: "sessionId", Message: "session id must be 8-128 letters, digits, '-' or '_'", Code: "invalid_format"},
			}))
			c.Abort()
			return
		}

		c.Set("sessionId", sessionID)
		c.Next()
	}
}

// RequestLogger logs every request through the global zap logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			global.Logger.Error("Request failed", fields...)
		default:
			global.Logger.Info("Request", fields...)
		}
	}
}
