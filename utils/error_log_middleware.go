package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		Logger.Debug("error response", zap.Int("status", status), zap.ByteString("body", b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}

// RequestLogMiddleware logs every request once it has been served
func RequestLogMiddleware(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path
	c.Next()

	fields := []zap.Field{
		zap.Int("status", c.Writer.Status()),
		zap.String("method", c.Request.Method),
		zap.String("path", path),
		zap.String("query", c.Request.URL.RawQuery),
		zap.String("ip", c.ClientIP()),
		zap.Duration("latency", time.Since(start)),
	}
	if len(c.Errors) > 0 {
		Logger.Error(c.Errors.String(), fields...)
		return
	}
	Logger.Info(path, fields...)
}

// RecoveryMiddleware turns panics into 500s and logs them with a stack trace
func RecoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			Logger.Error("panic recovered",
				zap.Any("error", err),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
	}()
	c.Next()
}
