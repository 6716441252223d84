package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"greenjourney/internal/utils"
)

// Logger writes one access log entry per request, including request_id when available.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": float64(latency.Microseconds()) / 1000.0,
			"ip":         c.ClientIP(),
		})
		switch {
		case status >= 500:
			utils.ErrorLogger.WithFields(entry.Data).Error("[HTTP]")
		case status >= 400:
			utils.WarnLogger.WithFields(entry.Data).Warn("[HTTP]")
		default:
			entry.Info("[HTTP]")
		}
	}
}
