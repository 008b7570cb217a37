package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playrummy/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LoggerMiddleware creates a middleware that logs HTTP requests in
// structured format
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		requestID := ""
		if id, exists := c.Get("request_id"); exists {
			requestID = id.(string)
		}

		log.Info("REST Processed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status_code", c.Writer.Status()),
			zap.String("latency", latency.String()),
			zap.Int("data_length", c.Writer.Size()))
	}
}
