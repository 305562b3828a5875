package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"event-scan-api/internal/pkg/logger"
)

// Logger 请求日志中间件，5xx 记为 ERROR，4xx 记为 WARN
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latencyTime := time.Since(startTime)
		reqMethod := c.Request.Method
		reqUri := c.Request.RequestURI
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		userAgent := c.Request.UserAgent()
		requestID := c.GetString(RequestIDKey)

		if statusCode >= 500 {
			logger.Errorf("[%s] [%s] %s %s %d %v \"%s\" - Internal Server Error",
				requestID,
				clientIP,
				reqMethod,
				reqUri,
				statusCode,
				latencyTime,
				userAgent)
		} else if statusCode >= 400 {
			logger.Warnf("[%s] [%s] %s %s %d %v \"%s\" - Client Error",
				requestID,
				clientIP,
				reqMethod,
				reqUri,
				statusCode,
				latencyTime,
				userAgent)
		} else {
			logger.Infof("[%s] [%s] %s %s %d %v \"%s\"",
				requestID,
				clientIP,
				reqMethod,
				reqUri,
				statusCode,
				latencyTime,
				userAgent)
		}
	}
}
