package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/penwyp/go-dive-monitor/internal/util"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware ensures every request has a correlation id
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("request_id", reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Next()
	}
}

// LoggingMiddleware writes one debug line per request through the app logger
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		util.LogDebug("API request",
			util.F("request_id", c.GetString("request_id")),
			util.F("method", c.Request.Method),
			util.F("path", c.Request.URL.Path),
			util.F("status", c.Writer.Status()),
			util.F("duration", time.Since(start).String()))
	}
}
