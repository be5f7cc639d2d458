package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs each request with a short request ID, skipping the
// health endpoint. The ID is taken from the X-Request-ID header when the
// caller supplies one and minted otherwise; it is echoed back on the
// response and stored under the "request_id" context key.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		if c.Request.URL.Path == "/health" {
			return
		}

		log.Printf("[%s] %s %s | %d | %v | %s",
			shortID(requestID),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)

		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", shortID(requestID), e.Err)
		}
	}
}

// shortID trims a request ID for log lines. Caller-supplied IDs can be
// shorter than the 8 runes a minted UUID guarantees.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
