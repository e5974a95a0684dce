package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs each request with status, latency and client IP. The raw
// query string is kept in the log line because the search endpoints carry
// the free-text phrase there.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		target := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			target += "?" + raw
		}

		c.Next()

		log.Printf("%s %s -> %d (%v) ip=%s%s",
			c.Request.Method,
			target,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			errorSuffix(c),
		)
	}
}

func errorSuffix(c *gin.Context) string {
	if len(c.Errors) == 0 {
		return ""
	}
	return " errors=" + c.Errors.String()
}
