package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"socialmall/internal/monitor"
)

// Metrics records request counts and latency per route. The route
// template is used instead of the raw path to keep label cardinality
// bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		collector := monitor.Default()
		collector.RecordHTTPRequest(c.Request.Method, path, status)
		collector.RecordHTTPDuration(c.Request.Method, path, time.Since(start))
	}
}
