package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-blog/internal/core/metrics"
)

func Metrics(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(path, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
