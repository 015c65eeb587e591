package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/pkg/metrics"
)

// Metrics records per-route request latency. Scrapes of the metrics
// endpoint itself are not recorded, so Prometheus polling does not pad
// the latency histogram.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Templated route keeps the label cardinality bounded; raw
		// paths like /api/v1/orders/42 would mint a series per order.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if route == "/metrics" {
			return
		}

		status := strconv.Itoa(c.Writer.Status())
		metrics.APILatency.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
