package middleware

import (
	"context"
	"fmt"
	"time"

	aws_pkg "github.com/X-Vneer/e-commerc-api/pkg/aws"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and error counters to CloudWatch.
// Data points are sent from a goroutine so the response is never delayed.
func Metrics(metrics aws_pkg.MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		// the route template keeps the Path dimension low-cardinality
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metrics.RecordLatency(ctx, aws_pkg.MetricHTTPLatency, duration, dimensions)
			for _, name := range counterNames(statusCode) {
				_ = metrics.RecordCount(ctx, name, dimensions)
			}
		}()
	}
}

// counterNames lists the counters one response increments.
func counterNames(statusCode int) []string {
	switch {
	case statusCode >= 500:
		return []string{aws_pkg.MetricHTTPRequests, aws_pkg.MetricHTTPErrors, aws_pkg.MetricHTTP5xx}
	case statusCode >= 400:
		return []string{aws_pkg.MetricHTTPRequests, aws_pkg.MetricHTTPErrors, aws_pkg.MetricHTTP4xx}
	default:
		return []string{aws_pkg.MetricHTTPRequests}
	}
}

func statusCodeToRange(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unknown"
	}
	return fmt.Sprintf("%dxx", statusCode/100)
}
