package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPMetricsMiddleware records request counts and latency per route.
func HTTPMetricsMiddleware(metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.RecordHTTPRequest(c.Method(), path, status, time.Since(start))

		return err
	}
}
