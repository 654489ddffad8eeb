package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	metricsOnce sync.Once
	metricsInst *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for HTTP-level metrics.
// The collectors live in the default registry, so the instance is shared
// across servers in one process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	metricsOnce.Do(func() {
		metricsInst = fiberprometheus.New(serviceName)
	})
	return metricsInst
}

// MetricsMiddleware adapts the Prometheus middleware to a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
