package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/infrastructure/telemetry"
)

// Profiling tags the CPU samples of each request with its route, method,
// controller and, once authenticated, company. The labels are visible in
// Pyroscope. Register it after the JWT middleware so that the company is
// known.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return func(c *gin.Context) {
		labels := profilingLabels(c)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func profilingLabels(c *gin.Context) map[string]string {
	route := c.FullPath()
	labels := map[string]string{
		telemetry.ProfilingLabelMethod:     c.Request.Method,
		telemetry.ProfilingLabelRoute:      route,
		telemetry.ProfilingLabelController: controllerOf(route),
	}
	if p, ok := GetPrincipal(c); ok {
		labels[telemetry.ProfilingLabelCompanyID] = p.CompanyID.String()
	}
	return labels
}

// controllerOf derives the controller from a route pattern:
// "/api/v1/mynet/compare/yearly" -> "mynet".
func controllerOf(route string) string {
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || strings.HasPrefix(part, ":") || isVersionSegment(part) {
			continue
		}
		return part
	}
	return ""
}

// isVersionSegment reports whether part looks like "v1"
func isVersionSegment(part string) bool {
	if len(part) < 2 || part[0] != 'v' {
		return false
	}
	for _, r := range part[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
