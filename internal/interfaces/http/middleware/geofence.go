package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/interfaces/http/dto"
)

// CountryChecker decides whether a client address may use the API
type CountryChecker interface {
	IsAllowed(ctx context.Context, ip string) bool
}

// Geofence rejects requests whose client IP resolves to a country outside
// the allow-list. Paths in skipPaths are always served.
func Geofence(checker CountryChecker, skipPaths ...string) gin.HandlerFunc {
	if checker == nil {
		return passThrough
	}
	return func(c *gin.Context) {
		if shouldSkip(c.Request.URL.Path, skipPaths, nil) {
			c.Next()
			return
		}
		if !checker.IsAllowed(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeRegionBlocked,
				"Access from your region is not allowed",
				c.GetString(RequestIDKey),
			))
			return
		}
		c.Next()
	}
}
