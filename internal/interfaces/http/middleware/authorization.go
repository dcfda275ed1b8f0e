package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/interfaces/http/dto"
)

// RequireTier admits callers whose tier is one of tiers. It must run
// after the JWT middleware.
func RequireTier(tiers ...identity.PermissionTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !p.Tier.In(tiers...) {
			abortForbidden(c, "Your account cannot access this area")
			return
		}
		c.Next()
	}
}

// ReadOnlyFor lets the given tiers through on safe methods only
func ReadOnlyFor(tiers ...identity.PermissionTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if p.Tier.In(tiers...) && !isSafeMethod(c.Request.Method) {
			abortForbidden(c, "Your account has read-only access")
			return
		}
		c.Next()
	}
}

// RequireViewAll admits the tiers that see every company's figures
func RequireViewAll() gin.HandlerFunc {
	return RequireTier(identity.TierAdmin, identity.TierParent, identity.TierPartner)
}

// RequireAdminister admits the tiers that manage products, users and companies
func RequireAdminister() gin.HandlerFunc {
	return RequireTier(identity.TierAdmin, identity.TierParent)
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
		dto.ErrCodeForbidden, message, c.GetString(RequestIDKey)))
}
