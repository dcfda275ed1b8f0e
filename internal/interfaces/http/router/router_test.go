package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	var order []string
	r := NewRouter(engine).Use(func(c *gin.Context) {
		order = append(order, "router")
		c.Next()
	})

	group := NewDomainGroup("test", "/test").Use(func(c *gin.Context) {
		order = append(order, "group")
		c.Next()
	})
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	group.Group("nested", "/nested").DELETE("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	r.Register(group).Setup()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, []string{"router", "group"}, order)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/test/nested/42", nil))
	assert.Equal(t, "42", rec.Body.String())

	assert.Equal(t, "test", group.Name())
	assert.Equal(t, "/test", group.Prefix())
}

// salesAPI wires the sales routes with handlers whose services are never
// reached: every admitted request below fails input validation first.
type salesAPI struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newSalesAPI(t *testing.T, opts RouteOptions) *salesAPI {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-32-characters!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "sales-test",
	}, shared.SystemClock{})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := NewRouter(engine).Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))
	for _, registrar := range SalesRoutes(Handlers{
		Auth:       handler.NewAuthHandler(nil, nil, nil),
		Subsidiary: handler.NewSubsidiaryHandler(nil, nil, nil, nil, nil, nil),
		Mynet:      handler.NewMynetHandler(nil, nil, nil, nil, nil),
		Statistics: handler.NewStatisticsHandler(nil, nil, nil),
		Admin:      handler.NewAdminHandler(nil, nil, nil),
	}, opts) {
		r.Register(registrar)
	}
	r.Setup()
	return &salesAPI{engine: engine, jwt: jwtService}
}

func (a *salesAPI) call(t *testing.T, tier identity.PermissionTier, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if tier != "" {
		token, err := a.jwt.GenerateAccessToken(identity.Principal{
			UserID:    uuid.New(),
			Username:  "tester",
			CompanyID: uuid.New(),
			Tier:      tier,
		})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token.Token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestSalesRoutes_Table(t *testing.T) {
	api := newSalesAPI(t, RouteOptions{})
	registered := map[string]bool{}
	for _, route := range api.engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/signup",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"PUT /api/v1/auth/password",
		"GET /api/v1/subsidiary/input",
		"POST /api/v1/subsidiary/sales",
		"POST /api/v1/subsidiary/sales/bulk",
		"GET /api/v1/subsidiary/statistics",
		"GET /api/v1/subsidiary/monthly-sales",
		"GET /api/v1/mynet/view",
		"GET /api/v1/mynet/view/export",
		"PUT /api/v1/mynet/sales",
		"DELETE /api/v1/mynet/sales",
		"PUT /api/v1/mynet/targets",
		"GET /api/v1/mynet/targets",
		"GET /api/v1/mynet/targets/reconcile",
		"GET /api/v1/mynet/daily-status",
		"GET /api/v1/mynet/daily-status/export",
		"GET /api/v1/mynet/compare/monthly",
		"GET /api/v1/mynet/compare/yearly",
		"POST /api/v1/mynet/compare/period",
		"GET /api/v1/mynet/compare/product",
		"GET /api/v1/statistics/yearly",
		"GET /api/v1/statistics/yearly/export",
		"POST /api/v1/statistics/period",
		"POST /api/v1/statistics/period/export",
		"GET /api/v1/statistics/products",
		"GET /api/v1/statistics/product",
		"GET /api/v1/statistics/product/export",
		"GET /api/v1/statistics/monthly",
		"GET /api/v1/statistics/monthly/export",
		"GET /api/v1/admin/products",
		"POST /api/v1/admin/products",
		"POST /api/v1/admin/products/:id/activate",
		"POST /api/v1/admin/products/:id/deactivate",
		"PUT /api/v1/admin/products/:id/price",
		"GET /api/v1/admin/products/:id/prices",
		"GET /api/v1/admin/users",
		"POST /api/v1/admin/users",
		"DELETE /api/v1/admin/users/:id",
		"GET /api/v1/admin/companies",
		"POST /api/v1/admin/companies",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSalesRoutes_Gates(t *testing.T) {
	api := newSalesAPI(t, RouteOptions{})

	tests := []struct {
		name   string
		tier   identity.PermissionTier
		method string
		path   string
		body   string
		want   int
	}{
		{"anonymous caller", "", http.MethodGet, "/api/v1/mynet/view", "", http.StatusUnauthorized},
		{"subsidiary outside its area", identity.TierSubsidiary, http.MethodGet, "/api/v1/mynet/view", "", http.StatusForbidden},
		{"subsidiary on statistics", identity.TierSubsidiary, http.MethodGet, "/api/v1/statistics/yearly", "", http.StatusForbidden},
		{"parent on the input sheet", identity.TierParent, http.MethodGet, "/api/v1/subsidiary/input", "", http.StatusForbidden},
		{"partner writing sales", identity.TierPartner, http.MethodPut, "/api/v1/mynet/sales", "{}", http.StatusForbidden},
		{"partner writing targets", identity.TierPartner, http.MethodPut, "/api/v1/mynet/targets", "{}", http.StatusForbidden},
		{"partner creating products", identity.TierPartner, http.MethodPost, "/api/v1/admin/products", "{}", http.StatusForbidden},
		{"partner listing users", identity.TierPartner, http.MethodGet, "/api/v1/admin/users", "", http.StatusForbidden},
		{"subsidiary in admin", identity.TierSubsidiary, http.MethodGet, "/api/v1/admin/products/x", "", http.StatusForbidden},

		{"subsidiary input is admitted", identity.TierSubsidiary, http.MethodGet, "/api/v1/subsidiary/input?date=15-03-2024", "", http.StatusBadRequest},
		{"partner reads targets", identity.TierPartner, http.MethodGet, "/api/v1/mynet/targets", "", http.StatusBadRequest},
		{"partner posts a period comparison", identity.TierPartner, http.MethodPost, "/api/v1/mynet/compare/period", "{}", http.StatusBadRequest},
		{"partner reads a product", identity.TierPartner, http.MethodGet, "/api/v1/admin/products/not-a-uuid", "", http.StatusBadRequest},
		{"parent writes sales", identity.TierParent, http.MethodPut, "/api/v1/mynet/sales", "{}", http.StatusBadRequest},
		{"admin deletes users", identity.TierAdmin, http.MethodDelete, "/api/v1/admin/users/not-a-uuid", "", http.StatusBadRequest},
		{"login is public", "", http.MethodPost, "/api/v1/auth/login", "{}", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.call(t, tt.tier, tt.method, tt.path, tt.body))
		})
	}
}

func TestSalesRoutes_AuthRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute, shared.SystemClock{})
	api := newSalesAPI(t, RouteOptions{AuthRateLimit: middleware.RateLimit(limiter, nil)})

	assert.Equal(t, http.StatusBadRequest, api.call(t, "", http.MethodPost, "/api/v1/auth/login", "{}"))
	assert.Equal(t, http.StatusTooManyRequests, api.call(t, "", http.MethodPost, "/api/v1/auth/signup", "{}"))
	assert.Equal(t, http.StatusUnauthorized, api.call(t, "", http.MethodGet, "/api/v1/auth/me", ""), "other routes are not throttled")
}
