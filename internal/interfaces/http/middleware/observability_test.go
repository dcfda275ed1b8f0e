package middleware

import (
	"context"
	"net/http"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// withPrincipal stands in for the JWT middleware
func withPrincipal(p identity.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(PrincipalKey, p)
		c.Next()
	}
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(HTTPMetricsConfig{Enabled: false}))
	router.GET("/test", okHandler)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "").Code)
}

func TestHTTPMetricsWithMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := telemetry.NewMeterProviderWithReader(reader, nil).Meter("test")
	p := newTestPrincipal(identity.TierSubsidiary)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(meter, true), withPrincipal(p))
	router.GET("/api/v1/subsidiary/input", func(c *gin.Context) {
		c.String(http.StatusOK, "rows")
	})

	serve(router, http.MethodGet, "/api/v1/subsidiary/input?date=2024-03-15", "")
	serve(router, http.MethodGet, "/api/v1/subsidiary/input?date=2024-03-16", "")
	serve(router, http.MethodGet, "/nowhere", "")

	metrics := collectMetrics(t, reader)

	total, ok := metrics["http_server_request_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byRoute := map[string]int64{}
	for _, dp := range total.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		byRoute[route.AsString()] += dp.Value
		if route.AsString() == "/api/v1/subsidiary/input" {
			company, _ := dp.Attributes.Value(telemetry.AttrCompanyID)
			assert.Equal(t, p.CompanyID.String(), company.AsString())
			tier, _ := dp.Attributes.Value(telemetry.AttrTier)
			assert.Equal(t, "SUBSIDIARY", tier.AsString())
		}
	}
	assert.Equal(t, map[string]int64{"/api/v1/subsidiary/input": 2, "unknown": 1}, byRoute)

	active, ok := metrics["http_server_active_requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, active.DataPoints, 1)
	assert.Equal(t, int64(0), active.DataPoints[0].Value)

	duration, ok := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestTracing_SpanNameAndEnrichment(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	p := newTestPrincipal(identity.TierParent)
	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "sales-test", Enabled: true}), SpanEnricher(), withPrincipal(p))
	router.GET("/api/v1/mynet/view", okHandler)
	router.GET("/health", okHandler)

	serve(router, http.MethodGet, "/api/v1/mynet/view?company=all", "")
	serve(router, http.MethodGet, "/health", "")

	spans := recorder.Ended()
	require.Len(t, spans, 1, "health checks are not traced")
	assert.Equal(t, "GET /api/v1/mynet/view", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), telemetry.AttrTier.String("PARENT"))
	assert.Contains(t, spans[0].Attributes(), telemetry.AttrCompanyID.String(p.CompanyID.String()))

	var hasRequestID bool
	for _, kv := range spans[0].Attributes() {
		if kv.Key == attribute.Key("request_id") && kv.Value.AsString() != "" {
			hasRequestID = true
		}
	}
	assert.True(t, hasRequestID)
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{}), SpanEnricher())
	router.GET("/test", okHandler)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", "").Code)
}

func TestProfiling_Labels(t *testing.T) {
	p := newTestPrincipal(identity.TierSubsidiary)
	labels := map[string]string{}

	router := gin.New()
	router.Use(withPrincipal(p), Profiling(true))
	router.GET("/api/v1/subsidiary/sales/:id", func(c *gin.Context) {
		pprof.ForLabels(c.Request.Context(), func(key, value string) bool {
			labels[key] = value
			return true
		})
	})

	serve(router, http.MethodGet, "/api/v1/subsidiary/sales/42", "")

	assert.Equal(t, map[string]string{
		telemetry.ProfilingLabelMethod:     "GET",
		telemetry.ProfilingLabelRoute:      "/api/v1/subsidiary/sales/:id",
		telemetry.ProfilingLabelController: "subsidiary",
		telemetry.ProfilingLabelCompanyID:  p.CompanyID.String(),
	}, labels)
}

func TestControllerOf(t *testing.T) {
	tests := map[string]string{
		"/api/v1/mynet/compare/yearly": "mynet",
		"/api/v2/admin/products/:id":   "admin",
		"/health":                      "health",
		"/api/v1/:id":                  "",
		"":                             "",
	}
	for route, want := range tests {
		assert.Equal(t, want, controllerOf(route), route)
	}
}
