package telemetry_test

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/mynet/sales/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_Validation(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "sales"}, nil)
	assert.ErrorContains(t, err, "server address is required")

	_, err = telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, nil)
	assert.ErrorContains(t, err, "application name is required")
}

func TestWithProfilingLabels(t *testing.T) {
	long := strings.Repeat("r", 200)
	var called bool
	telemetry.WithProfilingLabels(context.Background(), map[string]string{
		telemetry.ProfilingLabelMethod:    "GET",
		telemetry.ProfilingLabelRoute:     long,
		telemetry.ProfilingLabelCompanyID: "",
	}, func(ctx context.Context) {
		called = true
		method, ok := pprof.Label(ctx, telemetry.ProfilingLabelMethod)
		assert.True(t, ok)
		assert.Equal(t, "GET", method)

		route, _ := pprof.Label(ctx, telemetry.ProfilingLabelRoute)
		assert.Len(t, route, 128)

		_, ok = pprof.Label(ctx, telemetry.ProfilingLabelCompanyID)
		assert.False(t, ok)
	})
	assert.True(t, called)
}

func TestWithProfilingLabels_Empty(t *testing.T) {
	var called bool
	telemetry.WithProfilingLabels(context.Background(), nil, func(ctx context.Context) {
		called = true
		_, ok := pprof.Label(ctx, telemetry.ProfilingLabelMethod)
		assert.False(t, ok)
	})
	assert.True(t, called)
}
