package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/mynet/sales/internal/application/report"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ExportMetrics counts workbook exports and records how long and how large
// they were.
type ExportMetrics struct {
	exports  *Counter
	duration *Histogram
	size     *Histogram
}

// NewExportMetrics registers the export instruments on meter
func NewExportMetrics(meter metric.Meter) (*ExportMetrics, error) {
	if meter == nil {
		return nil, errors.New("NewExportMetrics: meter cannot be nil")
	}
	exports, err := NewCounter(meter, "report_export_total", "Workbook exports by kind and outcome", "{export}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "report_export_duration_seconds",
		Description: "Time spent building and rendering a workbook",
		Unit:        "s",
		Boundaries:  ExportDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	size, err := NewHistogram(meter, HistogramOpts{
		Name:        "report_export_size_bytes",
		Description: "Size of rendered workbooks",
		Unit:        "By",
		Boundaries:  ExportSizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &ExportMetrics{exports: exports, duration: duration, size: size}, nil
}

// RecordExport records one export attempt. Sizes are only recorded for
// successful exports.
func (m *ExportMetrics) RecordExport(ctx context.Context, kind string, size int, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	attrs := []attribute.KeyValue{AttrExportKind.String(kind), AttrOutcome.String(outcome)}
	m.exports.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, duration, attrs...)
	if err == nil {
		m.size.Record(ctx, float64(size), AttrExportKind.String(kind))
	}
}

var _ report.ExportMetrics = (*ExportMetrics)(nil)
