package report

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Export kinds, used in archive keys and metrics
const (
	ExportStatistics  = "statistics"
	ExportDailyStatus = "daily_status"
	ExportMonthly     = "monthly"
	ExportYearly      = "yearly"
	ExportPeriod      = "period"
	ExportProduct     = "product"
)

// WorkbookRenderer turns report results into xlsx workbooks
type WorkbookRenderer interface {
	RenderStatistics(view *StatisticsView) ([]byte, error)
	RenderDailyStatus(status *report.DailyStatus) ([]byte, error)
	RenderMonthly(comparison *report.MonthlyComparison) ([]byte, error)
	RenderYearly(comparison *report.YearlyComparison) ([]byte, error)
	RenderPeriod(comparison *report.PeriodComparison) ([]byte, error)
	RenderProduct(comparison *report.ProductComparison) ([]byte, error)
}

// ExportArchive keeps a copy of generated files
type ExportArchive interface {
	Archive(ctx context.Context, key string, file *ExportFile) error
}

// ExportMetrics records export outcomes
type ExportMetrics interface {
	RecordExport(ctx context.Context, kind string, size int, duration time.Duration, err error)
}

// ExportService renders reports as downloadable spreadsheets
type ExportService struct {
	statistics  *StatisticsService
	dailyStatus *DailyStatusService
	comparisons *ComparisonService
	renderer    WorkbookRenderer
	archive     ExportArchive
	metrics     ExportMetrics
	clock       shared.Clock
	logger      *zap.Logger
}

// ExportOption configures optional collaborators of the ExportService
type ExportOption func(*ExportService)

// WithArchive stores a copy of every export
func WithArchive(a ExportArchive) ExportOption {
	return func(s *ExportService) { s.archive = a }
}

// WithExportMetrics records export counts and durations
func WithExportMetrics(m ExportMetrics) ExportOption {
	return func(s *ExportService) { s.metrics = m }
}

// NewExportService creates a new ExportService
func NewExportService(
	statistics *StatisticsService,
	dailyStatus *DailyStatusService,
	comparisons *ComparisonService,
	renderer WorkbookRenderer,
	clock shared.Clock,
	logger *zap.Logger,
	opts ...ExportOption,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ExportService{
		statistics:  statistics,
		dailyStatus: dailyStatus,
		comparisons: comparisons,
		renderer:    renderer,
		clock:       clock,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportStatistics renders the statistics view
func (s *ExportService) ExportStatistics(ctx context.Context, p identity.Principal, q ViewQuery) (*ExportFile, error) {
	return s.export(ctx, ExportStatistics, func() (string, []byte, error) {
		view, err := s.statistics.View(ctx, p, q)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderStatistics(view)
		return fmt.Sprintf("조회_%s_%s.xlsx", view.CompanyName, view.Date), content, err
	})
}

// ExportDailyStatus renders the daily status board
func (s *ExportService) ExportDailyStatus(ctx context.Context, p identity.Principal, q DailyStatusQuery) (*ExportFile, error) {
	return s.export(ctx, ExportDailyStatus, func() (string, []byte, error) {
		status, err := s.dailyStatus.Status(ctx, p, q)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderDailyStatus(status)
		return fmt.Sprintf("일일매출현황_%s.xlsx", status.Date.Format(shared.DateLayout)), content, err
	})
}

// ExportMonthly renders the monthly comparison
func (s *ExportService) ExportMonthly(ctx context.Context, p identity.Principal, q MonthlyQuery) (*ExportFile, error) {
	return s.export(ctx, ExportMonthly, func() (string, []byte, error) {
		comparison, err := s.comparisons.Monthly(ctx, p, q)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderMonthly(comparison)
		return fmt.Sprintf("월별비교_%d.xlsx", comparison.Year), content, err
	})
}

// ExportYearly renders the yearly comparison
func (s *ExportService) ExportYearly(ctx context.Context, p identity.Principal, q YearlyQuery) (*ExportFile, error) {
	return s.export(ctx, ExportYearly, func() (string, []byte, error) {
		comparison, err := s.comparisons.Yearly(ctx, p, q)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderYearly(comparison)
		return fmt.Sprintf("연도별비교_%d-%d.xlsx", comparison.Years[0], comparison.Years[2]), content, err
	})
}

// ExportPeriod renders the period comparison
func (s *ExportService) ExportPeriod(ctx context.Context, p identity.Principal, req PeriodRequest) (*ExportFile, error) {
	return s.export(ctx, ExportPeriod, func() (string, []byte, error) {
		comparison, err := s.comparisons.Period(ctx, p, req)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderPeriod(comparison)
		return fmt.Sprintf("기간별비교_%s.xlsx", comparison.ProductName), content, err
	})
}

// ExportProduct renders the product comparison
func (s *ExportService) ExportProduct(ctx context.Context, p identity.Principal, q ProductQuery) (*ExportFile, error) {
	return s.export(ctx, ExportProduct, func() (string, []byte, error) {
		comparison, err := s.comparisons.Product(ctx, p, q)
		if err != nil {
			return "", nil, err
		}
		content, err := s.renderer.RenderProduct(comparison)
		return fmt.Sprintf("제품별비교_%s.xlsx", comparison.ProductName), content, err
	})
}

func (s *ExportService) export(ctx context.Context, kind string, build func() (string, []byte, error)) (file *ExportFile, err error) {
	start := time.Now()
	defer func() {
		if s.metrics == nil {
			return
		}
		size := 0
		if file != nil {
			size = len(file.Content)
		}
		s.metrics.RecordExport(ctx, kind, size, time.Since(start), err)
	}()

	filename, content, err := build()
	if err != nil {
		return nil, err
	}
	file = &ExportFile{
		Filename:    filename,
		ContentType: ContentTypeXLSX,
		Content:     content,
		GeneratedAt: s.clock.Now(),
	}

	if s.archive != nil {
		key := ArchiveKey(kind, file.GeneratedAt)
		if aerr := s.archive.Archive(ctx, key, file); aerr != nil {
			// The download still succeeds without its archived copy.
			s.logger.Warn("failed to archive export",
				zap.String("kind", kind),
				zap.String("key", key),
				zap.Error(aerr),
			)
		}
	}

	s.logger.Info("report exported",
		zap.String("kind", kind),
		zap.String("filename", filename),
		zap.Int("bytes", len(content)),
	)
	return file, nil
}

// ArchiveKey is the object key of an archived export: the kind, the
// generation month and a time-ordered ULID
func ArchiveKey(kind string, at time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy())
	return path.Join(kind, at.UTC().Format("2006/01"), id.String()+".xlsx")
}
