package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesService records daily sales quantities
type SalesService struct {
	records   sales.RecordRepository
	products  catalog.ProductRepository
	companies identity.CompanyRepository
	window    *sales.EditWindow
	clock     shared.Clock
	logger    *zap.Logger
}

// NewSalesService creates a new SalesService
func NewSalesService(
	records sales.RecordRepository,
	products catalog.ProductRepository,
	companies identity.CompanyRepository,
	window *sales.EditWindow,
	clock shared.Clock,
	logger *zap.Logger,
) *SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesService{
		records:   records,
		products:  products,
		companies: companies,
		window:    window,
		clock:     clock,
		logger:    logger,
	}
}

// Save writes the absolute quantity for one (company, product, date)
func (s *SalesService) Save(ctx context.Context, p identity.Principal, req SaveSalesRequest) (*SalesRecordResponse, error) {
	date, err := s.authorizeWrite(ctx, p, req.CompanyID, req.SalesDate)
	if err != nil {
		return nil, err
	}
	saved, err := s.save(ctx, p, req.CompanyID, req.ProductID, date, req.Quantity)
	if err != nil {
		return nil, err
	}
	resp := ToSalesRecordResponse(saved)
	return &resp, nil
}

// BulkSave writes many products for one company and date. Authorization
// and the edit window apply to the whole request; validation failures of
// single items are reported per item and do not stop the others.
func (s *SalesService) BulkSave(ctx context.Context, p identity.Principal, req BulkSalesRequest) (*BulkResult, error) {
	date, err := s.authorizeWrite(ctx, p, req.CompanyID, req.SalesDate)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{Total: len(req.Items), Items: make([]BulkItemResult, 0, len(req.Items))}
	for _, item := range req.Items {
		saved, err := s.save(ctx, p, req.CompanyID, item.ProductID, date, item.Quantity)
		if err != nil {
			var de *shared.DomainError
			if !errors.As(err, &de) {
				return nil, err
			}
			result.FailureCount++
			result.Items = append(result.Items, BulkItemResult{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Error:     de.Message,
			})
			continue
		}
		result.SuccessCount++
		result.Items = append(result.Items, BulkItemResult{
			ProductID: item.ProductID,
			Success:   true,
			Quantity:  saved.Quantity,
		})
	}

	s.logger.Info("bulk sales saved",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("sales_date", req.SalesDate),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.String("actor", p.Username),
	)
	return result, nil
}

// Delete removes one record. Only the parent and admin tiers may delete;
// deleting an absent record succeeds.
func (s *SalesService) Delete(ctx context.Context, p identity.Principal, req DeleteSalesRequest) error {
	if !p.Tier.CanWriteAny() {
		return shared.ErrForbidden
	}
	date, err := shared.ParseDate(req.SalesDate)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, req.CompanyID, req.ProductID, date); err != nil {
		return err
	}
	s.logger.Info("sales record deleted",
		zap.String("company_id", req.CompanyID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("sales_date", req.SalesDate),
		zap.String("actor", p.Username),
	)
	return nil
}

// ListByCompanyAndDate returns one company's records for a date
func (s *SalesService) ListByCompanyAndDate(ctx context.Context, p identity.Principal, companyID uuid.UUID, date time.Time) ([]SalesRecordResponse, error) {
	if err := p.AuthorizeRead(companyID); err != nil {
		return nil, err
	}
	records, err := s.records.FindByCompanyAndDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	result := make([]SalesRecordResponse, len(records))
	for i := range records {
		result[i] = ToSalesRecordResponse(&records[i])
	}
	return result, nil
}

// IsEditable reports whether p may still edit date
func (s *SalesService) IsEditable(p identity.Principal, date time.Time) bool {
	return s.window.Check(p.Tier, date) == nil
}

func (s *SalesService) authorizeWrite(ctx context.Context, p identity.Principal, companyID uuid.UUID, rawDate string) (time.Time, error) {
	if err := p.AuthorizeWrite(companyID); err != nil {
		return time.Time{}, err
	}
	date, err := shared.ParseDate(rawDate)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.window.Check(p.Tier, date); err != nil {
		return time.Time{}, err
	}
	exists, err := s.companies.ExistsByID(ctx, companyID)
	if err != nil {
		return time.Time{}, err
	}
	if !exists {
		return time.Time{}, shared.NotFound("Company")
	}
	return date, nil
}

func (s *SalesService) save(ctx context.Context, p identity.Principal, companyID, productID uuid.UUID, date time.Time, quantity int) (*sales.Record, error) {
	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NotFound("Product")
	}
	record, err := sales.NewRecord(companyID, productID, date, quantity, p.Username, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return s.records.Upsert(ctx, record)
}
