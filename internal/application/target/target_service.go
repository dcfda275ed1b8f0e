package target

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/domain/target"
	"go.uber.org/zap"
)

// TargetService maintains monthly sales targets
type TargetService struct {
	targets   target.Repository
	products  catalog.ProductRepository
	companies identity.CompanyRepository
	clock     shared.Clock
	logger    *zap.Logger
}

// NewTargetService creates a new TargetService
func NewTargetService(
	targets target.Repository,
	products catalog.ProductRepository,
	companies identity.CompanyRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *TargetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TargetService{
		targets:   targets,
		products:  products,
		companies: companies,
		clock:     clock,
		logger:    logger,
	}
}

// Save writes one target quantity
func (s *TargetService) Save(ctx context.Context, p identity.Principal, req SaveTargetRequest) (*TargetResponse, error) {
	period := shared.YearMonth{Year: req.Year, Month: time.Month(req.Month)}
	if err := s.authorize(ctx, p, req.CompanyID, period); err != nil {
		return nil, err
	}
	saved, err := s.save(ctx, req.CompanyID, req.ProductID, period, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Info("target saved",
		zap.String("product_id", req.ProductID.String()),
		zap.Stringer("period", period),
		zap.Int("quantity", saved.Quantity),
		zap.Bool("global", saved.IsGlobal()),
		zap.String("actor", p.Username),
	)
	resp := ToTargetResponse(saved)
	return &resp, nil
}

// BulkSave writes the targets of many products for one company or for
// the global scope. Items that fail validation are reported and skipped.
func (s *TargetService) BulkSave(ctx context.Context, p identity.Principal, req BulkTargetRequest) (*BulkTargetResult, error) {
	period := shared.YearMonth{Year: req.Year, Month: time.Month(req.Month)}
	if err := s.authorize(ctx, p, req.CompanyID, period); err != nil {
		return nil, err
	}

	result := &BulkTargetResult{Total: len(req.Items), Saved: make([]TargetResponse, 0, len(req.Items))}
	for _, item := range req.Items {
		saved, err := s.save(ctx, req.CompanyID, item.ProductID, period, item.Quantity)
		if err != nil {
			var de *shared.DomainError
			if !errors.As(err, &de) {
				return nil, err
			}
			result.FailureCount++
			result.Errors = append(result.Errors, BulkItemError{ProductID: item.ProductID, Error: de.Message})
			continue
		}
		result.SuccessCount++
		result.Saved = append(result.Saved, ToTargetResponse(saved))
	}

	s.logger.Info("bulk targets saved",
		zap.Stringer("period", period),
		zap.Bool("global", req.CompanyID == nil),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailureCount),
		zap.String("actor", p.Username),
	)
	return result, nil
}

// Delete removes a target
func (s *TargetService) Delete(ctx context.Context, p identity.Principal, id uuid.UUID) error {
	if !p.Tier.CanWriteAny() {
		return shared.ErrForbidden
	}
	if err := s.targets.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("target deleted", zap.String("target_id", id.String()), zap.String("actor", p.Username))
	return nil
}

// ListByCompanyAndMonth returns one company's targets for a month
func (s *TargetService) ListByCompanyAndMonth(ctx context.Context, p identity.Principal, companyID uuid.UUID, period shared.YearMonth) ([]TargetResponse, error) {
	if err := p.AuthorizeRead(companyID); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	targets, err := s.targets.FindByCompanyAndMonth(ctx, companyID, period.Year, period.Month)
	if err != nil {
		return nil, err
	}
	return ToTargetResponses(targets), nil
}

// ListGlobal returns the global targets of a month
func (s *TargetService) ListGlobal(ctx context.Context, p identity.Principal, period shared.YearMonth) ([]TargetResponse, error) {
	if !p.Tier.CanViewAll() {
		return nil, shared.ErrForbidden
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}
	targets, err := s.targets.FindGlobalByMonth(ctx, period.Year, period.Month)
	if err != nil {
		return nil, err
	}
	return ToTargetResponses(targets), nil
}

// Reconcile checks whether the per-company targets of a product add up to
// its global target. It only reports; nothing is corrected.
func (s *TargetService) Reconcile(ctx context.Context, p identity.Principal, productID uuid.UUID, period shared.YearMonth) (*ReconcileResponse, error) {
	if !p.Tier.CanViewAll() {
		return nil, shared.ErrForbidden
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	global, err := s.targets.FindGlobal(ctx, productID, period.Year, period.Month)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	companyTargets, err := s.targets.FindCompanyTargets(ctx, productID, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	resp := &ReconcileResponse{
		ProductID:  productID,
		Year:       period.Year,
		Month:      int(period.Month),
		HasGlobal:  global != nil,
		CompanySum: target.SumQuantities(companyTargets),
		Consistent: target.Reconcile(global, companyTargets),
	}
	if global != nil {
		resp.GlobalQuantity = global.Quantity
	}
	if !resp.Consistent {
		s.logger.Warn("targets do not reconcile",
			zap.String("product_id", productID.String()),
			zap.Stringer("period", period),
			zap.Int("global", resp.GlobalQuantity),
			zap.Int("company_sum", resp.CompanySum),
		)
	}
	return resp, nil
}

func (s *TargetService) authorize(ctx context.Context, p identity.Principal, companyID *uuid.UUID, period shared.YearMonth) error {
	if !p.Tier.CanWriteAny() {
		return shared.ErrForbidden
	}
	if err := period.Validate(); err != nil {
		return err
	}
	if companyID == nil {
		return nil
	}
	exists, err := s.companies.ExistsByID(ctx, *companyID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NotFound("Company")
	}
	return nil
}

func (s *TargetService) save(ctx context.Context, companyID *uuid.UUID, productID uuid.UUID, period shared.YearMonth, quantity int) (*target.Target, error) {
	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NotFound("Product")
	}
	t, err := target.NewTarget(companyID, productID, period, quantity, s.clock.Now())
	if err != nil {
		return nil, err
	}
	return s.targets.Upsert(ctx, t)
}
