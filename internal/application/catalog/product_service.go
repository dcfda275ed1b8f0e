package catalog

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product and price operations
type ProductService struct {
	scope    TransactionScope
	products catalog.ProductRepository
	prices   catalog.PriceHistoryRepository
	records  sales.RecordRepository
	clock    shared.Clock
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	scope TransactionScope,
	products catalog.ProductRepository,
	prices catalog.PriceHistoryRepository,
	records sales.RecordRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		scope:    scope,
		products: products,
		prices:   prices,
		records:  records,
		clock:    clock,
		logger:   logger,
	}
}

// Create assigns the next product code and writes the product together with
// its first price interval.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, actor string) (*ProductResponse, error) {
	now := s.clock.Now()

	var (
		product *catalog.Product
		price   *catalog.PriceHistory
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		maxCode, err := repos.Products().MaxCode(ctx)
		if err != nil {
			return err
		}
		code, err := catalog.NextProductCode(maxCode)
		if err != nil {
			return err
		}
		product, err = catalog.NewProduct(code, req.Name, req.Category, now)
		if err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}
		price, err = catalog.NewInitialPrice(product.ID, req.CostPrice, req.SupplyPrice, actor, now)
		if err != nil {
			return err
		}
		return repos.Prices().Save(ctx, price)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code),
		zap.String("actor", actor),
	)
	resp := ToProductResponse(product, price)
	return &resp, nil
}

// GetByID returns a product with its current prices
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current, err := s.currentPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, current)
	return &resp, nil
}

// ListActive returns active products ordered by category, current supply
// price, then code
func (s *ProductService) ListActive(ctx context.Context) ([]ProductResponse, error) {
	products, current, err := s.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products, current), nil
}

// ListAll returns every product, active or not
func (s *ProductService) ListAll(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withPrices(ctx, products)
}

// Search finds products whose name contains term, ignoring case
func (s *ProductService) Search(ctx context.Context, term string) ([]ProductResponse, error) {
	products, err := s.products.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.withPrices(ctx, products)
}

// Categories returns the distinct categories in Korean dictionary order
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	shared.SortNames(categories)
	return categories, nil
}

// Activate marks a product active
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.mutate(ctx, id, (*catalog.Product).Activate)
}

// Deactivate hides a product from input sheets and reports
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.mutate(ctx, id, (*catalog.Product).Deactivate)
}

// Toggle flips a product's active flag
func (s *ProductService) Toggle(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.mutate(ctx, id, (*catalog.Product).ToggleActive)
}

func (s *ProductService) mutate(ctx context.Context, id uuid.UUID, apply func(*catalog.Product, time.Time)) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(product, s.clock.Now())
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	current, err := s.currentPrice(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, current)
	return &resp, nil
}

// UpdatePrice closes the current price interval and opens a new one at the
// same instant. Both steps commit together or not at all. A product with no
// current price gets a fresh interval, which then needs both prices.
func (s *ProductService) UpdatePrice(ctx context.Context, productID uuid.UUID, req UpdatePriceRequest, actor string) (*PriceResponse, error) {
	if req.CostPrice == nil && req.SupplyPrice == nil {
		return nil, shared.InvalidInput("At least one price is required")
	}
	now := s.clock.Now()

	var next *catalog.PriceHistory
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.Products().ExistsByID(ctx, productID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NotFound("Product")
		}

		current, err := repos.Prices().FindCurrentForUpdate(ctx, productID)
		if errors.Is(err, shared.ErrNotFound) {
			if req.CostPrice == nil || req.SupplyPrice == nil {
				return shared.InvalidInput("Both prices are required when the product has no current price")
			}
			next, err = catalog.NewInitialPrice(productID, *req.CostPrice, *req.SupplyPrice, actor, now)
			if err != nil {
				return err
			}
			return repos.Prices().Save(ctx, next)
		}
		if err != nil {
			return err
		}

		next, err = current.Succeed(req.CostPrice, req.SupplyPrice, actor, now)
		if err != nil {
			return err
		}
		if err := repos.Prices().Save(ctx, current); err != nil {
			return err
		}
		return repos.Prices().Save(ctx, next)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("price updated",
		zap.String("product_id", productID.String()),
		zap.String("cost_price", next.CostPrice.String()),
		zap.String("supply_price", next.SupplyPrice.String()),
		zap.String("actor", actor),
	)
	resp := ToPriceResponse(next)
	return &resp, nil
}

// GetCurrentPrice returns the open price interval of a product
func (s *ProductService) GetCurrentPrice(ctx context.Context, productID uuid.UUID) (*PriceResponse, error) {
	h, err := s.prices.FindCurrent(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToPriceResponse(h)
	return &resp, nil
}

// GetPriceAt returns the price interval in effect at t
func (s *ProductService) GetPriceAt(ctx context.Context, productID uuid.UUID, t time.Time) (*PriceResponse, error) {
	h, err := s.prices.FindEffectiveAt(ctx, productID, t)
	if err != nil {
		return nil, err
	}
	resp := ToPriceResponse(h)
	return &resp, nil
}

// PriceHistory returns every price interval of a product, newest first
func (s *ProductService) PriceHistory(ctx context.Context, productID uuid.UUID) ([]PriceResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	timeline, err := s.prices.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	result := make([]PriceResponse, 0, len(timeline))
	for i := len(timeline) - 1; i >= 0; i-- {
		result = append(result, ToPriceResponse(&timeline[i]))
	}
	return result, nil
}

// InputSheet lists the active products grouped by category together with
// the quantity the company already recorded for date. Products without a
// record show 0.
func (s *ProductService) InputSheet(ctx context.Context, companyID uuid.UUID, date time.Time) ([]InputCategory, error) {
	products, _, err := s.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.FindByCompanyAndDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	quantities := make(map[uuid.UUID]int, len(records))
	for _, r := range records {
		quantities[r.ProductID] = r.Quantity
	}

	var groups []InputCategory
	index := make(map[string]int)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, InputCategory{Category: p.Category})
		}
		groups[i].Items = append(groups[i].Items, InputItem{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Quantity:  quantities[p.ID],
		})
	}
	return groups, nil
}

func (s *ProductService) currentPrice(ctx context.Context, productID uuid.UUID) (*catalog.PriceHistory, error) {
	h, err := s.prices.FindCurrent(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return h, err
}

func (s *ProductService) withPrices(ctx context.Context, products []catalog.Product) ([]ProductResponse, error) {
	current, err := s.currentPrices(ctx, products)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products, current), nil
}

func (s *ProductService) currentPrices(ctx context.Context, products []catalog.Product) (map[uuid.UUID]catalog.PriceHistory, error) {
	ids := make([]uuid.UUID, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	return s.prices.FindCurrentByProducts(ctx, ids)
}

// activeProducts keeps the repository's category order and sorts each
// category by current supply price, then code. Products without a price
// come last in their category.
func (s *ProductService) activeProducts(ctx context.Context) ([]catalog.Product, map[uuid.UUID]catalog.PriceHistory, error) {
	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, nil, err
	}
	current, err := s.currentPrices(ctx, products)
	if err != nil {
		return nil, nil, err
	}

	rank := make(map[string]int)
	for _, p := range products {
		if _, ok := rank[p.Category]; !ok {
			rank[p.Category] = len(rank)
		}
	}
	slices.SortStableFunc(products, func(a, b catalog.Product) int {
		if c := cmp.Compare(rank[a.Category], rank[b.Category]); c != 0 {
			return c
		}
		pa, okA := current[a.ID]
		pb, okB := current[b.ID]
		switch {
		case okA && okB:
			if c := pa.SupplyPrice.Cmp(pb.SupplyPrice); c != 0 {
				return c
			}
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a.Code, b.Code)
	})
	return products, current, nil
}

func toProductResponses(products []catalog.Product, current map[uuid.UUID]catalog.PriceHistory) []ProductResponse {
	result := make([]ProductResponse, len(products))
	for i := range products {
		var price *catalog.PriceHistory
		if h, ok := current[products[i].ID]; ok {
			price = &h
		}
		result[i] = ToProductResponse(&products[i], price)
	}
	return result
}
