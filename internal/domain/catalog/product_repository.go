package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll returns every product ordered by category then code
	FindAll(ctx context.Context) ([]Product, error)

	// FindActive returns active products ordered by category then code
	FindActive(ctx context.Context) ([]Product, error)

	// FindByIDs returns the products with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// SearchByName finds products whose name contains the term, case-insensitive
	SearchByName(ctx context.Context, term string) ([]Product, error)

	// Categories returns the distinct category labels
	Categories(ctx context.Context) ([]string, error)

	// MaxCode returns the highest product code, or "" when none exist
	MaxCode(ctx context.Context) (string, error)

	// ExistsByID reports whether a product exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// PriceHistoryRepository defines the interface for effective-dated price persistence
type PriceHistoryRepository interface {
	// FindEffectiveAt returns the record whose [from, to) interval contains at
	FindEffectiveAt(ctx context.Context, productID uuid.UUID, at time.Time) (*PriceHistory, error)

	// FindCurrent returns the record with no effective-to
	FindCurrent(ctx context.Context, productID uuid.UUID) (*PriceHistory, error)

	// FindCurrentForUpdate returns the current record and locks its row until
	// the enclosing transaction ends
	FindCurrentForUpdate(ctx context.Context, productID uuid.UUID) (*PriceHistory, error)

	// FindCurrentByProducts returns the current record of each listed product
	FindCurrentByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]PriceHistory, error)

	// FindByProduct returns the full history ordered by effective-from ascending
	FindByProduct(ctx context.Context, productID uuid.UUID) (PriceTimeline, error)

	// CountCurrent returns how many open records a product has
	CountCurrent(ctx context.Context, productID uuid.UUID) (int64, error)

	// Save creates or updates a record
	Save(ctx context.Context, history *PriceHistory) error
}
