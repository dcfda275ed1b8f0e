package catalog

import (
	"context"

	"github.com/mynet/sales/internal/domain/catalog"
)

// TransactionScope runs catalog writes atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the catalog repositories bound to one
// transaction.
type TransactionalRepositories interface {
	Products() catalog.ProductRepository
	Prices() catalog.PriceHistoryRepository
}
