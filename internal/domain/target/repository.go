package target

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for target persistence
type Repository interface {
	// Upsert writes the quantity for the target's (company, product, year, month)
	// key, creating the row when absent
	Upsert(ctx context.Context, target *Target) (*Target, error)

	// FindByID finds a target by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Target, error)

	// FindGlobal returns the global target of a product and month
	FindGlobal(ctx context.Context, productID uuid.UUID, year int, month time.Month) (*Target, error)

	// FindForCompany returns one company's target of a product and month
	FindForCompany(ctx context.Context, companyID, productID uuid.UUID, year int, month time.Month) (*Target, error)

	// FindCompanyTargets returns every per-company target of a product and month
	FindCompanyTargets(ctx context.Context, productID uuid.UUID, year int, month time.Month) ([]Target, error)

	// FindByCompanyAndMonth returns one company's targets for a month
	FindByCompanyAndMonth(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]Target, error)

	// FindGlobalByMonth returns the global targets of a month
	FindGlobalByMonth(ctx context.Context, year int, month time.Month) ([]Target, error)

	// Delete removes a target
	Delete(ctx context.Context, id uuid.UUID) error
}
