package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Criteria narrows a record query. Zero values are ignored; From and To
// bound SalesDate inclusively.
type Criteria struct {
	CompanyID  *uuid.UUID
	ProductID  *uuid.UUID
	CompanyIDs []uuid.UUID
	From       time.Time
	To         time.Time
}

// RecordRepository defines the interface for sales record persistence
type RecordRepository interface {
	// Upsert writes the absolute quantity for the record's triple, inserting
	// when absent and overwriting quantity and modifier when present
	Upsert(ctx context.Context, record *Record) (*Record, error)

	// Find returns the record for a (company, product, date) triple
	Find(ctx context.Context, companyID, productID uuid.UUID, date time.Time) (*Record, error)

	// FindByCompanyAndDate returns one company's records for a date,
	// ordered by product category then product code
	FindByCompanyAndDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]Record, error)

	// FindByCompanyProductBetween returns records ordered by date
	FindByCompanyProductBetween(ctx context.Context, companyID, productID uuid.UUID, from, to time.Time) ([]Record, error)

	// FindByProductBetween returns every company's records for a product ordered by date
	FindByProductBetween(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]Record, error)

	// FindByProductAndDate returns every company's records for a product on a date,
	// ordered by company name
	FindByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time) ([]Record, error)

	// FindByYearMonth returns all records of a month ordered by company name then date
	FindByYearMonth(ctx context.Context, year int, month time.Month) ([]Record, error)

	// FindByCriteria returns records matching criteria ordered by date
	FindByCriteria(ctx context.Context, criteria Criteria) ([]Record, error)

	// Delete removes the record for a triple; absent records are not an error
	Delete(ctx context.Context, companyID, productID uuid.UUID, date time.Time) error
}
