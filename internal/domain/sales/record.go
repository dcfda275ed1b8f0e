package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/shared"
)

// Record is the quantity one company sold of one product on one calendar
// date. (CompanyID, ProductID, SalesDate) is unique; writing the same
// triple again overwrites the quantity.
type Record struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	ProductID      uuid.UUID
	SalesDate      time.Time
	Quantity       int
	LastModifiedAt time.Time
	ModifiedBy     string
	CreatedAt      time.Time
}

// NewRecord creates a record for the triple with an absolute quantity
func NewRecord(companyID, productID uuid.UUID, date time.Time, quantity int, actor string, now time.Time) (*Record, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	return &Record{
		ID:             uuid.New(),
		CompanyID:      companyID,
		ProductID:      productID,
		SalesDate:      shared.DateOf(date),
		Quantity:       quantity,
		LastModifiedAt: now,
		ModifiedBy:     actor,
		CreatedAt:      now,
	}, nil
}

// SetQuantity overwrites the quantity and modifier metadata
func (r *Record) SetQuantity(quantity int, actor string, now time.Time) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	r.Quantity = quantity
	r.ModifiedBy = actor
	r.LastModifiedAt = now
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return nil
}

// TotalQuantity sums the quantities of records
func TotalQuantity(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Quantity
	}
	return total
}

// LatestModified returns the most recently modified record, or nil
func LatestModified(records []Record) *Record {
	var latest *Record
	for i := range records {
		if latest == nil || records[i].LastModifiedAt.After(latest.LastModifiedAt) {
			latest = &records[i]
		}
	}
	return latest
}
