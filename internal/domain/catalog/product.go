package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mynet/sales/internal/domain/shared"
)

// Product is a sellable item whose quantities are reported daily by
// each company. Prices live in PriceHistory, never on the product.
type Product struct {
	shared.BaseEntity
	Code     string
	Name     string
	Category string
	IsActive bool
}

// NewProduct creates an active product. The code is assigned by the
// caller from NextProductCode.
func NewProduct(code, name, category string, now time.Time) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity: shared.NewBaseEntityAt(now),
		Code:       code,
		Name:       name,
		Category:   category,
		IsActive:   true,
	}, nil
}

// Activate marks the product as active
func (p *Product) Activate(now time.Time) {
	p.IsActive = true
	p.Touch(now)
}

// Deactivate soft-deletes the product; its history is kept
func (p *Product) Deactivate(now time.Time) {
	p.IsActive = false
	p.Touch(now)
}

// ToggleActive flips the active flag
func (p *Product) ToggleActive(now time.Time) {
	p.IsActive = !p.IsActive
	p.Touch(now)
}

// Validation functions

func validateProductCode(code string) error {
	if len(code) != productCodeWidth {
		return shared.NewDomainError("INVALID_CODE", "Product code must be 4 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_CODE", "Product code must be 4 digits")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if utf8.RuneCountInString(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	return nil
}
