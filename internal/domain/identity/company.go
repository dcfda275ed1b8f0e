package identity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mynet/sales/internal/domain/shared"
)

// Company is a reporting tenant. Exactly one company is flagged as the
// parent that aggregates every other company's sales.
type Company struct {
	shared.BaseEntity
	Name     string
	IsParent bool
}

// NewCompany creates a company
func NewCompany(name string, isParent bool, now time.Time) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 100 characters")
	}
	return &Company{
		BaseEntity: shared.NewBaseEntityAt(now),
		Name:       name,
		IsParent:   isParent,
	}, nil
}
