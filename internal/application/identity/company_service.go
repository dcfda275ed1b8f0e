package identity

import (
	"context"
	"errors"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"go.uber.org/zap"
)

// CompanyService manages the tenant list
type CompanyService struct {
	companies identity.CompanyRepository
	clock     shared.Clock
	logger    *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(companies identity.CompanyRepository, clock shared.Clock, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{companies: companies, clock: clock, logger: logger}
}

// List returns every company ordered by name
func (s *CompanyService) List(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.companies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]CompanyResponse, len(companies))
	for i := range companies {
		result[i] = ToCompanyResponse(&companies[i])
	}
	return result, nil
}

// Subsidiaries returns the companies selectable at signup
func (s *CompanyService) Subsidiaries(ctx context.Context) ([]CompanyResponse, error) {
	companies, err := s.companies.FindSubsidiaries(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]CompanyResponse, len(companies))
	for i := range companies {
		result[i] = ToCompanyResponse(&companies[i])
	}
	return result, nil
}

// Create adds a company. Names are unique and at most one company is the parent.
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := identity.NewCompany(req.Name, req.IsParent, s.clock.Now())
	if err != nil {
		return nil, err
	}

	exists, err := s.companies.ExistsByName(ctx, company.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company name already exists")
	}

	if company.IsParent {
		_, err := s.companies.FindParent(ctx)
		switch {
		case err == nil:
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A parent company already exists")
		case !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	if err := s.companies.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info("company created", zap.String("name", company.Name), zap.Bool("parent", company.IsParent))
	resp := ToCompanyResponse(company)
	return &resp, nil
}
