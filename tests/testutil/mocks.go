package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/target"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, term string) ([]catalog.Product, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProductRepository) MaxCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// MockRecordRepository is a mock implementation of sales.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Upsert(ctx context.Context, record *sales.Record) (*sales.Record, error) {
	args := m.Called(ctx, record)
	if fn, ok := args.Get(0).(func(context.Context, *sales.Record) *sales.Record); ok {
		return fn(ctx, record), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Record), args.Error(1)
}

func (m *MockRecordRepository) Find(ctx context.Context, companyID, productID uuid.UUID, date time.Time) (*sales.Record, error) {
	args := m.Called(ctx, companyID, productID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByCompanyAndDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]sales.Record, error) {
	args := m.Called(ctx, companyID, date)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByCompanyProductBetween(ctx context.Context, companyID, productID uuid.UUID, from, to time.Time) ([]sales.Record, error) {
	args := m.Called(ctx, companyID, productID, from, to)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByProductBetween(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]sales.Record, error) {
	args := m.Called(ctx, productID, from, to)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time) ([]sales.Record, error) {
	args := m.Called(ctx, productID, date)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByYearMonth(ctx context.Context, year int, month time.Month) ([]sales.Record, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) FindByCriteria(ctx context.Context, criteria sales.Criteria) ([]sales.Record, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).([]sales.Record), args.Error(1)
}

func (m *MockRecordRepository) Delete(ctx context.Context, companyID, productID uuid.UUID, date time.Time) error {
	args := m.Called(ctx, companyID, productID, date)
	return args.Error(0)
}

// MockTargetRepository is a mock implementation of target.Repository
type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) Upsert(ctx context.Context, t *target.Target) (*target.Target, error) {
	args := m.Called(ctx, t)
	if fn, ok := args.Get(0).(func(context.Context, *target.Target) *target.Target); ok {
		return fn(ctx, t), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindByID(ctx context.Context, id uuid.UUID) (*target.Target, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindGlobal(ctx context.Context, productID uuid.UUID, year int, month time.Month) (*target.Target, error) {
	args := m.Called(ctx, productID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindForCompany(ctx context.Context, companyID, productID uuid.UUID, year int, month time.Month) (*target.Target, error) {
	args := m.Called(ctx, companyID, productID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindCompanyTargets(ctx context.Context, productID uuid.UUID, year int, month time.Month) ([]target.Target, error) {
	args := m.Called(ctx, productID, year, month)
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindByCompanyAndMonth(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]target.Target, error) {
	args := m.Called(ctx, companyID, year, month)
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindGlobalByMonth(ctx context.Context, year int, month time.Month) ([]target.Target, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of identity.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByName(ctx context.Context, name string) (*identity.Company, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindParent(ctx context.Context) (*identity.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]identity.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindSubsidiaries(ctx context.Context) ([]identity.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByRole(ctx context.Context, role identity.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	_ catalog.ProductRepository  = (*MockProductRepository)(nil)
	_ sales.RecordRepository     = (*MockRecordRepository)(nil)
	_ target.Repository          = (*MockTargetRepository)(nil)
	_ identity.CompanyRepository = (*MockCompanyRepository)(nil)
	_ identity.UserRepository    = (*MockUserRepository)(nil)
)
