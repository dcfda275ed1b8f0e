package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Company")
	}
	return model.ToDomain(), nil
}

// FindByName finds a company by its exact name
func (r *GormCompanyRepository) FindByName(ctx context.Context, name string) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&model).Error; err != nil {
		return nil, translate(err, "Company")
	}
	return model.ToDomain(), nil
}

// FindParent returns the parent company
func (r *GormCompanyRepository) FindParent(ctx context.Context) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Where("is_parent = ?", true).Order("created_at").First(&model).Error; err != nil {
		return nil, translate(err, "Parent company")
	}
	return model.ToDomain(), nil
}

// FindAll returns every company ordered by name
func (r *GormCompanyRepository) FindAll(ctx context.Context) ([]identity.Company, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindSubsidiaries returns the non-parent companies ordered by name
func (r *GormCompanyRepository) FindSubsidiaries(ctx context.Context) ([]identity.Company, error) {
	return r.find(r.db.WithContext(ctx).Where("is_parent = ?", false))
}

// ExistsByID reports whether a company exists
func (r *GormCompanyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(r.db.WithContext(ctx).Where("id = ?", id))
}

// ExistsByName reports whether the name is taken
func (r *GormCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)))
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	model := models.CompanyModelFromDomain(company)
	return translate(r.db.WithContext(ctx).Save(model).Error, "Company")
}

func (r *GormCompanyRepository) find(query *gorm.DB) ([]identity.Company, error) {
	var rows []models.CompanyModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	companies := make([]identity.Company, len(rows))
	for i := range rows {
		companies[i] = *rows[i].ToDomain()
	}
	return companies, nil
}

func (r *GormCompanyRepository) exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Model(&models.CompanyModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)
