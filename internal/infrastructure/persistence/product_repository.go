package persistence

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Product")
	}
	return model.ToDomain(), nil
}

// FindByCode finds a product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&model).Error; err != nil {
		return nil, translate(err, "Product")
	}
	return model.ToDomain(), nil
}

// FindAll returns every product ordered by category then code
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns active products ordered by category then code
func (r *GormProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("is_active = ?", true))
}

// FindByIDs returns the products with the given IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// SearchByName finds products whose name contains the term, case-insensitive
func (r *GormProductRepository) SearchByName(ctx context.Context, term string) ([]catalog.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.FindAll(ctx)
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return r.find(r.db.WithContext(ctx).Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern))
}

// Categories returns the distinct category labels
func (r *GormProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// MaxCode returns the highest product code, or "" when none exist.
// Codes are fixed-width digits so the string maximum is the numeric one.
func (r *GormProductRepository) MaxCode(ctx context.Context) (string, error) {
	var max sql.NullString
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select("MAX(code)").
		Scan(&max).Error; err != nil {
		return "", err
	}
	return max.String, nil
}

// ExistsByID reports whether a product exists
func (r *GormProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return translate(r.db.WithContext(ctx).Save(model).Error, "Product")
}

func (r *GormProductRepository) find(query *gorm.DB) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := query.Order("category, code").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
