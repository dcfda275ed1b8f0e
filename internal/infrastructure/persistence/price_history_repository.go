package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPriceHistoryRepository implements PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GormPriceHistoryRepository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// FindEffectiveAt returns the record whose [from, to) interval contains at
func (r *GormPriceHistoryRepository) FindEffectiveAt(ctx context.Context, productID uuid.UUID, at time.Time) (*catalog.PriceHistory, error) {
	at = at.UTC()
	var model models.PriceHistoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND effective_from <= ?", productID, at).
		Where("effective_to IS NULL OR effective_to > ?", at).
		Order("effective_from DESC").
		First(&model).Error; err != nil {
		return nil, translate(err, "Price")
	}
	return model.ToDomain(), nil
}

// FindCurrent returns the record with no effective-to
func (r *GormPriceHistoryRepository) FindCurrent(ctx context.Context, productID uuid.UUID) (*catalog.PriceHistory, error) {
	return r.findCurrent(r.db.WithContext(ctx), productID)
}

// FindCurrentForUpdate returns the current record with a row lock held
// until the enclosing transaction ends
func (r *GormPriceHistoryRepository) FindCurrentForUpdate(ctx context.Context, productID uuid.UUID) (*catalog.PriceHistory, error) {
	return r.findCurrent(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), productID)
}

func (r *GormPriceHistoryRepository) findCurrent(query *gorm.DB, productID uuid.UUID) (*catalog.PriceHistory, error) {
	var model models.PriceHistoryModel
	if err := query.
		Where("product_id = ? AND effective_to IS NULL", productID).
		First(&model).Error; err != nil {
		return nil, translate(err, "Price")
	}
	return model.ToDomain(), nil
}

// FindCurrentByProducts returns the current record of each listed product
func (r *GormPriceHistoryRepository) FindCurrentByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]catalog.PriceHistory, error) {
	result := make(map[uuid.UUID]catalog.PriceHistory, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []models.PriceHistoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ? AND effective_to IS NULL", productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		result[rows[i].ProductID] = *rows[i].ToDomain()
	}
	return result, nil
}

// FindByProduct returns the full history ordered by effective-from ascending
func (r *GormPriceHistoryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (catalog.PriceTimeline, error) {
	var rows []models.PriceHistoryModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("effective_from ASC, effective_to IS NULL").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	timeline := make(catalog.PriceTimeline, len(rows))
	for i := range rows {
		timeline[i] = *rows[i].ToDomain()
	}
	return timeline, nil
}

// CountCurrent returns how many open records a product has
func (r *GormPriceHistoryRepository) CountCurrent(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PriceHistoryModel{}).
		Where("product_id = ? AND effective_to IS NULL", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a record
func (r *GormPriceHistoryRepository) Save(ctx context.Context, history *catalog.PriceHistory) error {
	model := models.PriceHistoryModelFromDomain(history)
	return translate(r.db.WithContext(ctx).Save(model).Error, "Price")
}

// Ensure GormPriceHistoryRepository implements PriceHistoryRepository
var _ catalog.PriceHistoryRepository = (*GormPriceHistoryRepository)(nil)
