package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/domain/target"
	"github.com/mynet/sales/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTargetRepository implements target.Repository using GORM
type GormTargetRepository struct {
	db *gorm.DB
}

// NewGormTargetRepository creates a new GormTargetRepository
func NewGormTargetRepository(db *gorm.DB) *GormTargetRepository {
	return &GormTargetRepository{db: db}
}

// Upsert writes the quantity for the target's key. The lookup and the
// write share a transaction; the unique indexes reject a racing insert.
func (r *GormTargetRepository) Upsert(ctx context.Context, t *target.Target) (*target.Target, error) {
	var saved *target.Target
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.TargetModel
		err := keyScope(tx, t.CompanyID, t.ProductID, t.Year, t.Month).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model := models.TargetModelFromDomain(t)
			if err := tx.Create(model).Error; err != nil {
				return translate(err, "Target")
			}
			saved = model.ToDomain()
			return nil
		case err != nil:
			return err
		}

		existing.Quantity = t.Quantity
		existing.UpdatedAt = t.UpdatedAt.UTC()
		if err := tx.Model(&existing).Updates(map[string]any{
			"quantity":   existing.Quantity,
			"updated_at": existing.UpdatedAt,
		}).Error; err != nil {
			return err
		}
		saved = existing.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// FindByID finds a target by ID
func (r *GormTargetRepository) FindByID(ctx context.Context, id uuid.UUID) (*target.Target, error) {
	var model models.TargetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Target")
	}
	return model.ToDomain(), nil
}

// FindGlobal returns the global target of a product and month
func (r *GormTargetRepository) FindGlobal(ctx context.Context, productID uuid.UUID, year int, month time.Month) (*target.Target, error) {
	var model models.TargetModel
	if err := keyScope(r.db.WithContext(ctx), nil, productID, year, month).First(&model).Error; err != nil {
		return nil, translate(err, "Target")
	}
	return model.ToDomain(), nil
}

// FindForCompany returns one company's target of a product and month
func (r *GormTargetRepository) FindForCompany(ctx context.Context, companyID, productID uuid.UUID, year int, month time.Month) (*target.Target, error) {
	var model models.TargetModel
	if err := keyScope(r.db.WithContext(ctx), &companyID, productID, year, month).First(&model).Error; err != nil {
		return nil, translate(err, "Target")
	}
	return model.ToDomain(), nil
}

// FindCompanyTargets returns every per-company target of a product and month
func (r *GormTargetRepository) FindCompanyTargets(ctx context.Context, productID uuid.UUID, year int, month time.Month) ([]target.Target, error) {
	return r.find(r.db.WithContext(ctx).
		Where("company_id IS NOT NULL AND product_id = ? AND year = ? AND month = ?", productID, year, int(month)))
}

// FindByCompanyAndMonth returns one company's targets for a month
func (r *GormTargetRepository) FindByCompanyAndMonth(ctx context.Context, companyID uuid.UUID, year int, month time.Month) ([]target.Target, error) {
	return r.find(r.db.WithContext(ctx).
		Where("company_id = ? AND year = ? AND month = ?", companyID, year, int(month)))
}

// FindGlobalByMonth returns the global targets of a month
func (r *GormTargetRepository) FindGlobalByMonth(ctx context.Context, year int, month time.Month) ([]target.Target, error) {
	return r.find(r.db.WithContext(ctx).
		Where("company_id IS NULL AND year = ? AND month = ?", year, int(month)))
}

// Delete removes a target
func (r *GormTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TargetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Target")
	}
	return nil
}

func (r *GormTargetRepository) find(query *gorm.DB) ([]target.Target, error) {
	var rows []models.TargetModel
	if err := query.Order("product_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	targets := make([]target.Target, len(rows))
	for i := range rows {
		targets[i] = *rows[i].ToDomain()
	}
	return targets, nil
}

// keyScope matches the unique key of a target; a nil company selects the
// global row.
func keyScope(db *gorm.DB, companyID *uuid.UUID, productID uuid.UUID, year int, month time.Month) *gorm.DB {
	query := db.Where("product_id = ? AND year = ? AND month = ?", productID, year, int(month))
	if companyID == nil {
		return query.Where("company_id IS NULL")
	}
	return query.Where("company_id = ?", *companyID)
}

// Ensure GormTargetRepository implements target.Repository
var _ target.Repository = (*GormTargetRepository)(nil)
