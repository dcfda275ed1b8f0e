package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesRecordRepository implements RecordRepository using GORM
type GormSalesRecordRepository struct {
	db *gorm.DB
}

// NewGormSalesRecordRepository creates a new GormSalesRecordRepository
func NewGormSalesRecordRepository(db *gorm.DB) *GormSalesRecordRepository {
	return &GormSalesRecordRepository{db: db}
}

// Upsert writes the absolute quantity for the record's triple in one
// statement. Concurrent writers of the same triple resolve to the last one.
func (r *GormSalesRecordRepository) Upsert(ctx context.Context, record *sales.Record) (*sales.Record, error) {
	model := models.SalesRecordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "product_id"}, {Name: "sales_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "last_modified_at", "modified_by"}),
	}).Create(model).Error; err != nil {
		return nil, translate(err, "Sales record")
	}
	return r.Find(ctx, record.CompanyID, record.ProductID, record.SalesDate)
}

// Find returns the record for a (company, product, date) triple
func (r *GormSalesRecordRepository) Find(ctx context.Context, companyID, productID uuid.UUID, date time.Time) (*sales.Record, error) {
	var model models.SalesRecordModel
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND product_id = ? AND sales_date = ?", companyID, productID, shared.DateOf(date)).
		First(&model).Error; err != nil {
		return nil, translate(err, "Sales record")
	}
	return model.ToDomain(), nil
}

// FindByCompanyAndDate returns one company's records for a date ordered by
// product category then product code
func (r *GormSalesRecordRepository) FindByCompanyAndDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]sales.Record, error) {
	return r.find(r.db.WithContext(ctx).
		Select("sales_records.*").
		Joins("JOIN products ON products.id = sales_records.product_id").
		Where("sales_records.company_id = ? AND sales_records.sales_date = ?", companyID, shared.DateOf(date)).
		Order("products.category, products.code"))
}

// FindByCompanyProductBetween returns records ordered by date
func (r *GormSalesRecordRepository) FindByCompanyProductBetween(ctx context.Context, companyID, productID uuid.UUID, from, to time.Time) ([]sales.Record, error) {
	return r.find(r.db.WithContext(ctx).
		Where("company_id = ? AND product_id = ?", companyID, productID).
		Where("sales_date BETWEEN ? AND ?", shared.DateOf(from), shared.DateOf(to)).
		Order("sales_date"))
}

// FindByProductBetween returns every company's records for a product ordered by date
func (r *GormSalesRecordRepository) FindByProductBetween(ctx context.Context, productID uuid.UUID, from, to time.Time) ([]sales.Record, error) {
	return r.find(r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Where("sales_date BETWEEN ? AND ?", shared.DateOf(from), shared.DateOf(to)).
		Order("sales_date"))
}

// FindByProductAndDate returns every company's records for a product on a
// date ordered by company name
func (r *GormSalesRecordRepository) FindByProductAndDate(ctx context.Context, productID uuid.UUID, date time.Time) ([]sales.Record, error) {
	return r.find(r.db.WithContext(ctx).
		Select("sales_records.*").
		Joins("JOIN companies ON companies.id = sales_records.company_id").
		Where("sales_records.product_id = ? AND sales_records.sales_date = ?", productID, shared.DateOf(date)).
		Order("companies.name"))
}

// FindByYearMonth returns all records of a month ordered by company name then date
func (r *GormSalesRecordRepository) FindByYearMonth(ctx context.Context, year int, month time.Month) ([]sales.Record, error) {
	ym := shared.YearMonth{Year: year, Month: month}
	return r.find(r.db.WithContext(ctx).
		Select("sales_records.*").
		Joins("JOIN companies ON companies.id = sales_records.company_id").
		Where("sales_records.sales_date BETWEEN ? AND ?", ym.FirstDay(), ym.LastDay()).
		Order("companies.name, sales_records.sales_date"))
}

// FindByCriteria returns records matching criteria ordered by date
func (r *GormSalesRecordRepository) FindByCriteria(ctx context.Context, criteria sales.Criteria) ([]sales.Record, error) {
	query := r.db.WithContext(ctx)
	if criteria.CompanyID != nil {
		query = query.Where("company_id = ?", *criteria.CompanyID)
	}
	if len(criteria.CompanyIDs) > 0 {
		query = query.Where("company_id IN ?", criteria.CompanyIDs)
	}
	if criteria.ProductID != nil {
		query = query.Where("product_id = ?", *criteria.ProductID)
	}
	if !criteria.From.IsZero() {
		query = query.Where("sales_date >= ?", shared.DateOf(criteria.From))
	}
	if !criteria.To.IsZero() {
		query = query.Where("sales_date <= ?", shared.DateOf(criteria.To))
	}
	return r.find(query.Order("sales_date"))
}

// Delete removes the record for a triple; absent records are not an error
func (r *GormSalesRecordRepository) Delete(ctx context.Context, companyID, productID uuid.UUID, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND product_id = ? AND sales_date = ?", companyID, productID, shared.DateOf(date)).
		Delete(&models.SalesRecordModel{}).Error
}

func (r *GormSalesRecordRepository) find(query *gorm.DB) ([]sales.Record, error) {
	var rows []models.SalesRecordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]sales.Record, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records, nil
}

// Ensure GormSalesRecordRepository implements RecordRepository
var _ sales.RecordRepository = (*GormSalesRecordRepository)(nil)
