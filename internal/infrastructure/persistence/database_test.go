package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked SQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

// setupTestDB opens an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()

	require.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
	assert.GreaterOrEqual(t, stats.WaitDuration, time.Duration(0))
}

func TestDatabase_Transaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "sales_records"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			return NewGormSalesRecordRepository(tx).Delete(t.Context(), uuid.New(), uuid.New(), shared.NewDate(2024, 1, 15))
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSalesRecordUpsert_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	companyID, productID := uuid.New(), uuid.New()
	date := shared.NewDate(2024, 1, 15)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO "sales_records" .* ON CONFLICT \("company_id","product_id","sales_date"\) DO UPDATE SET "quantity"="excluded"."quantity","last_modified_at"="excluded"."last_modified_at","modified_by"="excluded"."modified_by"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "sales_records" WHERE company_id = \$1 AND product_id = \$2 AND sales_date = \$3`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "product_id", "sales_date", "quantity", "last_modified_at", "modified_by", "created_at"}).
			AddRow(uuid.NewString(), companyID.String(), productID.String(), date, 7, now, "kim", now))

	record, err := sales.NewRecord(companyID, productID, date, 7, "kim", now)
	require.NoError(t, err)

	saved, err := NewGormSalesRecordRepository(db.DB).Upsert(t.Context(), record)
	require.NoError(t, err)
	assert.Equal(t, 7, saved.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceHistory_FindCurrentForUpdate_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	productID := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "price_histories" WHERE product_id = \$1 AND effective_to IS NULL .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "cost_price", "supply_price", "effective_from", "effective_to", "created_by", "created_at"}).
			AddRow(uuid.NewString(), productID.String(), "800.00", "1000.00", from, nil, "admin", from))

	current, err := NewGormPriceHistoryRepository(db.DB).FindCurrentForUpdate(t.Context(), productID)
	require.NoError(t, err)
	assert.True(t, current.IsCurrent())
	assert.Equal(t, "1000", current.SupplyPrice.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPriceHistory_FindEffectiveAt_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "price_histories" WHERE \(product_id = \$1 AND effective_from <= \$2\) AND \(effective_to IS NULL OR effective_to > \$3\) ORDER BY effective_from DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormPriceHistoryRepository(db.DB).FindEffectiveAt(t.Context(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
