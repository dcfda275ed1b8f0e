package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

// 2024-03-15 10:00 in Seoul
var serviceNow = time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)

type salesFixture struct {
	records   *testutil.MockRecordRepository
	products  *testutil.MockProductRepository
	companies *testutil.MockCompanyRepository
	logs      *observer.ObservedLogs
	svc       *SalesService
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	clock := shared.NewFixedClock(serviceNow)
	core, logs := observer.New(zapcore.InfoLevel)
	f := &salesFixture{
		records:   new(testutil.MockRecordRepository),
		products:  new(testutil.MockProductRepository),
		companies: new(testutil.MockCompanyRepository),
		logs:      logs,
	}
	f.svc = NewSalesService(f.records, f.products, f.companies, sales.NewEditWindow(clock, seoul), clock, zap.New(core))
	return f
}

func (f *salesFixture) assertExpectations(t *testing.T) {
	f.records.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.companies.AssertExpectations(t)
}

func subsidiary(companyID uuid.UUID) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Username: "branch01", CompanyID: companyID, Tier: identity.TierSubsidiary}
}

func parent() identity.Principal {
	return identity.Principal{UserID: uuid.New(), Username: "hq", CompanyID: uuid.New(), Tier: identity.TierParent}
}

func TestSalesService_Save(t *testing.T) {
	ctx := context.Background()
	companyID, productID := uuid.New(), uuid.New()

	t.Run("subsidiary writes its own company in the current month", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, productID).Return(true, nil)
		f.records.On("Upsert", ctx, mock.MatchedBy(func(r *sales.Record) bool {
			return r.CompanyID == companyID &&
				r.ProductID == productID &&
				r.SalesDate.Equal(shared.NewDate(2024, 3, 2)) &&
				r.Quantity == 7 &&
				r.ModifiedBy == "branch01"
		})).Return(func(_ context.Context, r *sales.Record) *sales.Record { return r }, nil)

		resp, err := f.svc.Save(ctx, subsidiary(companyID), SaveSalesRequest{
			CompanyID: companyID,
			ProductID: productID,
			SalesDate: "2024-03-02",
			Quantity:  7,
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-03-02", resp.SalesDate)
		assert.Equal(t, 7, resp.Quantity)
		f.assertExpectations(t)
	})

	t.Run("subsidiary cannot write the previous month", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.Save(ctx, subsidiary(companyID), SaveSalesRequest{
			CompanyID: companyID,
			ProductID: productID,
			SalesDate: "2024-02-29",
			Quantity:  1,
		})
		assert.ErrorIs(t, err, sales.ErrEditWindowClosed)
		f.records.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("subsidiary cannot write another company", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.Save(ctx, subsidiary(uuid.New()), SaveSalesRequest{
			CompanyID: companyID,
			ProductID: productID,
			SalesDate: "2024-03-02",
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("partner is read only", func(t *testing.T) {
		f := newSalesFixture(t)
		p := identity.Principal{Username: "oem", CompanyID: companyID, Tier: identity.TierPartner}

		_, err := f.svc.Save(ctx, p, SaveSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "2024-03-02"})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("parent may write past months", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, productID).Return(true, nil)
		f.records.On("Upsert", ctx, mock.Anything).Return(func(_ context.Context, r *sales.Record) *sales.Record { return r }, nil)

		resp, err := f.svc.Save(ctx, parent(), SaveSalesRequest{
			CompanyID: companyID,
			ProductID: productID,
			SalesDate: "2023-12-31",
			Quantity:  3,
		})
		require.NoError(t, err)
		assert.Equal(t, "2023-12-31", resp.SalesDate)
	})

	t.Run("unknown company", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(false, nil)

		_, err := f.svc.Save(ctx, parent(), SaveSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "2024-03-02"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, productID).Return(false, nil)

		_, err := f.svc.Save(ctx, parent(), SaveSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "2024-03-02"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("negative quantity", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, productID).Return(true, nil)

		_, err := f.svc.Save(ctx, parent(), SaveSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "2024-03-02", Quantity: -1})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_QUANTITY", de.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.Save(ctx, parent(), SaveSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "03/02/2024"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestSalesService_BulkSave(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	good1, good2, missing := uuid.New(), uuid.New(), uuid.New()

	t.Run("reports failures per item", func(t *testing.T) {
		f := newSalesFixture(t)
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, good1).Return(true, nil)
		f.products.On("ExistsByID", ctx, good2).Return(true, nil)
		f.products.On("ExistsByID", ctx, missing).Return(false, nil)
		f.records.On("Upsert", ctx, mock.Anything).Return(func(_ context.Context, r *sales.Record) *sales.Record { return r }, nil).Times(2)

		result, err := f.svc.BulkSave(ctx, subsidiary(companyID), BulkSalesRequest{
			CompanyID: companyID,
			SalesDate: "2024-03-15",
			Items: []BulkSalesItem{
				{ProductID: good1, Quantity: 4},
				{ProductID: missing, Quantity: 2},
				{ProductID: good2, Quantity: 0},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 1, result.FailureCount)
		require.Len(t, result.Items, 3)
		assert.True(t, result.Items[0].Success)
		assert.False(t, result.Items[1].Success)
		assert.Equal(t, "Product not found", result.Items[1].Error)
		assert.True(t, result.Items[2].Success)
		f.assertExpectations(t)

		entries := f.logs.FilterMessage("bulk sales saved").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(2), entries[0].ContextMap()["success"])
	})

	t.Run("infrastructure errors abort the batch", func(t *testing.T) {
		f := newSalesFixture(t)
		dbErr := errors.New("connection reset")
		f.companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		f.products.On("ExistsByID", ctx, good1).Return(true, nil)
		f.records.On("Upsert", ctx, mock.Anything).Return(nil, dbErr)

		_, err := f.svc.BulkSave(ctx, parent(), BulkSalesRequest{
			CompanyID: companyID,
			SalesDate: "2024-03-15",
			Items:     []BulkSalesItem{{ProductID: good1, Quantity: 1}, {ProductID: good2, Quantity: 1}},
		})
		assert.ErrorIs(t, err, dbErr)
		f.products.AssertNotCalled(t, "ExistsByID", ctx, good2)
	})

	t.Run("edit window applies to the whole batch", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.BulkSave(ctx, subsidiary(companyID), BulkSalesRequest{
			CompanyID: companyID,
			SalesDate: "2024-04-01",
			Items:     []BulkSalesItem{{ProductID: good1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, sales.ErrEditWindowClosed)
	})
}

func TestSalesService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID, productID := uuid.New(), uuid.New()
	req := DeleteSalesRequest{CompanyID: companyID, ProductID: productID, SalesDate: "2024-01-10"}

	t.Run("parent deletes", func(t *testing.T) {
		f := newSalesFixture(t)
		f.records.On("Delete", ctx, companyID, productID, shared.NewDate(2024, 1, 10)).Return(nil)

		require.NoError(t, f.svc.Delete(ctx, parent(), req))
		f.assertExpectations(t)
	})

	t.Run("subsidiary may not delete", func(t *testing.T) {
		f := newSalesFixture(t)

		err := f.svc.Delete(ctx, subsidiary(companyID), req)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.records.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSalesService_ListByCompanyAndDate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	date := shared.NewDate(2024, 3, 10)

	t.Run("own company", func(t *testing.T) {
		f := newSalesFixture(t)
		rec, err := sales.NewRecord(companyID, uuid.New(), date, 5, "branch01", serviceNow)
		require.NoError(t, err)
		f.records.On("FindByCompanyAndDate", ctx, companyID, date).Return([]sales.Record{*rec}, nil)

		list, err := f.svc.ListByCompanyAndDate(ctx, subsidiary(companyID), companyID, date)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, 5, list[0].Quantity)
	})

	t.Run("other company is forbidden for a subsidiary", func(t *testing.T) {
		f := newSalesFixture(t)

		_, err := f.svc.ListByCompanyAndDate(ctx, subsidiary(uuid.New()), companyID, date)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestSalesService_IsEditable(t *testing.T) {
	f := newSalesFixture(t)
	companyID := uuid.New()

	assert.True(t, f.svc.IsEditable(subsidiary(companyID), shared.NewDate(2024, 3, 1)))
	assert.False(t, f.svc.IsEditable(subsidiary(companyID), shared.NewDate(2024, 2, 1)))
	assert.True(t, f.svc.IsEditable(parent(), shared.NewDate(2020, 1, 1)))
}
