package target

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/domain/target"
	"github.com/mynet/sales/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var (
	testNow = time.Date(2024, 5, 20, 3, 0, 0, 0, time.UTC)
	hq      = identity.Principal{Username: "hq", CompanyID: uuid.New(), Tier: identity.TierParent}
	may     = shared.YearMonth{Year: 2024, Month: time.May}
)

func newTestService(t *testing.T) (*TargetService, *testutil.MockTargetRepository, *testutil.MockProductRepository, *testutil.MockCompanyRepository, *observer.ObservedLogs) {
	t.Helper()
	targets := new(testutil.MockTargetRepository)
	products := new(testutil.MockProductRepository)
	companies := new(testutil.MockCompanyRepository)
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewTargetService(targets, products, companies, shared.NewFixedClock(testNow), zap.New(core))
	return svc, targets, products, companies, logs
}

func echoTarget(_ context.Context, t *target.Target) *target.Target { return t }

func TestTargetService_Save(t *testing.T) {
	ctx := context.Background()
	productID, companyID := uuid.New(), uuid.New()

	t.Run("global target", func(t *testing.T) {
		svc, targets, products, companies, _ := newTestService(t)
		products.On("ExistsByID", ctx, productID).Return(true, nil)
		targets.On("Upsert", ctx, mock.MatchedBy(func(tg *target.Target) bool {
			return tg.CompanyID == nil && tg.Month == time.May && tg.Quantity == 120
		})).Return(echoTarget, nil)

		resp, err := svc.Save(ctx, hq, SaveTargetRequest{ProductID: productID, Year: 2024, Month: 5, Quantity: 120})
		require.NoError(t, err)
		assert.True(t, resp.Global)
		assert.Equal(t, 120, resp.Quantity)
		companies.AssertNotCalled(t, "ExistsByID", mock.Anything, mock.Anything)
		targets.AssertExpectations(t)
	})

	t.Run("company target checks the company", func(t *testing.T) {
		svc, targets, products, companies, _ := newTestService(t)
		companies.On("ExistsByID", ctx, companyID).Return(true, nil)
		products.On("ExistsByID", ctx, productID).Return(true, nil)
		targets.On("Upsert", ctx, mock.Anything).Return(echoTarget, nil)

		resp, err := svc.Save(ctx, hq, SaveTargetRequest{CompanyID: &companyID, ProductID: productID, Year: 2024, Month: 5, Quantity: 30})
		require.NoError(t, err)
		assert.False(t, resp.Global)
		assert.Equal(t, &companyID, resp.CompanyID)
	})

	t.Run("unknown company", func(t *testing.T) {
		svc, _, _, companies, _ := newTestService(t)
		companies.On("ExistsByID", ctx, companyID).Return(false, nil)

		_, err := svc.Save(ctx, hq, SaveTargetRequest{CompanyID: &companyID, ProductID: productID, Year: 2024, Month: 5})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid month", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)

		_, err := svc.Save(ctx, hq, SaveTargetRequest{ProductID: productID, Year: 2024, Month: 13})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("subsidiary cannot set targets", func(t *testing.T) {
		svc, _, _, _, _ := newTestService(t)
		p := identity.Principal{CompanyID: companyID, Tier: identity.TierSubsidiary}

		_, err := svc.Save(ctx, p, SaveTargetRequest{CompanyID: &companyID, ProductID: productID, Year: 2024, Month: 5})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestTargetService_BulkSave(t *testing.T) {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	svc, targets, products, _, logs := newTestService(t)
	products.On("ExistsByID", ctx, a).Return(true, nil)
	products.On("ExistsByID", ctx, b).Return(true, nil)
	targets.On("Upsert", ctx, mock.Anything).Return(echoTarget, nil).Once()

	result, err := svc.BulkSave(ctx, hq, BulkTargetRequest{
		Year:  2024,
		Month: 5,
		Items: []BulkTargetItem{{ProductID: a, Quantity: 10}, {ProductID: b, Quantity: -5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, b, result.Errors[0].ProductID)
	targets.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("bulk targets saved").Len())
}

func TestTargetService_Reconcile(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	c1, c2 := uuid.New(), uuid.New()

	mk := func(company *uuid.UUID, qty int) *target.Target {
		tg, err := target.NewTarget(company, productID, may, qty, testNow)
		require.NoError(t, err)
		return tg
	}

	t.Run("consistent", func(t *testing.T) {
		svc, targets, _, _, logs := newTestService(t)
		targets.On("FindGlobal", ctx, productID, 2024, time.May).Return(mk(nil, 100), nil)
		targets.On("FindCompanyTargets", ctx, productID, 2024, time.May).Return([]target.Target{*mk(&c1, 60), *mk(&c2, 40)}, nil)

		resp, err := svc.Reconcile(ctx, hq, productID, may)
		require.NoError(t, err)
		assert.True(t, resp.Consistent)
		assert.True(t, resp.HasGlobal)
		assert.Equal(t, 100, resp.CompanySum)
		assert.Zero(t, logs.FilterMessage("targets do not reconcile").Len())
	})

	t.Run("mismatch is reported", func(t *testing.T) {
		svc, targets, _, _, logs := newTestService(t)
		targets.On("FindGlobal", ctx, productID, 2024, time.May).Return(mk(nil, 100), nil)
		targets.On("FindCompanyTargets", ctx, productID, 2024, time.May).Return([]target.Target{*mk(&c1, 60)}, nil)

		resp, err := svc.Reconcile(ctx, hq, productID, may)
		require.NoError(t, err)
		assert.False(t, resp.Consistent)
		assert.Equal(t, 100, resp.GlobalQuantity)
		assert.Equal(t, 60, resp.CompanySum)
		assert.Equal(t, 1, logs.FilterMessage("targets do not reconcile").Len())
	})

	t.Run("no global target", func(t *testing.T) {
		svc, targets, _, _, _ := newTestService(t)
		targets.On("FindGlobal", ctx, productID, 2024, time.May).Return(nil, shared.NotFound("Target"))
		targets.On("FindCompanyTargets", ctx, productID, 2024, time.May).Return([]target.Target{*mk(&c1, 60)}, nil)

		resp, err := svc.Reconcile(ctx, hq, productID, may)
		require.NoError(t, err)
		assert.True(t, resp.Consistent)
		assert.False(t, resp.HasGlobal)
	})
}

func TestTargetService_Lists(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	sub := identity.Principal{CompanyID: companyID, Tier: identity.TierSubsidiary}

	svc, targets, _, _, _ := newTestService(t)
	targets.On("FindByCompanyAndMonth", ctx, companyID, 2024, time.May).Return([]target.Target{}, nil)

	list, err := svc.ListByCompanyAndMonth(ctx, sub, companyID, may)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.ListByCompanyAndMonth(ctx, sub, uuid.New(), may)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.ListGlobal(ctx, sub, may)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestTargetService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	svc, targets, _, _, _ := newTestService(t)
	targets.On("Delete", ctx, id).Return(shared.NotFound("Target"))

	err := svc.Delete(ctx, hq, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.Delete(ctx, identity.Principal{Tier: identity.TierPartner}, id)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}
