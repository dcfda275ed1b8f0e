package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/catalog"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/domain/target"
	"github.com/mynet/sales/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fixture is an in-memory database seeded with one parent company, two
// subsidiaries and two products. Toner A changes price at noon Seoul time
// on 2024-03-10. The clock stands at 10:00 Seoul time on 2024-03-15.
type fixture struct {
	src    Sources
	logs   *observer.ObservedLogs
	hq     *identity.Company
	alpha  *identity.Company
	beta   *identity.Company
	toner  *catalog.Product
	drum   *catalog.Product
	seeded time.Time
}

var seoul = mustLoadLocation("Asia/Seoul")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		logs:   logs,
		seeded: time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	f.src = Sources{
		Products:  persistence.NewGormProductRepository(db.DB),
		Prices:    persistence.NewGormPriceHistoryRepository(db.DB),
		Records:   persistence.NewGormSalesRecordRepository(db.DB),
		Targets:   persistence.NewGormTargetRepository(db.DB),
		Companies: persistence.NewGormCompanyRepository(db.DB),
		Clock:     shared.NewFixedClock(time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC)),
		Location:  seoul,
		Logger:    zap.New(core),
	}

	f.hq = f.company(t, "마이넷", true)
	f.alpha = f.company(t, "Alpha", false)
	f.beta = f.company(t, "Beta", false)

	f.toner = f.product(t, "0001", "Toner A", "토너", "800", "1000")
	f.drum = f.product(t, "0002", "Drum B", "드럼", "500", "700")
	f.reprice(t, f.toner, "900", "1200", time.Date(2024, time.March, 10, 3, 0, 0, 0, time.UTC))
	return f
}

func (f *fixture) company(t *testing.T, name string, isParent bool) *identity.Company {
	t.Helper()
	c, err := identity.NewCompany(name, isParent, f.seeded)
	require.NoError(t, err)
	require.NoError(t, f.src.Companies.Save(context.Background(), c))
	return c
}

func (f *fixture) product(t *testing.T, code, name, category, cost, supply string) *catalog.Product {
	t.Helper()
	ctx := context.Background()
	p, err := catalog.NewProduct(code, name, category, f.seeded)
	require.NoError(t, err)
	require.NoError(t, f.src.Products.Save(ctx, p))

	price, err := catalog.NewInitialPrice(p.ID, decimal.RequireFromString(cost), decimal.RequireFromString(supply), "admin", f.seeded)
	require.NoError(t, err)
	require.NoError(t, f.prices().Save(ctx, price))
	return p
}

func (f *fixture) reprice(t *testing.T, p *catalog.Product, cost, supply string, at time.Time) {
	t.Helper()
	ctx := context.Background()
	current, err := f.prices().FindCurrent(ctx, p.ID)
	require.NoError(t, err)

	c, s := decimal.RequireFromString(cost), decimal.RequireFromString(supply)
	next, err := current.Succeed(&c, &s, "admin", at)
	require.NoError(t, err)
	require.NoError(t, f.prices().Save(ctx, current))
	require.NoError(t, f.prices().Save(ctx, next))
}

func (f *fixture) prices() *persistence.GormPriceHistoryRepository {
	return f.src.Prices.(*persistence.GormPriceHistoryRepository)
}

func (f *fixture) sell(t *testing.T, c *identity.Company, p *catalog.Product, date string, quantity int) {
	t.Helper()
	d, err := shared.ParseDate(date)
	require.NoError(t, err)
	r, err := sales.NewRecord(c.ID, p.ID, d, quantity, "clerk", f.src.Clock.Now())
	require.NoError(t, err)
	_, err = f.src.Records.Upsert(context.Background(), r)
	require.NoError(t, err)
}

func (f *fixture) target(t *testing.T, c *identity.Company, p *catalog.Product, year int, month time.Month, quantity int) {
	t.Helper()
	var companyID *uuid.UUID
	if c != nil {
		companyID = &c.ID
	}
	tg, err := target.NewTarget(companyID, p.ID, shared.YearMonth{Year: year, Month: month}, quantity, f.src.Clock.Now())
	require.NoError(t, err)
	_, err = f.src.Targets.Upsert(context.Background(), tg)
	require.NoError(t, err)
}

// seedSales records the standard scenario used across the report tests
func (f *fixture) seedSales(t *testing.T) {
	t.Helper()
	f.sell(t, f.alpha, f.toner, "2024-03-15", 2)
	f.sell(t, f.beta, f.toner, "2024-03-15", 1)
	f.sell(t, f.alpha, f.toner, "2024-03-14", 4)
	f.sell(t, f.alpha, f.toner, "2024-03-09", 5)
	f.sell(t, f.alpha, f.toner, "2024-02-10", 3)
	f.sell(t, f.alpha, f.toner, "2024-02-20", 10)
	f.sell(t, f.beta, f.drum, "2024-03-01", 6)
	f.sell(t, f.alpha, f.toner, "2023-03-05", 7)
	f.sell(t, f.alpha, f.toner, "2023-02-03", 2)

	f.target(t, f.alpha, f.toner, 2024, time.March, 20)
	f.target(t, f.beta, f.toner, 2024, time.March, 10)
	f.target(t, nil, f.toner, 2024, time.March, 50)
}

func headquarters(f *fixture) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Username: "hq", CompanyID: f.hq.ID, Tier: identity.TierParent}
}

func partner(f *fixture) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Username: "oem", CompanyID: f.beta.ID, Tier: identity.TierPartner}
}

func branch(c *identity.Company) identity.Principal {
	return identity.Principal{UserID: uuid.New(), Username: "branch", CompanyID: c.ID, Tier: identity.TierSubsidiary}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}
