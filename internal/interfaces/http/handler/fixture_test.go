package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/mynet/sales/internal/application/catalog"
	appidentity "github.com/mynet/sales/internal/application/identity"
	appreport "github.com/mynet/sales/internal/application/report"
	appsales "github.com/mynet/sales/internal/application/sales"
	apptarget "github.com/mynet/sales/internal/application/target"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/mynet/sales/internal/infrastructure/persistence"
	"github.com/mynet/sales/internal/infrastructure/spreadsheet"
	"github.com/mynet/sales/internal/interfaces/http/dto"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
	"github.com/mynet/sales/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var seoul = mustLoadLocation("Asia/Seoul")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

const testPassword = "secret-pass"

// apiFixture serves the full API over an in-memory database holding the
// parent company 마이넷, the subsidiaries Alpha and Beta, one product and
// four accounts: admin, mynet_hq (parent), partner and alpha (subsidiary).
// The clock stands at 10:00 Seoul time on 2024-03-15.
type apiFixture struct {
	engine    *gin.Engine
	clock     *shared.FixedClock
	blacklist *auth.InMemoryTokenBlacklist
	products  *appcatalog.ProductService
	users     *appidentity.UserService
	hq        *appidentity.CompanyResponse
	alpha     *appidentity.CompanyResponse
	beta      *appidentity.CompanyResponse
	toner     *appcatalog.ProductResponse
	tokens    map[string]string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db, err := persistence.NewSQLiteDatabase(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := shared.NewFixedClock(time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC))
	productRepo := persistence.NewGormProductRepository(db.DB)
	priceRepo := persistence.NewGormPriceHistoryRepository(db.DB)
	recordRepo := persistence.NewGormSalesRecordRepository(db.DB)
	targetRepo := persistence.NewGormTargetRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-32-characters",
		AccessTokenExpiration: time.Hour,
		Issuer:                "sales-test",
	}, clock)
	blacklist := auth.NewInMemoryTokenBlacklist(clock)

	products := appcatalog.NewProductService(
		persistence.NewGormCatalogTransactionScope(db.DB), productRepo, priceRepo, recordRepo, clock, nil,
	)
	salesService := appsales.NewSalesService(recordRepo, productRepo, companyRepo, sales.NewEditWindow(clock, seoul), clock, nil)
	targets := apptarget.NewTargetService(targetRepo, productRepo, companyRepo, clock, nil)
	src := appreport.Sources{
		Products:  productRepo,
		Prices:    priceRepo,
		Records:   recordRepo,
		Targets:   targetRepo,
		Companies: companyRepo,
		Clock:     clock,
		Location:  seoul,
	}
	statistics := appreport.NewStatisticsService(src)
	dailyStatus := appreport.NewDailyStatusService(src, appreport.BoardLayout{})
	comparisons := appreport.NewComparisonService(src)
	exports := appreport.NewExportService(statistics, dailyStatus, comparisons, spreadsheet.NewRenderer(), clock, nil)
	authService := appidentity.NewAuthService(userRepo, companyRepo, jwtService, blacklist, nil)
	users := appidentity.NewUserService(userRepo, companyRepo, clock, nil, appidentity.WithTokenRevocation(blacklist, jwtService))
	companies := appidentity.NewCompanyService(companyRepo, clock, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	r := router.NewRouter(engine).Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	for _, registrar := range router.SalesRoutes(router.Handlers{
		Auth:       handler.NewAuthHandler(authService, users, clock),
		Subsidiary: handler.NewSubsidiaryHandler(products, salesService, statistics, comparisons, clock, seoul),
		Mynet:      handler.NewMynetHandler(statistics, dailyStatus, exports, salesService, targets),
		Statistics: handler.NewStatisticsHandler(comparisons, exports, products),
		Admin:      handler.NewAdminHandler(products, users, companies),
	}, router.RouteOptions{}) {
		r.Register(registrar)
	}
	r.Setup()

	f := &apiFixture{
		engine:    engine,
		clock:     clock,
		blacklist: blacklist,
		products:  products,
		users:     users,
		tokens:    map[string]string{},
	}
	ctx := context.Background()
	f.hq = mustCompany(t, companies, "마이넷", true)
	f.alpha = mustCompany(t, companies, "Alpha", false)
	f.beta = mustCompany(t, companies, "Beta", false)

	// priced since 2023 so every test date has a price
	now := clock.Now()
	clock.Set(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	f.toner, err = products.Create(ctx, appcatalog.CreateProductRequest{
		Name:        "Toner A",
		Category:    "토너",
		CostPrice:   decimal.NewFromInt(800),
		SupplyPrice: decimal.NewFromInt(1000),
	}, "seed")
	require.NoError(t, err)
	clock.Set(now)

	f.account(t, "admin", f.hq, identity.RoleAdmin, false)
	f.account(t, "mynet_hq", f.hq, identity.RoleUser, false)
	f.account(t, "partner", f.hq, identity.RoleUser, true)
	f.account(t, "alpha", f.alpha, identity.RoleUser, false)
	return f
}

func mustCompany(t *testing.T, svc *appidentity.CompanyService, name string, parent bool) *appidentity.CompanyResponse {
	t.Helper()
	c, err := svc.Create(context.Background(), appidentity.CreateCompanyRequest{Name: name, IsParent: parent})
	require.NoError(t, err)
	return c
}

func (f *apiFixture) account(t *testing.T, username string, company *appidentity.CompanyResponse, role identity.Role, partner bool) {
	t.Helper()
	_, err := f.users.Create(context.Background(), appidentity.CreateUserRequest{
		Username:  username,
		Password:  testPassword,
		CompanyID: company.ID,
		Role:      role,
		IsPartner: partner,
	})
	require.NoError(t, err)
}

// token logs the user in once and caches the access token
func (f *apiFixture) token(t *testing.T, username string) string {
	t.Helper()
	if token, ok := f.tokens[username]; ok {
		return token
	}
	rec := f.do(t, "", http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[appidentity.LoginResult](t, rec)
	f.tokens[username] = result.AccessToken
	return result.AccessToken
}

// do sends a request as username; an empty username sends no token
func (f *apiFixture) do(t *testing.T, username, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+f.token(t, username))
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success, rec.Body.String())
	return env.Data
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NotNil(t, env.Error, rec.Body.String())
	return env.Error.Code
}
