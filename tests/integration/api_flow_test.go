package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/mynet/sales/internal/domain/report"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/mynet/sales/internal/infrastructure/persistence"
	"github.com/mynet/sales/internal/infrastructure/spreadsheet"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
	"github.com/mynet/sales/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const flowPassword = "flow-password"

type flowServer struct {
	engine  *gin.Engine
	clock   *shared.FixedClock
	alphaID string
	tonerID string
	tokens  map[string]string
}

// newFlowServer wires the full API on the Postgres test database with a
// clock fixed at 10:00 Seoul time on 2024-03-15
func newFlowServer(t *testing.T, tdb *TestDB) *flowServer {
	t.Helper()
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	clock := shared.NewFixedClock(time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC))
	log := zap.NewNop()
	db := tdb.DB

	productRepo := persistence.NewGormProductRepository(db)
	priceRepo := persistence.NewGormPriceHistoryRepository(db)
	recordRepo := persistence.NewGormSalesRecordRepository(db)
	targetRepo := persistence.NewGormTargetRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)
	userRepo := persistence.NewGormUserRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-secret-32-characters!",
		AccessTokenExpiration: time.Hour,
		Issuer:                "sales-integration",
	}, clock)
	blacklist := auth.NewInMemoryTokenBlacklist(clock)

	products := appcatalog.NewProductService(persistence.NewGormCatalogTransactionScope(db), productRepo, priceRepo, recordRepo, clock, log)
	salesService := appsales.NewSalesService(recordRepo, productRepo, companyRepo, sales.NewEditWindow(clock, seoul), clock, log)
	targets := apptarget.NewTargetService(targetRepo, productRepo, companyRepo, clock, log)
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
	exports := appreport.NewExportService(statistics, dailyStatus, comparisons, spreadsheet.NewRenderer(), clock, log)
	users := appidentity.NewUserService(userRepo, companyRepo, clock, log, appidentity.WithTokenRevocation(blacklist, jwtService))
	companies := appidentity.NewCompanyService(companyRepo, clock, log)
	authService := appidentity.NewAuthService(userRepo, companyRepo, jwtService, blacklist, log)

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

	ctx := context.Background()
	hq, err := companies.Create(ctx, appidentity.CreateCompanyRequest{Name: "마이넷", IsParent: true})
	require.NoError(t, err)
	alpha, err := companies.Create(ctx, appidentity.CreateCompanyRequest{Name: "Alpha"})
	require.NoError(t, err)

	now := clock.Now()
	clock.Set(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))
	toner, err := products.Create(ctx, appcatalog.CreateProductRequest{
		Name:        "Toner A",
		Category:    "토너",
		CostPrice:   decimal.NewFromInt(800),
		SupplyPrice: decimal.NewFromInt(1000),
	}, "seed")
	require.NoError(t, err)
	clock.Set(now)

	for username, companyID := range map[string]*appidentity.CompanyResponse{"mynet_hq": hq, "alpha": alpha} {
		_, err := users.Create(ctx, appidentity.CreateUserRequest{
			Username:  username,
			Password:  flowPassword,
			CompanyID: companyID.ID,
			Role:      identity.RoleUser,
		})
		require.NoError(t, err)
	}

	return &flowServer{
		engine:  engine,
		clock:   clock,
		alphaID: alpha.ID.String(),
		tonerID: toner.ID.String(),
		tokens:  map[string]string{},
	}
}

func (s *flowServer) do(t *testing.T, username, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+s.login(t, username))
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *flowServer) login(t *testing.T, username string) string {
	t.Helper()
	if token, ok := s.tokens[username]; ok {
		return token
	}
	rec := s.do(t, "", http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": flowPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s.tokens[username] = data[appidentity.LoginResult](t, rec).AccessToken
	return s.tokens[username]
}

func data[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.True(t, env.Success, rec.Body.String())
	return env.Data
}

func TestSalesFlow_Integration(t *testing.T) {
	tdb := NewTestDB(t)
	s := newFlowServer(t, tdb)

	for date, quantity := range map[string]int{"2024-03-14": 2, "2024-03-15": 5} {
		rec := s.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": s.tonerID,
			"sales_date": date,
			"quantity":   quantity,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	t.Run("subsidiary overwrites today's quantity", func(t *testing.T) {
		rec := s.do(t, "alpha", http.MethodPost, "/api/v1/subsidiary/sales", map[string]any{
			"product_id": s.tonerID,
			"sales_date": "2024-03-15",
			"quantity":   4,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 4, data[appsales.SalesRecordResponse](t, rec).Quantity)
	})

	t.Run("parent sets the global target", func(t *testing.T) {
		rec := s.do(t, "mynet_hq", http.MethodPut, "/api/v1/mynet/targets", map[string]any{
			"year":  2024,
			"month": 3,
			"items": []map[string]any{{"product_id": s.tonerID, "quantity": 100}},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 1, data[apptarget.BulkTargetResult](t, rec).SuccessCount)
	})

	t.Run("consolidated view totals every company", func(t *testing.T) {
		rec := s.do(t, "mynet_hq", http.MethodGet, "/api/v1/mynet/view?company=all&date=2024-03-15", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		view := data[appreport.StatisticsView](t, rec)

		total := view.Lines[len(view.Lines)-1]
		assert.Equal(t, report.RowTotal, total.Kind)
		assert.Equal(t, 4, total.Daily.Quantity)
		assert.Equal(t, 6, total.Monthly.Quantity)
		assert.True(t, decimal.NewFromInt(6000).Equal(total.Monthly.Amount), total.Monthly.Amount.String())
		assert.True(t, decimal.NewFromInt(1200).Equal(total.Monthly.Profit), total.Monthly.Profit.String())
	})

	t.Run("parent reads one company's day", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/mynet/sales?company_id=%s&date=2024-03-14", s.alphaID)
		rec := s.do(t, "mynet_hq", http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		records := data[[]appsales.SalesRecordResponse](t, rec)
		require.Len(t, records, 1)
		assert.Equal(t, 2, records[0].Quantity)
	})

	t.Run("subsidiaries cannot reach the parent views", func(t *testing.T) {
		rec := s.do(t, "alpha", http.MethodGet, "/api/v1/mynet/view", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("monthly workbook export", func(t *testing.T) {
		rec := s.do(t, "mynet_hq", http.MethodGet, "/api/v1/statistics/monthly/export?year=2024", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, appreport.ContentTypeXLSX, rec.Header().Get("Content-Type"))
		assert.Equal(t, "PK", rec.Body.String()[:2])
	})
}
