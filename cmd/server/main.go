package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/mynet/sales/internal/application/catalog"
	appgeo "github.com/mynet/sales/internal/application/geo"
	appidentity "github.com/mynet/sales/internal/application/identity"
	appreport "github.com/mynet/sales/internal/application/report"
	appsales "github.com/mynet/sales/internal/application/sales"
	apptarget "github.com/mynet/sales/internal/application/target"
	"github.com/mynet/sales/internal/domain/sales"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"github.com/mynet/sales/internal/infrastructure/cache"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/mynet/sales/internal/infrastructure/geoip"
	"github.com/mynet/sales/internal/infrastructure/logger"
	"github.com/mynet/sales/internal/infrastructure/migration"
	"github.com/mynet/sales/internal/infrastructure/persistence"
	"github.com/mynet/sales/internal/infrastructure/spreadsheet"
	"github.com/mynet/sales/internal/infrastructure/storage"
	"github.com/mynet/sales/internal/infrastructure/telemetry"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
	"github.com/mynet/sales/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/mynet/sales/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Mynet Sales API
//	@version		1.0
//	@description	Daily sales entry and reporting for the Mynet group and its subsidiaries

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Logs are mirrored to the collector once the OTLP provider is up
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		log, _ = logger.New(logCfg, loggerProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting sales backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("timezone", cfg.App.Timezone),
	)
	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret is not configured")
	}

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal("Invalid business time zone", zap.Error(err))
	}
	clock := shared.SystemClock{}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := migrateUp(sqlDB, log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if meterProvider.IsEnabled() {
		if _, err := telemetry.RegisterDBPoolMetrics(meterProvider.Meter("database"), sqlDB); err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		}
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	priceRepo := persistence.NewGormPriceHistoryRepository(db.DB)
	recordRepo := persistence.NewGormSalesRecordRepository(db.DB)
	targetRepo := persistence.NewGormTargetRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT, clock)
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist(clock)
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient, clock)
	}

	// Application services
	products := appcatalog.NewProductService(
		persistence.NewGormCatalogTransactionScope(db.DB), productRepo, priceRepo, recordRepo, clock, log,
	)
	salesService := appsales.NewSalesService(recordRepo, productRepo, companyRepo, sales.NewEditWindow(clock, loc), clock, log)
	targets := apptarget.NewTargetService(targetRepo, productRepo, companyRepo, clock, log)
	authService := appidentity.NewAuthService(userRepo, companyRepo, jwtService, blacklist, log)
	users := appidentity.NewUserService(userRepo, companyRepo, clock, log, appidentity.WithTokenRevocation(blacklist, jwtService))
	companies := appidentity.NewCompanyService(companyRepo, clock, log)

	src := appreport.Sources{
		Products:  productRepo,
		Prices:    priceRepo,
		Records:   recordRepo,
		Targets:   targetRepo,
		Companies: companyRepo,
		Clock:     clock,
		Location:  loc,
	}
	statistics := appreport.NewStatisticsService(src)
	dailyStatus := appreport.NewDailyStatusService(src, appreport.BoardLayout{
		Order:    cfg.Report.CompanyOrder,
		Excluded: cfg.Report.ExcludedCompanies,
	})
	comparisons := appreport.NewComparisonService(src)

	var exportOpts []appreport.ExportOption
	if meterProvider.IsEnabled() {
		exportMetrics, err := telemetry.NewExportMetrics(meterProvider.Meter("report.export"))
		if err != nil {
			log.Fatal("Failed to create export metrics", zap.Error(err))
		}
		exportOpts = append(exportOpts, appreport.WithExportMetrics(exportMetrics))
	}
	if cfg.Storage.Enabled {
		archive, err := storage.NewS3ExportArchive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create export archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Export bucket is not available", zap.Error(err))
		}
		exportOpts = append(exportOpts, appreport.WithArchive(archive))
		log.Info("Archiving exports", zap.String("bucket", archive.GetBucket()))
	}
	exports := appreport.NewExportService(statistics, dailyStatus, comparisons, spreadsheet.NewRenderer(), clock, log, exportOpts...)

	if err := appidentity.NewAdminBootstrapper(userRepo, companyRepo, cfg.Admin, clock, log).Run(ctx); err != nil {
		log.Fatal("Failed to bootstrap administrator", zap.Error(err))
	}

	middleware.SetupValidator()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID, Recovery and request logging
	// 2. Tracing, with the span enriched once the handler has run
	// 3. Security headers, CORS and the body limit
	// 4. Rate limiting and metrics
	// 5. Country allow-list
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(newLimiter(redisClient, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, "ratelimit:api:", clock), log))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.MetricsEnabled,
	}))

	if cfg.Geo.Enabled {
		geoCache := cache.NewGeoCache(cfg.Geo, redisClient, clock, log)
		geoService := appgeo.NewService(geoip.NewClient(cfg.Geo), geoCache, cfg.Geo.CacheTTL, cfg.Geo.AllowedCountries, log)
		engine.Use(middleware.Geofence(geoService, "/health"))
		log.Info("Country allow-list enabled", zap.Strings("countries", cfg.Geo.AllowedCountries))
	}

	checks := []handler.HealthCheck{
		{Name: "database", Check: func(context.Context) error { return db.Ping() }},
	}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	engine.GET("/health", handler.NewHealthHandler(clock, checks...).Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig)).
		Use(middleware.Profiling(profiler.IsEnabled()))

	var routeOpts router.RouteOptions
	if cfg.HTTP.AuthRateLimitEnabled {
		routeOpts.AuthRateLimit = middleware.RateLimit(
			newLimiter(redisClient, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow, "ratelimit:auth:", clock), log)
	}
	for _, registrar := range router.SalesRoutes(router.Handlers{
		Auth:       handler.NewAuthHandler(authService, users, clock),
		Subsidiary: handler.NewSubsidiaryHandler(products, salesService, statistics, comparisons, clock, loc),
		Mynet:      handler.NewMynetHandler(statistics, dailyStatus, exports, salesService, targets),
		Statistics: handler.NewStatisticsHandler(comparisons, exports, products),
		Admin:      handler.NewAdminHandler(products, users, companies),
	}, routeOpts) {
		r.Register(registrar)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// migrateUp applies the embedded schema. The migrator is not closed since
// that would close the shared connection pool.
func migrateUp(sqlDB *sql.DB, log *zap.Logger) error {
	m, err := migration.New(sqlDB, migration.Source{}, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// newLimiter shares counters across instances through Redis when it is
// available
func newLimiter(client redis.UniversalClient, limit int, window time.Duration, prefix string, clock shared.Clock) middleware.Limiter {
	if client != nil {
		return middleware.NewRedisRateLimiter(client, limit, window, prefix)
	}
	return middleware.NewRateLimiter(limit, window, clock)
}
