package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/interfaces/http/handler"
	"github.com/mynet/sales/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers of the sales API
type Handlers struct {
	Auth       *handler.AuthHandler
	Subsidiary *handler.SubsidiaryHandler
	Mynet      *handler.MynetHandler
	Statistics *handler.StatisticsHandler
	Admin      *handler.AdminHandler
}

// RouteOptions carries middleware attached to individual areas
type RouteOptions struct {
	// AuthRateLimit throttles login and signup; nil disables it
	AuthRateLimit gin.HandlerFunc
}

// SalesRoutes builds the versioned route groups and their tier gates
func SalesRoutes(h Handlers, opts RouteOptions) []RouteRegistrar {
	throttled := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if opts.AuthRateLimit == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{opts.AuthRateLimit, fn}
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", throttled(h.Auth.Login)...)
	authRoutes.POST("/signup", throttled(h.Auth.Signup)...)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.PUT("/password", h.Auth.ChangePassword)

	subsidiaryRoutes := NewDomainGroup("subsidiary", "/subsidiary").
		Use(middleware.RequireTier(identity.TierSubsidiary))
	subsidiaryRoutes.GET("/input", h.Subsidiary.InputSheet)
	subsidiaryRoutes.POST("/sales", h.Subsidiary.SaveSales)
	subsidiaryRoutes.POST("/sales/bulk", h.Subsidiary.BulkSaveSales)
	subsidiaryRoutes.GET("/statistics", h.Subsidiary.Statistics)
	subsidiaryRoutes.GET("/monthly-sales", h.Subsidiary.MonthlySales)

	// Partners read everything under /mynet; writes are gated per route
	write := middleware.RequireAdminister()
	mynetRoutes := NewDomainGroup("mynet", "/mynet").
		Use(middleware.RequireViewAll())
	mynetRoutes.GET("/view", h.Mynet.View)
	mynetRoutes.GET("/view/export", h.Mynet.ExportView)
	mynetRoutes.GET("/sales", h.Mynet.ListSales)
	mynetRoutes.PUT("/sales", write, h.Mynet.UpdateSales)
	mynetRoutes.DELETE("/sales", write, h.Mynet.DeleteSales)
	mynetRoutes.GET("/targets", h.Mynet.ListTargets)
	mynetRoutes.PUT("/targets", write, h.Mynet.UpdateTargets)
	mynetRoutes.GET("/targets/reconcile", h.Mynet.ReconcileTargets)
	mynetRoutes.DELETE("/targets/:id", write, h.Mynet.DeleteTarget)
	mynetRoutes.GET("/daily-status", h.Mynet.DailyStatus)
	mynetRoutes.GET("/daily-status/export", h.Mynet.ExportDailyStatus)
	compareRoutes := mynetRoutes.Group("compare", "/compare")
	compareRoutes.GET("/monthly", h.Statistics.Monthly)
	compareRoutes.GET("/yearly", h.Statistics.Yearly)
	compareRoutes.POST("/period", h.Statistics.Period)
	compareRoutes.GET("/product", h.Statistics.Product)

	statisticsRoutes := NewDomainGroup("statistics", "/statistics").
		Use(middleware.RequireViewAll())
	statisticsRoutes.GET("/products", h.Statistics.Products)
	statisticsRoutes.GET("/monthly", h.Statistics.Monthly)
	statisticsRoutes.GET("/monthly/export", h.Statistics.ExportMonthly)
	statisticsRoutes.GET("/yearly", h.Statistics.Yearly)
	statisticsRoutes.GET("/yearly/export", h.Statistics.ExportYearly)
	statisticsRoutes.POST("/period", h.Statistics.Period)
	statisticsRoutes.POST("/period/export", h.Statistics.ExportPeriod)
	statisticsRoutes.GET("/product", h.Statistics.Product)
	statisticsRoutes.GET("/product/export", h.Statistics.ExportProduct)

	adminRoutes := NewDomainGroup("admin", "/admin").
		Use(middleware.RequireViewAll())
	productRoutes := adminRoutes.Group("products", "/products").
		Use(middleware.ReadOnlyFor(identity.TierPartner))
	productRoutes.GET("", h.Admin.ListProducts)
	productRoutes.POST("", h.Admin.CreateProduct)
	productRoutes.GET("/categories", h.Admin.Categories)
	productRoutes.GET("/:id", h.Admin.GetProduct)
	productRoutes.POST("/:id/activate", h.Admin.ActivateProduct)
	productRoutes.POST("/:id/deactivate", h.Admin.DeactivateProduct)
	productRoutes.POST("/:id/toggle", h.Admin.ToggleProduct)
	productRoutes.GET("/:id/price", h.Admin.GetPrice)
	productRoutes.PUT("/:id/price", h.Admin.UpdatePrice)
	productRoutes.GET("/:id/prices", h.Admin.PriceHistory)
	userRoutes := adminRoutes.Group("users", "/users").
		Use(middleware.RequireAdminister())
	userRoutes.GET("", h.Admin.ListUsers)
	userRoutes.POST("", h.Admin.CreateUser)
	userRoutes.DELETE("/:id", h.Admin.DeleteUser)
	companyRoutes := adminRoutes.Group("companies", "/companies").
		Use(middleware.RequireAdminister())
	companyRoutes.GET("", h.Admin.ListCompanies)
	companyRoutes.POST("", h.Admin.CreateCompany)

	return []RouteRegistrar{authRoutes, subsidiaryRoutes, mynetRoutes, statisticsRoutes, adminRoutes}
}
