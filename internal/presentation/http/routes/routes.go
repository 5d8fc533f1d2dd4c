package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marketpos/marketpos-api/internal/config"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/internal/presentation/http/handler"
	"github.com/marketpos/marketpos-api/internal/presentation/http/middleware"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// Handlers bundles every HTTP handler wired into the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Session    *handler.SessionHandler
	Pos        *handler.PosHandler
	Product    *handler.ProductHandler
	Category   *handler.CategoryHandler
	Customer   *handler.CustomerHandler
	Invoice    *handler.InvoiceHandler
	SalesOrder *handler.SalesOrderHandler
	Report     *handler.ReportHandler
}

// Deps carries the cross-cutting dependencies the router needs.
type Deps struct {
	Cfg             *config.Config
	Logger          *slog.Logger
	JWTManager      *utils.JWTManager
	IdempotencyRepo repository.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
}

// Setup builds the gin engine with all middleware and routes registered.
func Setup(h Handlers, deps Deps) *gin.Engine {
	if !deps.Cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": deps.Cfg.App.Name})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	idempotency := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWTManager))
	protected.Use(deps.RateLimiter.Middleware())
	{
		protected.GET("/auth/me", h.Auth.GetProfile)
		protected.POST("/auth/change-password", h.Auth.ChangePassword)
		protected.POST("/auth/register", middleware.RequireRole("manager"), h.Auth.Register)

		pos := protected.Group("/pos")
		{
			pos.POST("/sessions", h.Session.OpenSession)
			pos.GET("/sessions", h.Session.ListSessions)
			pos.GET("/sessions/current", h.Session.GetOpenSession)
			pos.GET("/sessions/:id", h.Session.GetSession)
			pos.POST("/sessions/:id/request-close", h.Session.RequestClose)
			pos.POST("/sessions/:id/close", h.Session.CloseSession)

			// Order commits must carry an Idempotency-Key so a double-tapped
			// checkout replays the original order instead of charging twice.
			pos.POST("/orders", middleware.IdempotencyRequired(idempotency), h.Pos.CommitOrder)
			pos.POST("/orders/quote", h.Pos.QuoteTotals)
			pos.GET("/orders", h.Pos.ListOrders)
			pos.GET("/orders/:id", h.Pos.GetOrder)
			pos.POST("/orders/:id/cancel", middleware.RequireRole("manager"), h.Pos.CancelOrder)
		}

		products := protected.Group("/products")
		{
			products.GET("", h.Product.ListProducts)
			products.GET("/low-stock", h.Product.GetLowStockProducts)
			products.GET("/export", middleware.RequireRole("manager"), h.Product.ExportProducts)
			products.GET("/barcode/:barcode", h.Product.GetProductByBarcode)
			products.GET("/:id", h.Product.GetProduct)
			products.GET("/:id/stock-moves", h.Product.ListStockMoves)
			products.POST("", middleware.RequireRole("manager"), h.Product.CreateProduct)
			products.PUT("/:id", middleware.RequireRole("manager"), h.Product.UpdateProduct)
			products.DELETE("/:id", middleware.RequireRole("manager"), h.Product.DeleteProduct)
			products.POST("/:id/adjust-stock", middleware.RequireRole("manager"), h.Product.AdjustStock)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.POST("", middleware.RequireRole("manager"), h.Category.CreateCategory)
			categories.DELETE("/:id", middleware.RequireRole("manager"), h.Category.DeleteCategory)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customer.ListCustomers)
			customers.GET("/:id", h.Customer.GetCustomer)
			customers.POST("", h.Customer.CreateCustomer)
			customers.PUT("/:id", h.Customer.UpdateCustomer)
			customers.DELETE("/:id", middleware.RequireRole("manager"), h.Customer.DeleteCustomer)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.GET("", h.Invoice.ListInvoices)
			invoices.GET("/:id", h.Invoice.GetInvoice)
			invoices.POST("/from-order", middleware.Idempotency(idempotency), h.Invoice.CreateFromOrder)
			invoices.POST("/scan", h.Invoice.DraftFromScan)
			invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		}

		sales := protected.Group("/sales")
		{
			sales.GET("/orders", h.SalesOrder.ListSalesOrders)
			sales.GET("/orders/:id", h.SalesOrder.GetSalesOrder)
			sales.POST("/orders", h.SalesOrder.CreateSalesOrder)
			sales.PUT("/orders/:id", h.SalesOrder.UpdateSalesOrder)
			sales.POST("/orders/:id/confirm", h.SalesOrder.ConfirmSalesOrder)
			sales.POST("/orders/:id/deliver", h.SalesOrder.MarkDelivered)
			sales.POST("/orders/:id/cancel", h.SalesOrder.CancelSalesOrder)
			sales.DELETE("/orders/:id", middleware.RequireRole("manager"), h.SalesOrder.DeleteSalesOrder)
			sales.GET("/dashboard", middleware.RequireRole("manager"), h.SalesOrder.GetDashboard)
		}

		reports := protected.Group("/reports")
		reports.Use(middleware.RequireRole("manager"))
		{
			reports.GET("/dashboard", h.Report.GetDashboard)
			reports.GET("/cashflow-forecast", h.Report.ForecastCashflow)
			reports.GET("/anomalies", h.Report.DetectAnomalies)
			reports.GET("/sales/export", h.Report.ExportSales)
		}
	}

	return router
}
