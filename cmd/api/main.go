package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/config"
	"github.com/marketpos/marketpos-api/internal/infrastructure/database"
	"github.com/marketpos/marketpos-api/internal/infrastructure/repository"
	"github.com/marketpos/marketpos-api/internal/presentation/http/handler"
	"github.com/marketpos/marketpos-api/internal/presentation/http/middleware"
	"github.com/marketpos/marketpos-api/internal/presentation/http/routes"
	"github.com/marketpos/marketpos-api/pkg/aiclient"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.App.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn("failed to seed default data", "error", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	aiClient := aiclient.New(cfg.AI.BaseURL, cfg.AI.Timeout)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	stockMoveRepo := repository.NewStockMoveRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	salesOrderRepo := repository.NewSalesOrderRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	sessionService := service.NewSessionService(sessionRepo, userRepo)
	checkoutService := service.NewCheckoutService(orderRepo, sessionRepo, productRepo, customerRepo, stockMoveRepo)
	productService := service.NewProductService(productRepo, categoryRepo, stockMoveRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, customerRepo, aiClient)
	salesOrderService := service.NewSalesOrderService(salesOrderRepo, customerRepo, productRepo)
	reportService := service.NewReportService(analyticsRepo, productRepo, aiClient)

	rateLimiter := middleware.NewUserRateLimiter(middleware.DefaultRateLimiterConfig())
	defer rateLimiter.Stop()

	router := routes.Setup(routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Session:    handler.NewSessionHandler(sessionService),
		Pos:        handler.NewPosHandler(checkoutService),
		Product:    handler.NewProductHandler(productService),
		Category:   handler.NewCategoryHandler(categoryService),
		Customer:   handler.NewCustomerHandler(customerService),
		Invoice:    handler.NewInvoiceHandler(invoiceService),
		SalesOrder: handler.NewSalesOrderHandler(salesOrderService),
		Report:     handler.NewReportHandler(reportService),
	}, routes.Deps{
		Cfg:             cfg,
		Logger:          logger,
		JWTManager:      jwtManager,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
