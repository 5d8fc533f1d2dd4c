package database

import (
	"fmt"
	"log/slog"

	"github.com/marketpos/marketpos-api/internal/config"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if viper.GetBool("APP_DEBUG") {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	slog.Info("connected to postgres")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	slog.Info("running database migrations")

	err := db.AutoMigrate(
		// Users
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Product{},
		&entity.StockMove{},

		// CRM
		&entity.Customer{},

		// POS
		&entity.Session{},
		&entity.PosOrder{},
		&entity.PosOrderLine{},
		&entity.PosPayment{},

		// Sales
		&entity.SalesOrder{},
		&entity.SalesOrderLine{},

		// Invoicing
		&entity.Invoice{},
		&entity.InvoiceLine{},

		// System
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// SeedDefaultData seeds the database with default data (categories, demo
// products, admin user)
func SeedDefaultData(db *gorm.DB) error {
	slog.Info("seeding default data")

	categories := []entity.Category{
		{Name: "Beverages", Slug: "beverages", Sequence: 10},
		{Name: "Bakery", Slug: "bakery", Sequence: 20},
		{Name: "Produce", Slug: "produce", Sequence: 30},
		{Name: "Household", Slug: "household", Sequence: 40},
	}

	for i := range categories {
		var existing entity.Category
		if err := db.Where("slug = ?", categories[i].Slug).First(&existing).Error; err != nil {
			if err := db.Create(&categories[i]).Error; err != nil {
				slog.Warn("failed to create category", "name", categories[i].Name, "error", err)
			}
		} else {
			categories[i] = existing
		}
	}

	barcode := func(s string) *string { return &s }
	products := []entity.Product{
		{
			CategoryID:     &categories[0].ID,
			Name:           "Mineral Water 1.5L",
			Code:           "PRD-0001",
			Barcode:        barcode("4001234500017"),
			ListPrice:      150,
			CostPrice:      80,
			TaxRatePercent: 8,
			StockQty:       120,
			ReorderPoint:   24,
		},
		{
			CategoryID:     &categories[1].ID,
			Name:           "Baguette",
			Code:           "PRD-0002",
			Barcode:        barcode("4001234500024"),
			ListPrice:      220,
			CostPrice:      90,
			TaxRatePercent: 8,
			StockQty:       40,
			ReorderPoint:   10,
		},
		{
			CategoryID:     &categories[2].ID,
			Name:           "Bananas (kg)",
			Code:           "PRD-0003",
			Barcode:        barcode("2100000000012"),
			ListPrice:      199,
			CostPrice:      110,
			TaxRatePercent: 0,
			StockQty:       35.5,
			ReorderPoint:   8,
			Unit:           "kg",
			ToWeight:       true,
		},
		{
			CategoryID:     &categories[3].ID,
			Name:           "Dish Soap 500ml",
			Code:           "PRD-0004",
			Barcode:        barcode("4001234500048"),
			ListPrice:      349,
			CostPrice:      180,
			TaxRatePercent: 20,
			StockQty:       60,
			ReorderPoint:   12,
		},
	}

	for i := range products {
		var existing entity.Product
		if err := db.Where("code = ?", products[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&products[i]).Error; err != nil {
				slog.Warn("failed to create product", "code", products[i].Code, "error", err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			if adminName == "" {
				adminName = "Store Manager"
			}
			adminUser := entity.User{
				Name:  adminName,
				Email: adminEmail,
				Role:  "manager",
			}
			if err := adminUser.SetPassword(adminPassword); err != nil {
				slog.Warn("failed to hash admin password", "error", err)
			} else if err := db.Create(&adminUser).Error; err != nil {
				slog.Warn("failed to create admin user", "error", err)
			} else {
				slog.Info("admin user created", "email", adminEmail)
			}
		} else {
			slog.Debug("admin user already exists", "email", adminEmail)
		}
	}

	slog.Info("default data seeding completed")
	return nil
}
