package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold float64   `json:"quantity_sold"`
	Revenue      float64   `json:"revenue"`
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       time.Time `json:"date"`
	Revenue    float64   `json:"revenue"`
	OrderCount int       `json:"order_count"`
}

// SalesSummary aggregates committed sales over a period
type SalesSummary struct {
	Revenue      float64 `json:"revenue"`
	TaxCollected float64 `json:"tax_collected"`
	OrderCount   int     `json:"order_count"`
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)

	// GetSalesSummary aggregates committed sales between two instants
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}
