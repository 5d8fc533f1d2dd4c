package repository

import (
	"context"
	"time"

	domainRepo "github.com/marketpos/marketpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// committedStates are the order states that count toward sales figures
var committedStates = []string{"paid", "done", "invoiced"}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.product_id,
			l.product_name,
			SUM(l.quantity) AS quantity_sold,
			SUM(l.subtotal + l.tax) / 100.0 AS revenue
		FROM pos_order_lines l
		JOIN pos_orders o ON o.id = l.order_id
		WHERE o.state IN ? AND o.deleted_at IS NULL
		GROUP BY l.product_id, l.product_name
		ORDER BY revenue DESC
		LIMIT ?
	`, committedStates, limit).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	since := time.Now().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(o.order_date) AS date,
			SUM(o.amount_total) / 100.0 AS revenue,
			COUNT(*) AS order_count
		FROM pos_orders o
		WHERE o.state IN ? AND o.order_date >= ? AND o.deleted_at IS NULL
		GROUP BY DATE(o.order_date)
		ORDER BY date ASC
	`, committedStates, since).Scan(&results).Error

	return results, err
}

func (r *analyticsRepository) GetSalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummary, error) {
	var summary domainRepo.SalesSummary

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(o.amount_total), 0) / 100.0 AS revenue,
			COALESCE(SUM(o.amount_tax), 0) / 100.0 AS tax_collected,
			COUNT(*) AS order_count
		FROM pos_orders o
		WHERE o.state IN ? AND o.order_date >= ? AND o.order_date <= ? AND o.deleted_at IS NULL
	`, committedStates, from, to).Scan(&summary).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
