package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	domainRepo "github.com/marketpos/marketpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type salesOrderRepository struct {
	db *gorm.DB
}

// NewSalesOrderRepository creates a new sales order repository
func NewSalesOrderRepository(db *gorm.DB) domainRepo.SalesOrderRepository {
	return &salesOrderRepository{db: db}
}

// Create persists the order with its lines; GORM cascades the association.
func (r *salesOrderRepository) Create(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *salesOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	var order entity.SalesOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *salesOrderRepository) Update(ctx context.Context, order *entity.SalesOrder) error {
	return r.db.WithContext(ctx).Omit("Lines", "Customer").Save(order).Error
}

// ReplaceLines swaps the order's line set in one transaction so a failed
// update never leaves the order half-edited.
func (r *salesOrderRepository) ReplaceLines(ctx context.Context, order *entity.SalesOrder, lines []entity.SalesOrderLine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&entity.SalesOrderLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		order.Lines = lines
		order.RecalculateTotals()
		return tx.Omit("Lines", "Customer").Save(order).Error
	})
}

func (r *salesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.SalesOrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.SalesOrder{}, "id = ?", id).Error
	})
}

func (r *salesOrderRepository) List(ctx context.Context, params *domainRepo.SalesOrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var orders []entity.SalesOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SalesOrder{})

	if params.State != nil {
		query = query.Where("sales_orders.state = ?", *params.State)
	}

	if params.CustomerID != nil {
		query = query.Where("sales_orders.customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("sales_orders.order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sales_orders.order_date <= ?", *params.EndDate)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.
			Joins("LEFT JOIN customers ON customers.id = sales_orders.customer_id").
			Where("sales_orders.name ILIKE ? OR sales_orders.reference ILIKE ? OR customers.name ILIKE ?",
				search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("sales_orders.order_date DESC, sales_orders.created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

// CountByPrefix includes soft-deleted rows so order names are never
// reissued after a deletion.
func (r *salesOrderRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Unscoped().
		Where("name LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}

func (r *salesOrderRepository) CountByState(ctx context.Context) ([]domainRepo.SalesOrderStateCount, error) {
	var rows []domainRepo.SalesOrderStateCount
	err := r.db.WithContext(ctx).Model(&entity.SalesOrder{}).
		Select("state, COUNT(*) AS count, COALESCE(SUM(amount_total), 0) AS amount_total").
		Group("state").
		Scan(&rows).Error
	return rows, err
}
