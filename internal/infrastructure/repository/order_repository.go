package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	domainRepo "github.com/marketpos/marketpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order with its lines and payments in one transaction.
// GORM cascades the associations on Create.
func (r *orderRepository) Create(ctx context.Context, order *entity.PosOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PosOrder, error) {
	var order entity.PosOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PosOrder, error) {
	var order entity.PosOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.PosOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) UpdateState(ctx context.Context, id uuid.UUID, state enum.OrderState) error {
	return r.db.WithContext(ctx).Model(&entity.PosOrder{}).
		Where("id = ?", id).
		Update("state", state).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.PosOrder, int64, error) {
	var orders []entity.PosOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PosOrder{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR receipt_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.State != nil {
		query = query.Where("state = ?", *params.State)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

// CountByPrefix includes soft-deleted rows so document numbers are never
// reissued after a cancellation.
func (r *orderRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PosOrder{}).
		Unscoped().
		Where("name LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
