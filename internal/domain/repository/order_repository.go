package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// OrderRepository defines the interface for POS order persistence.
// Create persists the order together with its lines and payments.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.PosOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PosOrder, error)
	// GetWithDetails loads the order with its lines, payments and customer
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.PosOrder, error)
	Update(ctx context.Context, order *entity.PosOrder) error
	UpdateState(ctx context.Context, id uuid.UUID, state enum.OrderState) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.PosOrder, int64, error)
	// CountByPrefix counts orders whose name starts with the given prefix,
	// used for sequential naming (ORD/2026/08/0001).
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	SessionID  *uuid.UUID
	CustomerID *uuid.UUID
	State      *enum.OrderState
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}
