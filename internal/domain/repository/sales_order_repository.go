package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// SalesOrderRepository defines the interface for sales order persistence.
// Create and ReplaceLines persist the order together with its lines.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	// ReplaceLines deletes the order's existing lines and persists the given
	// set in their place, then updates the order's stored totals.
	ReplaceLines(ctx context.Context, order *entity.SalesOrder, lines []entity.SalesOrderLine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SalesOrderFilterParams) ([]entity.SalesOrder, int64, error)
	// CountByPrefix counts orders whose name starts with the given prefix,
	// used for sequential numbering (SO/2026/08/0001).
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
	// CountByState aggregates live orders per state with their summed totals.
	CountByState(ctx context.Context) ([]SalesOrderStateCount, error)
}

// SalesOrderFilterParams contains filtering parameters for sales order queries
type SalesOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	State      *enum.SalesOrderState
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // matches order name, reference and customer name
}

// SalesOrderStateCount is one row of the sales dashboard aggregation
type SalesOrderStateCount struct {
	State       enum.SalesOrderState `json:"state"`
	Count       int64                `json:"count"`
	AmountTotal int64                `json:"-"`
}
