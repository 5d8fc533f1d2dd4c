package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// StockMoveRepository defines the interface for inventory movement records
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	CreateBatch(ctx context.Context, moves []entity.StockMove) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMove, int64, error)
}
