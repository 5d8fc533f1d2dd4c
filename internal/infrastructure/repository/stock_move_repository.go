package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	domainRepo "github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"gorm.io/gorm"
)

type stockMoveRepository struct {
	db *gorm.DB
}

// NewStockMoveRepository creates a new stock move repository
func NewStockMoveRepository(db *gorm.DB) domainRepo.StockMoveRepository {
	return &stockMoveRepository{db: db}
}

func (r *stockMoveRepository) Create(ctx context.Context, move *entity.StockMove) error {
	return r.db.WithContext(ctx).Create(move).Error
}

func (r *stockMoveRepository) CreateBatch(ctx context.Context, moves []entity.StockMove) error {
	if len(moves) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&moves).Error
}

func (r *stockMoveRepository) ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) ([]entity.StockMove, int64, error) {
	var moves []entity.StockMove
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockMove{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("moved_at DESC").
		Find(&moves).Error

	return moves, total, err
}
