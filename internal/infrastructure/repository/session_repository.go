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

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// GetOpen returns the session currently holding the register, if any. The
// register is single-session: at most one row is in an open state.
func (r *sessionRepository) GetOpen(ctx context.Context) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).
		Where("state IN ?", []enum.SessionState{enum.SessionStateActive, enum.SessionStateClosing}).
		Order("start_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.Session, int64, error) {
	var sessions []entity.Session
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Session{})

	if params.State != nil {
		query = query.Where("state = ?", *params.State)
	}

	if params.CashierID != nil {
		query = query.Where("cashier_id = ?", *params.CashierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("start_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

func (r *sessionRepository) CountByPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Session{}).
		Where("name LIKE ?", prefix+"%").
		Count(&count).Error
	return count, err
}
