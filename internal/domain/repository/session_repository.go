package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// SessionRepository defines the interface for register session persistence
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	// GetOpen returns the session currently in an open state (active or
	// closing), or nil when the register has none.
	GetOpen(ctx context.Context) (*entity.Session, error)
	Update(ctx context.Context, session *entity.Session) error
	List(ctx context.Context, params *SessionFilterParams) ([]entity.Session, int64, error)
	// CountByPrefix counts sessions whose name starts with the given prefix,
	// used for sequential naming (POS/2026/08/0001).
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	State      *enum.SessionState
	CashierID  *uuid.UUID
}
