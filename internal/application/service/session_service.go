package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/pos"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// SessionService manages register session lifecycle. The transition rules
// and drawer arithmetic live in pos.SessionLedger; this service maps them
// onto persisted sessions and enforces the single-open-session rule.
type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// OpenSessionInput represents the open session input. OpeningCash is a
// decimal amount as entered by the cashier.
type OpenSessionInput struct {
	CashierID   uuid.UUID
	OpeningCash float64
}

// OpenSession opens a new register session with the declared cash float.
// Fails when another session is already open: the register is single-session.
func (s *SessionService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.Session, error) {
	open, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflictError(pos.ErrSessionAlreadyActive.Error())
	}

	cashier, err := s.userRepo.GetByID(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, apperror.NewNotFoundError("Cashier")
	}

	ledger, err := pos.OpenLedger(int64(input.OpeningCash * 100))
	if err != nil {
		return nil, apperror.NewBadRequestError("Opening cash cannot be negative")
	}

	now := time.Now()
	prefix := utils.MonthPrefix("POS", now)
	seq, err := s.sessionRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Name:        utils.DocumentName("POS", now, seq+1),
		CashierID:   cashier.ID,
		CashierName: cashier.Name,
		StartAt:     now,
	}
	session.ApplyLedger(ledger)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// GetOpenSession returns the session currently holding the register
func (s *SessionService) GetOpenSession(ctx context.Context) (*entity.Session, error) {
	session, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open session")
	}
	return session, nil
}

// RequestClose moves the session into closing so the cashier can count the
// drawer. Repeating the request while already closing is a no-op.
func (s *SessionService) RequestClose(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	ledger := session.Ledger()
	if err := ledger.RequestClose(); err != nil {
		return nil, apperror.NewConflictError("Session cannot be closed from state " + session.State.String())
	}
	session.ApplyLedger(ledger)

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CloseSessionInput represents the close session input. ClosingCash is the
// counted drawer amount as a decimal.
type CloseSessionInput struct {
	SessionID   uuid.UUID
	ClosingCash float64
	Notes       *string
}

// CloseSession records the counted drawer cash and closes the session. The
// drawer variance (counted minus expected) is frozen on the session; a
// nonzero variance is reported, never rejected.
func (s *SessionService) CloseSession(ctx context.Context, input *CloseSessionInput) (*entity.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}

	ledger := session.Ledger()
	if err := ledger.Close(int64(input.ClosingCash * 100)); err != nil {
		return nil, apperror.NewConflictError("Session must be in closing state before it can be closed")
	}
	session.ApplyLedger(ledger)

	now := time.Now()
	session.StopAt = &now
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions lists sessions with filtering
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.Session], error) {
	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
