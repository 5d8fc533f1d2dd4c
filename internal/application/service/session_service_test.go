package service

import (
	"context"
	"testing"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionServiceFixture(t *testing.T) (*SessionService, *fakeSessionRepo, *entity.User) {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	userRepo := newFakeUserRepo()

	cashier := &entity.User{Name: "Ada", Email: "ada@example.com", Role: "cashier", Active: true}
	require.NoError(t, userRepo.Create(context.Background(), cashier))

	return NewSessionService(sessionRepo, userRepo), sessionRepo, cashier
}

// TestOpenSession opens a session with a cash float and verifies it comes
// back active and sequentially named
func TestOpenSession(t *testing.T) {
	t.Parallel()

	svc, _, cashier := newSessionServiceFixture(t)

	session, err := svc.OpenSession(context.Background(), &OpenSessionInput{
		CashierID:   cashier.ID,
		OpeningCash: 500.00,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SessionStateActive, session.State)
	assert.Equal(t, int64(50000), session.OpeningCash)
	assert.Equal(t, cashier.Name, session.CashierName)
	assert.Regexp(t, `^POS/\d{4}/\d{2}/0001$`, session.Name)
}

// TestOpenSessionSecondRejected verifies the register is single-session
func TestOpenSessionSecondRejected(t *testing.T) {
	t.Parallel()

	svc, _, cashier := newSessionServiceFixture(t)

	_, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 100})
	require.NoError(t, err)

	_, err = svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "active session")
}

// TestOpenSessionNegativeFloat rejects a negative opening float
func TestOpenSessionNegativeFloat(t *testing.T) {
	t.Parallel()

	svc, _, cashier := newSessionServiceFixture(t)

	_, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: -1})
	require.Error(t, err)
}

// TestSessionCloseFlow walks the full lifecycle: open, request close, close
// with a counted amount, and verifies the frozen drawer variance
func TestSessionCloseFlow(t *testing.T) {
	t.Parallel()

	svc, repo, cashier := newSessionServiceFixture(t)

	session, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 500})
	require.NoError(t, err)

	// Simulate committed orders folding into the ledger
	stored := repo.sessions[session.ID]
	ledger := stored.Ledger()
	require.NoError(t, ledger.RecordCommittedOrder(12000))
	require.NoError(t, ledger.RecordCommittedOrder(8000))
	stored.ApplyLedger(ledger)

	session, err = svc.RequestClose(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStateClosing, session.State)

	// Requesting close again is a no-op
	_, err = svc.RequestClose(context.Background(), session.ID)
	require.NoError(t, err)

	closed, err := svc.CloseSession(context.Background(), &CloseSessionInput{
		SessionID:   session.ID,
		ClosingCash: 690.00, // expected 500 + 200, counted 690
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SessionStateClosed, closed.State)
	assert.Equal(t, int64(-1000), closed.DrawerVariance) // 10.00 short
	assert.NotNil(t, closed.StopAt)
}

// TestCloseSessionRequiresClosingState verifies close is rejected unless the
// session went through request-close first
func TestCloseSessionRequiresClosingState(t *testing.T) {
	t.Parallel()

	svc, _, cashier := newSessionServiceFixture(t)

	session, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 100})
	require.NoError(t, err)

	_, err = svc.CloseSession(context.Background(), &CloseSessionInput{SessionID: session.ID, ClosingCash: 100})
	require.Error(t, err)
}

// TestSessionNamesIncrement verifies sequential naming across sessions
func TestSessionNamesIncrement(t *testing.T) {
	t.Parallel()

	svc, _, cashier := newSessionServiceFixture(t)

	first, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 100})
	require.NoError(t, err)

	_, err = svc.RequestClose(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = svc.CloseSession(context.Background(), &CloseSessionInput{SessionID: first.ID, ClosingCash: 100})
	require.NoError(t, err)

	second, err := svc.OpenSession(context.Background(), &OpenSessionInput{CashierID: cashier.ID, OpeningCash: 100})
	require.NoError(t, err)

	assert.Regexp(t, `/0002$`, second.Name)
}
