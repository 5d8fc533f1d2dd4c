package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// TestOpenLedger verifies a new ledger starts active with the declared float
// and rejects a negative opening amount.
func TestOpenLedger(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(50000)
	require.NoError(t, err)
	assert.Equal(t, enum.SessionStateActive, s.State)
	assert.Equal(t, int64(50000), s.OpeningCash)
	assert.Equal(t, 0, s.OrderCount)

	_, err = OpenLedger(-1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

// TestSessionLifecycle runs the full open -> commit -> close flow and checks
// the drawer variance: open 500.00, commit 120.00 and 80.00, count 700.00 at
// close, variance 0.
func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(50000)
	require.NoError(t, err)

	require.NoError(t, s.RecordCommittedOrder(12000))
	require.NoError(t, s.RecordCommittedOrder(8000))
	assert.Equal(t, int64(20000), s.CommittedTotal)
	assert.Equal(t, 2, s.OrderCount)
	assert.Equal(t, int64(70000), s.ExpectedCash())

	require.NoError(t, s.RequestClose())
	assert.Equal(t, enum.SessionStateClosing, s.State)

	require.NoError(t, s.Close(70000))
	assert.Equal(t, enum.SessionStateClosed, s.State)
	assert.Equal(t, int64(0), s.DrawerVariance)
}

// TestSessionLifecycle_ShortDrawer verifies a short count yields a negative
// variance.
func TestSessionLifecycle_ShortDrawer(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(10000)
	require.NoError(t, err)
	require.NoError(t, s.RecordCommittedOrder(5000))
	require.NoError(t, s.RequestClose())
	require.NoError(t, s.Close(14000))

	assert.Equal(t, int64(-1000), s.DrawerVariance)
	assert.Equal(t, int64(14000), s.ClosingCash)
}

// TestRecordCommittedOrder_NotActive verifies commits are rejected once the
// session has left the active state.
func TestRecordCommittedOrder_NotActive(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(0)
	require.NoError(t, err)
	require.NoError(t, s.RequestClose())
	assert.ErrorIs(t, s.RecordCommittedOrder(100), ErrSessionNotActive)

	require.NoError(t, s.Close(0))
	assert.ErrorIs(t, s.RecordCommittedOrder(100), ErrSessionNotActive)
	assert.Equal(t, int64(0), s.CommittedTotal)
	assert.Equal(t, 0, s.OrderCount)
}

// TestRequestClose_Idempotent verifies a second RequestClose is a no-op and
// the state stays closing.
func TestRequestClose_Idempotent(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(0)
	require.NoError(t, err)

	require.NoError(t, s.RequestClose())
	require.NoError(t, s.RequestClose())
	assert.Equal(t, enum.SessionStateClosing, s.State)
}

// TestClose_InvalidStates verifies Close is rejected from active and closed.
func TestClose_InvalidStates(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(0)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Close(0), ErrInvalidState)

	require.NoError(t, s.RequestClose())
	require.NoError(t, s.Close(0))
	assert.ErrorIs(t, s.Close(0), ErrInvalidState)
	assert.ErrorIs(t, s.RequestClose(), ErrInvalidState)
}

// TestClose_FreezesVariance verifies the variance is computed once at close
// and later commits cannot move it.
func TestClose_FreezesVariance(t *testing.T) {
	t.Parallel()

	s, err := OpenLedger(20000)
	require.NoError(t, err)
	require.NoError(t, s.RecordCommittedOrder(3000))
	require.NoError(t, s.RequestClose())
	require.NoError(t, s.Close(23500))

	frozen := s.DrawerVariance
	assert.Equal(t, int64(500), frozen)

	_ = s.RecordCommittedOrder(9999)
	assert.Equal(t, frozen, s.DrawerVariance)
	assert.Equal(t, int64(3000), s.CommittedTotal)
}
