package pos

import "github.com/marketpos/marketpos-api/internal/domain/enum"

// SessionLedger tracks one register working period. All amounts are cents.
//
// State moves one way: opening -> active -> closing -> closed. The opening
// state is instantaneous: OpenLedger returns the ledger already active.
// CommittedTotal and OrderCount grow only while the session is active and
// freeze once it closes, as does DrawerVariance.
type SessionLedger struct {
	State          enum.SessionState
	OpeningCash    int64
	CommittedTotal int64
	OrderCount     int
	ClosingCash    int64
	DrawerVariance int64
}

// OpenLedger creates an active ledger with the declared opening float.
// Negative opening cash is a caller bug.
func OpenLedger(openingCash int64) (*SessionLedger, error) {
	if openingCash < 0 {
		return nil, ErrInvalidState
	}
	return &SessionLedger{
		State:       enum.SessionStateActive,
		OpeningCash: openingCash,
	}, nil
}

// RecordCommittedOrder folds a committed order total into the session.
// Valid only while active; anything else indicates the caller committed an
// order against a session that cannot accept it.
func (s *SessionLedger) RecordCommittedOrder(amount int64) error {
	if s.State != enum.SessionStateActive {
		return ErrSessionNotActive
	}
	s.CommittedTotal += amount
	s.OrderCount++
	return nil
}

// RequestClose moves the session to closing. Idempotent when already
// closing; any other state besides active is rejected.
func (s *SessionLedger) RequestClose() error {
	switch s.State {
	case enum.SessionStateActive:
		s.State = enum.SessionStateClosing
		return nil
	case enum.SessionStateClosing:
		return nil
	default:
		return ErrInvalidState
	}
}

// Close records the counted drawer cash, freezes the drawer variance and
// moves the session to closed. Valid only from closing.
func (s *SessionLedger) Close(closingCash int64) error {
	if s.State != enum.SessionStateClosing {
		return ErrInvalidState
	}
	s.ClosingCash = closingCash
	s.DrawerVariance = closingCash - s.ExpectedCash()
	s.State = enum.SessionStateClosed
	return nil
}

// ExpectedCash returns the drawer cash expected from the opening float plus
// everything committed during the session
func (s *SessionLedger) ExpectedCash() int64 {
	return s.OpeningCash + s.CommittedTotal
}
