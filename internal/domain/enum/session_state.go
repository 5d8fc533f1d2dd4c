package enum

// SessionState represents the lifecycle state of a register session.
// Transitions are one-directional: opening -> active -> closing -> closed.
type SessionState string

const (
	SessionStateOpening SessionState = "opening"
	SessionStateActive  SessionState = "active"
	SessionStateClosing SessionState = "closing"
	SessionStateClosed  SessionState = "closed"
)

func (s SessionState) String() string {
	return string(s)
}

// Valid reports whether the value is a known session state
func (s SessionState) Valid() bool {
	switch s {
	case SessionStateOpening, SessionStateActive, SessionStateClosing, SessionStateClosed:
		return true
	}
	return false
}

// IsOpen reports whether the session can still accept orders or be closed
func (s SessionState) IsOpen() bool {
	return s == SessionStateActive || s == SessionStateClosing
}
