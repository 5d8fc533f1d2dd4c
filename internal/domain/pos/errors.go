package pos

import "errors"

// Business-rule and contract errors of the register core. Services wrap these
// into apperror values at the application boundary; the core stays HTTP-free.
var (
	// ErrInsufficientPayment signals that the tendered amount does not cover
	// the order total. Recoverable: the caller collects more tender and retries.
	ErrInsufficientPayment = errors.New("tendered amount is less than order total")

	// ErrNoTender signals a checkout with a positive total and no payments.
	ErrNoTender = errors.New("no tender provided")

	// ErrSessionNotActive signals an order commit against a session that is not
	// accepting orders. This indicates a caller bug, not a user-facing condition.
	ErrSessionNotActive = errors.New("session is not active")

	// ErrSessionAlreadyActive signals an attempt to open a register that
	// already has an open session.
	ErrSessionAlreadyActive = errors.New("an active session already exists")

	// ErrInvalidState signals a session lifecycle transition that the state
	// machine does not permit.
	ErrInvalidState = errors.New("invalid session state transition")
)
