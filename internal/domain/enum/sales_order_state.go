package enum

// SalesOrderState represents the lifecycle of a back-office sales order,
// from quotation through delivery
type SalesOrderState string

const (
	SalesOrderStateDraft     SalesOrderState = "draft"
	SalesOrderStateQuotation SalesOrderState = "quotation"
	SalesOrderStateConfirmed SalesOrderState = "confirmed"
	SalesOrderStateDelivered SalesOrderState = "delivered"
	SalesOrderStateCancelled SalesOrderState = "cancelled"
)

func (s SalesOrderState) String() string {
	return string(s)
}

// Valid reports whether the value is a known sales order state
func (s SalesOrderState) Valid() bool {
	switch s {
	case SalesOrderStateDraft, SalesOrderStateQuotation, SalesOrderStateConfirmed,
		SalesOrderStateDelivered, SalesOrderStateCancelled:
		return true
	}
	return false
}

// Editable reports whether an order in this state may still be modified.
// Confirmed orders are frozen; changes require a cancellation.
func (s SalesOrderState) Editable() bool {
	return s == SalesOrderStateDraft || s == SalesOrderStateQuotation
}

// Cancellable reports whether an order in this state may still be cancelled.
// Delivered goods cannot be un-delivered.
func (s SalesOrderState) Cancellable() bool {
	return s != SalesOrderStateDelivered && s != SalesOrderStateCancelled
}
