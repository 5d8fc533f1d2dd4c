package enum

// OrderState represents the status of a POS order
type OrderState string

const (
	OrderStateDraft     OrderState = "draft"
	OrderStatePaid      OrderState = "paid"
	OrderStateDone      OrderState = "done"
	OrderStateInvoiced  OrderState = "invoiced"
	OrderStateCancelled OrderState = "cancelled"
)

func (s OrderState) String() string {
	return string(s)
}

// Valid reports whether the value is a known order state
func (s OrderState) Valid() bool {
	switch s {
	case OrderStateDraft, OrderStatePaid, OrderStateDone, OrderStateInvoiced, OrderStateCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order in this state may still be cancelled
func (s OrderState) Cancellable() bool {
	return s == OrderStateDraft || s == OrderStatePaid
}
