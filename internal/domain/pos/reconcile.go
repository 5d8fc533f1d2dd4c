package pos

import (
	"fmt"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// Tender is one payment instrument offered toward a checkout total, in cents.
type Tender struct {
	Method enum.PaymentMethod
	Amount int64
}

// ReconcileResult reports the outcome of a successful reconciliation.
// Change is the amount owed back to the customer. Card overpayment is not
// rejected: it surfaces as change for the operator to handle out of band.
type ReconcileResult struct {
	Tendered int64
	Change   int64
}

// Reconcile checks whether the given tenders cover the order total and
// computes the change due. It is purely advisory and has no side effects;
// committing the order is the caller's responsibility, and only after
// reconciliation succeeds.
func Reconcile(total int64, tenders []Tender) (ReconcileResult, error) {
	if total < 0 {
		return ReconcileResult{}, fmt.Errorf("negative order total %d", total)
	}
	if len(tenders) == 0 && total > 0 {
		return ReconcileResult{}, ErrNoTender
	}

	var tendered int64
	for _, t := range tenders {
		if t.Amount < 0 {
			return ReconcileResult{}, fmt.Errorf("negative tender amount %d", t.Amount)
		}
		if !t.Method.Valid() {
			return ReconcileResult{}, fmt.Errorf("unknown payment method %q", t.Method)
		}
		tendered += t.Amount
	}

	if tendered < total {
		return ReconcileResult{}, fmt.Errorf("%w: short by %d", ErrInsufficientPayment, total-tendered)
	}

	return ReconcileResult{
		Tendered: tendered,
		Change:   tendered - total,
	}, nil
}
