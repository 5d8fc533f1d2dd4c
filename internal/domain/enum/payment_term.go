package enum

// PaymentTerm represents the agreed payment deadline on a sales order
type PaymentTerm string

const (
	PaymentTermImmediate PaymentTerm = "immediate"
	PaymentTermNet15     PaymentTerm = "net15"
	PaymentTermNet30     PaymentTerm = "net30"
	PaymentTermNet60     PaymentTerm = "net60"
	PaymentTermNet90     PaymentTerm = "net90"
)

func (t PaymentTerm) String() string {
	return string(t)
}

// Valid reports whether the value is a known payment term
func (t PaymentTerm) Valid() bool {
	switch t {
	case PaymentTermImmediate, PaymentTermNet15, PaymentTermNet30, PaymentTermNet60, PaymentTermNet90:
		return true
	}
	return false
}

// Days returns the payment deadline in days after the order date
func (t PaymentTerm) Days() int {
	switch t {
	case PaymentTermNet15:
		return 15
	case PaymentTermNet30:
		return 30
	case PaymentTermNet60:
		return 60
	case PaymentTermNet90:
		return 90
	default:
		return 0
	}
}
