package enum

// PaymentMethod identifies the tender instrument used for a payment
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the value is a known payment method
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}
