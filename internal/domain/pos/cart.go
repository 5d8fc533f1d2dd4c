package pos

import (
	"math"

	"github.com/google/uuid"
)

// CartLine is a single product position in an in-progress checkout.
// Monetary amounts are in cents; quantity is fractional for weighed goods.
type CartLine struct {
	ProductRef      uuid.UUID
	UnitPrice       int64 // cents
	Quantity        float64
	DiscountPercent float64
	TaxRatePercent  float64
}

// Subtotal returns the discounted line amount in cents, tax excluded
func (l CartLine) Subtotal() int64 {
	amount := float64(l.UnitPrice) * l.Quantity * (1 - l.DiscountPercent/100)
	return int64(math.Round(amount))
}

// Tax returns the tax amount in cents computed on the discounted subtotal
func (l CartLine) Tax() int64 {
	return int64(math.Round(float64(l.Subtotal()) * l.TaxRatePercent / 100))
}

// Totals holds the derived amounts of a cart, in cents.
// Total is always Subtotal + Tax exactly.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Cart is the unpersisted line set of one checkout. Lines keep insertion
// order and are keyed by product ref: adding the same product again
// increments its quantity instead of duplicating the line.
//
// The cart is mutated only by sequential user actions on a single
// goroutine; it carries no locking.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(ref uuid.UUID) int {
	for i := range c.lines {
		if c.lines[i].ProductRef == ref {
			return i
		}
	}
	return -1
}

// AddLine adds one unit of a product. An existing line for the same product
// has its quantity incremented; a new line starts at quantity 1 with no
// discount.
func (c *Cart) AddLine(ref uuid.UUID, unitPrice int64, taxRatePercent float64) {
	if i := c.find(ref); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, CartLine{
		ProductRef:     ref,
		UnitPrice:      unitPrice,
		Quantity:       1,
		TaxRatePercent: taxRatePercent,
	})
}

// SetQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown product refs are a no-op.
func (c *Cart) SetQuantity(ref uuid.UUID, quantity float64) {
	i := c.find(ref)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = quantity
}

// SetDiscount sets the discount percentage of an existing line. Out-of-range
// input is clamped to [0, 100], not rejected. Unknown product refs are a no-op.
func (c *Cart) SetDiscount(ref uuid.UUID, percent float64) {
	i := c.find(ref)
	if i < 0 {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.lines[i].DiscountPercent = percent
}

// Totals derives subtotal, tax and total from the current line set.
// Nothing is cached: every call recomputes from scratch so the totals can
// never diverge from the lines.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, l := range c.lines {
		t.Subtotal += l.Subtotal()
		t.Tax += l.Tax()
	}
	t.Total = t.Subtotal + t.Tax
	return t
}

// Lines returns a copy of the current line set in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.lines = nil
}
