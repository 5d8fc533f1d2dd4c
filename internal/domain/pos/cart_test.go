package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddLine_NewAndRepeat verifies a first AddLine inserts a line at quantity 1
// and a repeated AddLine increments quantity instead of duplicating the line.
func TestAddLine_NewAndRepeat(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()

	c.AddLine(ref, 2500, 20)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1.0, c.Lines()[0].Quantity)

	c.AddLine(ref, 2500, 20)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2.0, c.Lines()[0].Quantity)
}

// TestAddLine_PreservesOrder verifies lines keep insertion order across mutations.
func TestAddLine_PreservesOrder(t *testing.T) {
	t.Parallel()

	a, b, d := uuid.New(), uuid.New(), uuid.New()
	c := NewCart()
	c.AddLine(a, 100, 0)
	c.AddLine(b, 200, 0)
	c.AddLine(d, 300, 0)
	c.AddLine(b, 200, 0)

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, a, lines[0].ProductRef)
	assert.Equal(t, b, lines[1].ProductRef)
	assert.Equal(t, d, lines[2].ProductRef)
}

// TestSetQuantity_RemovesAtZero verifies quantity <= 0 removes the line and
// subsequent totals exclude it.
func TestSetQuantity_RemovesAtZero(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()
	c.AddLine(ref, 1000, 0)
	require.Equal(t, int64(1000), c.Totals().Total)

	c.SetQuantity(ref, 0)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Totals().Total)

	c.AddLine(ref, 1000, 0)
	c.SetQuantity(ref, -3)
	assert.Equal(t, 0, c.Len())
}

// TestSetQuantity_UnknownRefIsNoop verifies setting quantity on an absent
// product leaves the cart untouched.
func TestSetQuantity_UnknownRefIsNoop(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddLine(uuid.New(), 500, 0)

	c.SetQuantity(uuid.New(), 5)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1.0, c.Lines()[0].Quantity)
}

// TestSetQuantity_Fractional verifies fractional quantities for weighed goods.
func TestSetQuantity_Fractional(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()
	c.AddLine(ref, 1000, 0) // 10.00 per kg
	c.SetQuantity(ref, 0.5)

	assert.Equal(t, int64(500), c.Totals().Subtotal)
}

// TestSetDiscount_Clamped verifies out-of-range discounts are clamped to
// [0, 100] rather than rejected.
func TestSetDiscount_Clamped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"above range", 150, 100},
		{"below range", -5, 0},
		{"in range", 25, 25},
		{"upper bound", 100, 100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref := uuid.New()
			c := NewCart()
			c.AddLine(ref, 1000, 0)
			c.SetDiscount(ref, tt.in)
			assert.Equal(t, tt.want, c.Lines()[0].DiscountPercent)
		})
	}
}

// TestSetDiscount_UnknownRefIsNoop verifies discounting an absent product
// does nothing.
func TestSetDiscount_UnknownRefIsNoop(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddLine(uuid.New(), 500, 0)
	c.SetDiscount(uuid.New(), 50)
	assert.Equal(t, 0.0, c.Lines()[0].DiscountPercent)
}

// TestTotals_SubtotalPlusTax verifies total == subtotal + tax holds exactly
// for arbitrary mutation sequences.
func TestTotals_SubtotalPlusTax(t *testing.T) {
	t.Parallel()

	c := NewCart()
	refs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	c.AddLine(refs[0], 999, 18)
	c.AddLine(refs[1], 12345, 8)
	c.AddLine(refs[2], 333, 20)
	c.SetQuantity(refs[0], 3)
	c.SetQuantity(refs[1], 1.25)
	c.SetDiscount(refs[1], 7.5)
	c.SetDiscount(refs[2], 150)
	c.AddLine(refs[0], 999, 18)

	got := c.Totals()
	assert.Equal(t, got.Total, got.Subtotal+got.Tax)
}

// TestTotals_WorkedExample verifies the line arithmetic on a concrete cart:
// one line at 100.00 x2 with 10% discount and 20% tax yields subtotal 180.00,
// tax 36.00, total 216.00.
func TestTotals_WorkedExample(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()
	c.AddLine(ref, 10000, 20)
	c.SetQuantity(ref, 2)
	c.SetDiscount(ref, 10)

	got := c.Totals()
	assert.Equal(t, int64(18000), got.Subtotal)
	assert.Equal(t, int64(3600), got.Tax)
	assert.Equal(t, int64(21600), got.Total)
}

// TestTotals_Recomputed verifies totals reflect the line set after every
// mutation with no stale cache.
func TestTotals_Recomputed(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()
	c.AddLine(ref, 1000, 10)
	first := c.Totals()

	c.SetQuantity(ref, 4)
	second := c.Totals()

	assert.Equal(t, int64(1000), first.Subtotal)
	assert.Equal(t, int64(4000), second.Subtotal)
	assert.Equal(t, second.Total, second.Subtotal+second.Tax)
}

// TestClear_EmptiesCart verifies Clear removes all lines and zeroes totals.
func TestClear_EmptiesCart(t *testing.T) {
	t.Parallel()

	c := NewCart()
	c.AddLine(uuid.New(), 100, 0)
	c.AddLine(uuid.New(), 200, 0)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, Totals{}, c.Totals())
}

// TestLines_ReturnsCopy verifies mutating the returned slice does not affect
// the cart.
func TestLines_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ref := uuid.New()
	c := NewCart()
	c.AddLine(ref, 1000, 0)

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1.0, c.Lines()[0].Quantity)
}
