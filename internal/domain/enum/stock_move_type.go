package enum

// StockMoveType classifies an inventory movement
type StockMoveType string

const (
	StockMoveIn         StockMoveType = "in"
	StockMoveOut        StockMoveType = "out"
	StockMoveAdjustment StockMoveType = "adjustment"
)

func (t StockMoveType) String() string {
	return string(t)
}

// Valid reports whether the value is a known stock move type
func (t StockMoveType) Valid() bool {
	switch t {
	case StockMoveIn, StockMoveOut, StockMoveAdjustment:
		return true
	}
	return false
}
