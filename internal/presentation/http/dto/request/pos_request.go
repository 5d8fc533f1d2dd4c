package request

import "github.com/google/uuid"

// OpenSessionRequest represents the open session request payload
type OpenSessionRequest struct {
	OpeningCash float64 `json:"opening_cash" binding:"gte=0"`
}

// CloseSessionRequest represents the close session request payload.
// ClosingCash is the drawer amount the cashier counted.
type CloseSessionRequest struct {
	ClosingCash float64 `json:"closing_cash" binding:"gte=0"`
	Notes       *string `json:"notes"`
}

// CheckoutLineRequest represents one cart line in a checkout payload
type CheckoutLineRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	Quantity        float64   `json:"quantity" binding:"required,gt=0"`
	DiscountPercent float64   `json:"discount_percent"`
}

// TenderRequest represents one payment in a checkout payload
type TenderRequest struct {
	Method    string  `json:"method" binding:"required,oneof=cash card"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	CardLast4 *string `json:"card_last4" binding:"omitempty,len=4"`
}

// CommitOrderRequest represents the commit order request payload
type CommitOrderRequest struct {
	CustomerID *uuid.UUID            `json:"customer_id"`
	Lines      []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	Tenders    []TenderRequest       `json:"tenders" binding:"required,min=1,dive"`
	Note       *string               `json:"note"`
}

// QuoteTotalsRequest represents the totals preview request payload
type QuoteTotalsRequest struct {
	Lines []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
}
