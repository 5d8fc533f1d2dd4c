package request

import "github.com/google/uuid"

// CreateInvoiceFromOrderRequest represents the invoice-from-order payload
type CreateInvoiceFromOrderRequest struct {
	OrderID    uuid.UUID `json:"order_id" binding:"required"`
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// UpdateInvoiceStatusRequest represents the invoice status change payload
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid cancelled"`
}
