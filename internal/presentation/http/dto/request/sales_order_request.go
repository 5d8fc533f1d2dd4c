package request

import "github.com/google/uuid"

// SalesOrderLineRequest represents one line of a sales order payload.
// ProductID is optional; free-text lines only need a name and price.
type SalesOrderLineRequest struct {
	ProductID       *uuid.UUID `json:"product_id"`
	ProductName     string     `json:"product_name" binding:"max=200"`
	ProductCode     *string    `json:"product_code" binding:"omitempty,max=50"`
	Description     *string    `json:"description"`
	Quantity        float64    `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64    `json:"unit_price" binding:"gte=0"`
	DiscountPercent float64    `json:"discount_percent" binding:"gte=0,lte=100"`
	TaxRatePercent  *float64   `json:"tax_rate_percent" binding:"omitempty,gte=0,lte=100"`
}

// CreateSalesOrderRequest represents the sales order creation payload.
// Dates use the YYYY-MM-DD format.
type CreateSalesOrderRequest struct {
	CustomerID       uuid.UUID               `json:"customer_id" binding:"required"`
	OrderDate        *string                 `json:"order_date"`
	ValidityDate     *string                 `json:"validity_date"`
	ExpectedDelivery *string                 `json:"expected_delivery"`
	DeliveryAddress  *string                 `json:"delivery_address"`
	InvoiceAddress   *string                 `json:"invoice_address"`
	PaymentTerm      *string                 `json:"payment_term" binding:"omitempty,oneof=immediate net15 net30 net60 net90"`
	DiscountAmount   float64                 `json:"discount_amount" binding:"gte=0"`
	Reference        *string                 `json:"reference" binding:"omitempty,max=100"`
	Note             *string                 `json:"note"`
	InternalNote     *string                 `json:"internal_note"`
	Lines            []SalesOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateSalesOrderRequest represents the sales order update payload.
// Omitted fields are left unchanged; lines, when present, replace the
// existing set.
type UpdateSalesOrderRequest struct {
	CustomerID       *uuid.UUID              `json:"customer_id"`
	OrderDate        *string                 `json:"order_date"`
	ValidityDate     *string                 `json:"validity_date"`
	ExpectedDelivery *string                 `json:"expected_delivery"`
	DeliveryAddress  *string                 `json:"delivery_address"`
	InvoiceAddress   *string                 `json:"invoice_address"`
	PaymentTerm      *string                 `json:"payment_term" binding:"omitempty,oneof=immediate net15 net30 net60 net90"`
	DiscountAmount   *float64                `json:"discount_amount" binding:"omitempty,gte=0"`
	Reference        *string                 `json:"reference" binding:"omitempty,max=100"`
	Note             *string                 `json:"note"`
	InternalNote     *string                 `json:"internal_note"`
	Lines            []SalesOrderLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}
