package request

import "github.com/google/uuid"

// CreateProductRequest represents the create product request payload
type CreateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           string     `json:"name" binding:"required,min=2,max=200"`
	Code           string     `json:"code" binding:"omitempty,max=100"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	ListPrice      float64    `json:"list_price" binding:"gte=0"`
	CostPrice      float64    `json:"cost_price" binding:"gte=0"`
	TaxRatePercent float64    `json:"tax_rate_percent" binding:"gte=0,lte=100"`
	StockQty       float64    `json:"stock_qty" binding:"gte=0"`
	ReorderPoint   float64    `json:"reorder_point" binding:"gte=0"`
	Unit           string     `json:"unit" binding:"omitempty,max=50"`
	ToWeight       bool       `json:"to_weight"`
	AvailableInPos *bool      `json:"available_in_pos"`
	Description    *string    `json:"description"`
}

// UpdateProductRequest represents the update product request payload.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           *string    `json:"name" binding:"omitempty,min=2,max=200"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	ListPrice      *float64   `json:"list_price" binding:"omitempty,gte=0"`
	CostPrice      *float64   `json:"cost_price" binding:"omitempty,gte=0"`
	TaxRatePercent *float64   `json:"tax_rate_percent" binding:"omitempty,gte=0,lte=100"`
	ReorderPoint   *float64   `json:"reorder_point" binding:"omitempty,gte=0"`
	Unit           *string    `json:"unit" binding:"omitempty,max=50"`
	ToWeight       *bool      `json:"to_weight"`
	AvailableInPos *bool      `json:"available_in_pos"`
	Active         *bool      `json:"active"`
	Description    *string    `json:"description"`
}

// AdjustStockRequest represents a manual stock adjustment payload.
// Quantity is signed: positive adds stock, negative removes it.
type AdjustStockRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Reason   string  `json:"reason" binding:"required,max=100"`
}

// CreateCategoryRequest represents the create category request payload
type CreateCategoryRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Name     string     `json:"name" binding:"required,min=2,max=100"`
	Sequence int        `json:"sequence" binding:"gte=0"`
}
