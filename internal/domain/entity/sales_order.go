package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// SalesOrder represents a back-office sales order: a quotation or delivery
// order negotiated with a customer, distinct from the immediate cash sales
// the register produces. Lines carry free-text product descriptions so
// quotations can include positions that are not in the catalog yet.
type SalesOrder struct {
	ID               uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name             string               `gorm:"size:100;unique;not null" json:"name"` // e.g. SO/2026/08/0001
	State            enum.SalesOrderState `gorm:"size:20;not null;index" json:"state"`
	CustomerID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderDate        time.Time            `gorm:"not null" json:"order_date"`
	ValidityDate     *time.Time           `gorm:"type:date" json:"validity_date,omitempty"`
	ExpectedDelivery *time.Time           `gorm:"type:date" json:"expected_delivery,omitempty"`
	ConfirmationDate *time.Time           `json:"confirmation_date,omitempty"`
	DeliveryAddress  *string              `gorm:"type:text" json:"delivery_address,omitempty"`
	InvoiceAddress   *string              `gorm:"type:text" json:"invoice_address,omitempty"`
	PaymentTerm      enum.PaymentTerm     `gorm:"size:20;not null;default:immediate" json:"payment_term"`
	AmountUntaxed    int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountTax        int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountDiscount   int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountTotal      int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Reference        *string              `gorm:"size:100" json:"reference,omitempty"` // customer's own reference
	Note             *string              `gorm:"type:text" json:"note,omitempty"`
	InternalNote     *string              `gorm:"type:text" json:"internal_note,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []SalesOrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o SalesOrder) MarshalJSON() ([]byte, error) {
	type Alias SalesOrder
	return json.Marshal(&struct {
		Alias
		AmountUntaxed  float64 `json:"amount_untaxed"`
		AmountTax      float64 `json:"amount_tax"`
		AmountDiscount float64 `json:"amount_discount"`
		AmountTotal    float64 `json:"amount_total"`
	}{
		Alias:          Alias(o),
		AmountUntaxed:  float64(o.AmountUntaxed) / 100,
		AmountTax:      float64(o.AmountTax) / 100,
		AmountDiscount: float64(o.AmountDiscount) / 100,
		AmountTotal:    float64(o.AmountTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order
func (o *SalesOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// RecalculateTotals derives the order amounts from its lines. Total is
// untaxed + tax − order-level discount, floored at zero.
func (o *SalesOrder) RecalculateTotals() {
	o.AmountUntaxed = 0
	o.AmountTax = 0
	for _, line := range o.Lines {
		o.AmountUntaxed += line.Subtotal
		o.AmountTax += line.Tax
	}
	o.AmountTotal = o.AmountUntaxed + o.AmountTax - o.AmountDiscount
	if o.AmountTotal < 0 {
		o.AmountTotal = 0
	}
}

// SalesOrderLine represents one position on a sales order
type SalesOrderLine struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ProductName     string         `gorm:"size:200;not null" json:"product_name"`
	ProductCode     *string        `gorm:"size:50" json:"product_code,omitempty"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	Quantity        float64        `gorm:"not null;default:1" json:"quantity"`
	UnitPrice       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DiscountPercent float64        `gorm:"default:0" json:"discount_percent"`
	TaxRatePercent  float64        `gorm:"default:20" json:"tax_rate_percent"`
	Subtotal        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax             int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total           int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Sequence        int            `gorm:"default:10" json:"sequence"`
	CreatedAt       time.Time      `json:"created_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order SalesOrder `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l SalesOrderLine) MarshalJSON() ([]byte, error) {
	type Alias SalesOrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
		Tax       float64 `json:"tax"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		Subtotal:  float64(l.Subtotal) / 100,
		Tax:       float64(l.Tax) / 100,
		Total:     float64(l.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sales order line
func (l *SalesOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SalesOrderLine model
func (SalesOrderLine) TableName() string {
	return "sales_order_lines"
}
