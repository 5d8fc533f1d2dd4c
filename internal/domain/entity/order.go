package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// PosOrder represents a committed point-of-sale checkout
type PosOrder struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:100;unique;not null" json:"name"` // e.g. ORD/2026/08/0001
	SessionID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	CustomerID   *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	State        enum.OrderState `gorm:"size:20;not null;index" json:"state"`
	OrderDate    time.Time       `gorm:"not null" json:"order_date"`
	AmountTax    int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountTotal  int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountPaid   int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	AmountChange int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ReceiptNo    string          `gorm:"size:50" json:"receipt_no"`
	InvoiceID    *uuid.UUID      `gorm:"type:uuid" json:"invoice_id,omitempty"`
	Note         *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Session  Session        `gorm:"foreignKey:SessionID" json:"-"`
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []PosOrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Payments []PosPayment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o PosOrder) MarshalJSON() ([]byte, error) {
	type Alias PosOrder
	return json.Marshal(&struct {
		Alias
		AmountTax    float64 `json:"amount_tax"`
		AmountTotal  float64 `json:"amount_total"`
		AmountPaid   float64 `json:"amount_paid"`
		AmountChange float64 `json:"amount_change"`
	}{
		Alias:        Alias(o),
		AmountTax:    float64(o.AmountTax) / 100,
		AmountTotal:  float64(o.AmountTotal) / 100,
		AmountPaid:   float64(o.AmountPaid) / 100,
		AmountChange: float64(o.AmountChange) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *PosOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosOrder model
func (PosOrder) TableName() string {
	return "pos_orders"
}

// PosOrderLine represents a line item in a committed order
type PosOrderLine struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName     string    `gorm:"size:200;not null" json:"product_name"`
	Barcode         *string   `gorm:"size:100" json:"barcode,omitempty"`
	Quantity        float64   `gorm:"not null" json:"quantity"`
	UnitPrice       int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DiscountPercent float64   `gorm:"default:0" json:"discount_percent"`
	TaxRatePercent  float64   `gorm:"default:0" json:"tax_rate_percent"`
	Subtotal        int64     `gorm:"not null" json:"-"` // Discounted, tax excluded, cents
	Tax             int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Order   PosOrder `gorm:"foreignKey:OrderID" json:"-"`
	Product Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l PosOrderLine) MarshalJSON() ([]byte, error) {
	type Alias PosOrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
		Tax       float64 `json:"tax"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		Subtotal:  float64(l.Subtotal) / 100,
		Tax:       float64(l.Tax) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order line
func (l *PosOrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosOrderLine model
func (PosOrderLine) TableName() string {
	return "pos_order_lines"
}

// PosPayment represents one tender recorded against an order
type PosPayment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Method    enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Amount    int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CardLast4 *string            `gorm:"size:4" json:"card_last4,omitempty"`
	PaidAt    time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time          `json:"created_at"`

	// Relationships
	Order PosOrder `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p PosPayment) MarshalJSON() ([]byte, error) {
	type Alias PosPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *PosPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosPayment model
func (PosPayment) TableName() string {
	return "pos_payments"
}
