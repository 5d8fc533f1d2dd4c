package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// Invoice represents a sales invoice, either generated from a committed POS
// order or created standalone (possibly drafted from an OCR extraction).
type Invoice struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo   string             `gorm:"size:50;unique;not null" json:"invoice_no"`
	CustomerID  *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderID     *uuid.UUID         `gorm:"type:uuid;index" json:"order_id,omitempty"`
	InvoiceDate time.Time          `gorm:"type:date;not null;index" json:"invoice_date"`
	DueDate     *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Subtotal    int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxAmount   int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaidAmount  int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status      enum.InvoiceStatus `gorm:"size:20;not null;index" json:"status"`
	Note        *string            `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Subtotal    float64 `json:"subtotal"`
		TaxAmount   float64 `json:"tax_amount"`
		TotalAmount float64 `json:"total_amount"`
		PaidAmount  float64 `json:"paid_amount"`
	}{
		Alias:       Alias(i),
		Subtotal:    float64(i.Subtotal) / 100,
		TaxAmount:   float64(i.TaxAmount) / 100,
		TotalAmount: float64(i.TotalAmount) / 100,
		PaidAmount:  float64(i.PaidAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine represents a line item on an invoice
type InvoiceLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description    string    `gorm:"size:200;not null" json:"description"`
	Quantity       float64   `gorm:"not null" json:"quantity"`
	UnitPrice      int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TaxRatePercent float64   `gorm:"default:0" json:"tax_rate_percent"`
	Total          int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l InvoiceLine) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		Total:     float64(l.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
