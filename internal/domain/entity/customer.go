package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// Customer represents an individual or corporate customer
type Customer struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string            `gorm:"size:200;not null" json:"name"`
	Type        enum.CustomerType `gorm:"size:20;default:individual" json:"type"`
	Code        string            `gorm:"size:50;unique;not null" json:"code"`
	Email       *string           `gorm:"size:100;index" json:"email,omitempty"`
	Phone       *string           `gorm:"size:20" json:"phone,omitempty"`
	Address     *string           `gorm:"type:text" json:"address,omitempty"`
	City        *string           `gorm:"size:100" json:"city,omitempty"`
	TaxOffice   *string           `gorm:"size:100" json:"tax_office,omitempty"`
	TaxNumber   *string           `gorm:"size:20;index" json:"tax_number,omitempty"`
	CreditLimit int64             `gorm:"default:0" json:"-"` // Stored in cents
	Active      bool              `gorm:"default:true" json:"active"`
	Note        *string           `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Orders   []PosOrder `gorm:"foreignKey:CustomerID" json:"-"`
	Invoices []Invoice  `gorm:"foreignKey:CustomerID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		CreditLimit float64 `json:"credit_limit"`
	}{
		Alias:       Alias(c),
		CreditLimit: float64(c.CreditLimit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
