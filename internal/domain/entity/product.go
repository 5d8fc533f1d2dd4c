package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable product in the catalog
type Product struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID     *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string         `gorm:"size:200;not null" json:"name"`
	Code           string         `gorm:"size:100;unique;not null" json:"code"`
	Barcode        *string        `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	ListPrice      int64          `gorm:"default:0" json:"-"` // Stored in cents
	CostPrice      int64          `gorm:"default:0" json:"-"` // Stored in cents
	TaxRatePercent float64        `gorm:"default:0" json:"tax_rate_percent"`
	StockQty       float64        `gorm:"default:0" json:"stock_qty"`
	ReorderPoint   float64        `gorm:"default:0" json:"reorder_point"`
	Unit           string         `gorm:"size:50;default:pcs" json:"unit"`
	ToWeight       bool           `gorm:"default:false" json:"to_weight"`
	AvailableInPos bool           `gorm:"default:true" json:"available_in_pos"`
	Active         bool           `gorm:"default:true" json:"active"`
	Description    *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		ListPrice float64 `json:"list_price"`
		CostPrice float64 `json:"cost_price"`
	}{
		Alias:     Alias(p),
		ListPrice: float64(p.ListPrice) / 100,
		CostPrice: float64(p.CostPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetListPriceDecimal returns the list price as a decimal (for display)
func (p *Product) GetListPriceDecimal() float64 {
	return float64(p.ListPrice) / 100
}

// SetListPriceFromDecimal sets the list price from a decimal value
func (p *Product) SetListPriceFromDecimal(price float64) {
	p.ListPrice = int64(price * 100)
}

// IsBelowReorderPoint reports whether available stock has fallen to the
// reorder threshold. A zero threshold disables the check.
func (p *Product) IsBelowReorderPoint() bool {
	return p.ReorderPoint > 0 && p.StockQty <= p.ReorderPoint
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Slug      string         `gorm:"size:100;unique;not null" json:"slug"`
	Sequence  int            `gorm:"default:10" json:"sequence"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
