package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

// StockMove records one inventory movement: a sale decrement, a purchase
// receipt or a manual adjustment. Moves are applied to the product quantity
// when they are created; the move row is the audit trail.
type StockMove struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID          `gorm:"type:uuid;not null;index" json:"product_id"`
	Type      enum.StockMoveType `gorm:"size:20;not null" json:"type"`
	Quantity  float64            `gorm:"not null" json:"quantity"`
	Reference string             `gorm:"size:100" json:"reference"` // order name, adjustment note
	MovedAt   time.Time          `gorm:"not null;index" json:"moved_at"`
	CreatedAt time.Time          `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock move
func (m *StockMove) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMove model
func (StockMove) TableName() string {
	return "stock_moves"
}
