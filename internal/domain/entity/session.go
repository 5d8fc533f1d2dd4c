package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/pos"
)

// Session represents one register working period. The in-memory arithmetic
// lives in pos.SessionLedger; this entity is the persisted mirror.
type Session struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name           string            `gorm:"size:100;unique;not null" json:"name"` // e.g. POS/2026/08/0001
	CashierID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName    string            `gorm:"size:100;not null" json:"cashier_name"`
	State          enum.SessionState `gorm:"size:20;not null;index" json:"state"`
	StartAt        time.Time         `gorm:"not null" json:"start_at"`
	StopAt         *time.Time        `json:"stop_at,omitempty"`
	OpeningCash    int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ClosingCash    int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CommittedTotal int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DrawerVariance int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	OrderCount     int               `gorm:"default:0" json:"order_count"`
	Notes          *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Relationships
	Orders []PosOrder `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Session) MarshalJSON() ([]byte, error) {
	type Alias Session
	return json.Marshal(&struct {
		Alias
		OpeningCash    float64 `json:"opening_cash"`
		ClosingCash    float64 `json:"closing_cash"`
		CommittedTotal float64 `json:"committed_total"`
		DrawerVariance float64 `json:"drawer_variance"`
		ExpectedCash   float64 `json:"expected_cash"`
	}{
		Alias:          Alias(s),
		OpeningCash:    float64(s.OpeningCash) / 100,
		ClosingCash:    float64(s.ClosingCash) / 100,
		CommittedTotal: float64(s.CommittedTotal) / 100,
		DrawerVariance: float64(s.DrawerVariance) / 100,
		ExpectedCash:   float64(s.OpeningCash+s.CommittedTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new session
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "pos_sessions"
}

// Ledger builds the in-memory ledger from the persisted state
func (s *Session) Ledger() *pos.SessionLedger {
	return &pos.SessionLedger{
		State:          s.State,
		OpeningCash:    s.OpeningCash,
		CommittedTotal: s.CommittedTotal,
		OrderCount:     s.OrderCount,
		ClosingCash:    s.ClosingCash,
		DrawerVariance: s.DrawerVariance,
	}
}

// ApplyLedger writes the ledger state back onto the entity
func (s *Session) ApplyLedger(l *pos.SessionLedger) {
	s.State = l.State
	s.OpeningCash = l.OpeningCash
	s.CommittedTotal = l.CommittedTotal
	s.OrderCount = l.OrderCount
	s.ClosingCash = l.ClosingCash
	s.DrawerVariance = l.DrawerVariance
}
