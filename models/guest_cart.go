package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestCart is the persisted snapshot of a guest session's cart
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey"`
	GuestID   string          `gorm:"uniqueIndex"`                                   // Enforces ONE cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"` // Cascade delete items if cart is deleted
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GuestCartItem is one line of a guest cart snapshot
type GuestCartItem struct {
	ID          uint   `gorm:"primaryKey"`
	CartID      uint   `gorm:"index"` // Faster queries
	Position    int    // Keeps the line order of the live cart
	ProductID   string `gorm:"not null"`
	Name        string
	Description string
	Image       string
	Category    string
	UnitPrice   decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Quantity    int
	AddedAt     time.Time
}
