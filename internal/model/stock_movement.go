package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement is one append-only ledger row per stock change.
// Movements are NEVER modified or deleted.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	// QuantityDelta is negative for a sale, positive for a restock.
	QuantityDelta decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PreviousStock decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	NewStock      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason        string
	ReferenceType string     `gorm:"type:varchar(20);not null"` // "sale"
	ReferenceID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
