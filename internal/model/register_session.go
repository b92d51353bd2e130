package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterSession represents the lifecycle of a cash register session.
// Status: "open" | "closed". A sale can only be finalized against an open one.
type RegisterSession struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegisterID   int             `gorm:"not null;index"`
	OperatorID   uuid.UUID       `gorm:"type:uuid;not null"`
	OpeningFloat decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;default:'open'"`
	OpenedAt     time.Time
	ClosedAt     *time.Time
}
