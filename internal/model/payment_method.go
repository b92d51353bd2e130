package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod configures a tender instrument. FeePercent is informational:
// it is recorded on each payment but never added to what the customer owes.
type PaymentMethod struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"uniqueIndex;not null"`
	FeePercent      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	MaxInstallments int             `gorm:"not null;default:1"`
	Active          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
