package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer carries the two pieces of state the engine reads at the register:
// the automatic VIP discount and the redeemable loyalty balance.
type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"index;not null"`
	Document *string   `gorm:"uniqueIndex"`
	Email    *string

	IsVIP              bool            `gorm:"not null;default:false"`
	VIPDiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	LoyaltyPoints      int64           `gorm:"not null;default:0"`

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
