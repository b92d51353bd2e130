package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses. There is no "open" status: a Sale row only exists once the
// finalization protocol has committed it, and it is immutable from then on.
const (
	SaleStatusCompleted = "completed"
	SaleStatusFuture    = "future"
)

// Sale is the committed, immutable record of a checkout. SaleNumber carries a
// unique index — the finalization protocol relies on the duplicate-key
// violation to detect sequence races between registers.
type Sale struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber        int64      `gorm:"uniqueIndex;not null"`
	RegisterSessionID uuid.UUID  `gorm:"type:uuid;not null;index"`
	OperatorID        uuid.UUID  `gorm:"type:uuid;not null"`
	CustomerID        *uuid.UUID `gorm:"type:uuid;index"`

	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Profit    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// LoyaltyPointsRedeemed is the point count converted into the loyalty
	// discount on this sale; debited from the customer after commit.
	LoyaltyPointsRedeemed int64 `gorm:"not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'completed'"`
	// FulfillmentDate is set only for future orders.
	FulfillmentDate *time.Time

	Items    []SaleItem    `gorm:"foreignKey:SaleID"`
	Payments []SalePayment `gorm:"foreignKey:SaleID"`

	CreatedAt time.Time
}

// SaleItem is a snapshot of one cart line at finalize time. ProductName is a
// denormalized display copy; Total is stored as computed by the cart.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName string    `gorm:"not null"`

	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// SoldWithoutStock flags lines a privileged operator pushed through a
	// stock shortage; the audit trail filters on it.
	SoldWithoutStock bool `gorm:"not null;default:false"`
}

// SalePayment records one tendered instrument. FeeAmount is derived from the
// instrument's fee percent at the moment of payment and never charged back to
// the customer.
type SalePayment struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID `gorm:"type:uuid;not null"`
	MethodName      string    `gorm:"not null"`

	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Installments int             `gorm:"not null;default:1"`
	FeePercent   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	FeeAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}
