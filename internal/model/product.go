package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog record the checkout engine sells from.
// StockQuantity is decimal(12,3) because weighed goods sell in fractional
// units (kilograms from scale barcodes).
type Product struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code    string    `gorm:"uniqueIndex;not null"`
	Barcode string    `gorm:"uniqueIndex"`
	Name    string    `gorm:"index;not null"`

	SalePrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	StockQuantity decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`

	// IsService: never consumes stock, always sellable.
	IsService bool `gorm:"not null;default:false"`
	// AllowOpenPrice: the price is typed at the register per sale.
	AllowOpenPrice bool `gorm:"not null;default:false"`
	// BlockSaleNoStock: per-product override of the global no-stock policy.
	BlockSaleNoStock  bool            `gorm:"not null;default:false"`
	CommissionPercent decimal.Decimal `gorm:"type:decimal(5,2)"`

	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
