package pos

import (
	"github.com/shopspring/decimal"

	"sellx/internal/model"
)

// StockVerdict is the stock guard's decision for a candidate add.
type StockVerdict int

const (
	// StockAllow: add unconditionally.
	StockAllow StockVerdict = iota
	// StockBlock: reject, no cart mutation.
	StockBlock
	// StockConfirm: shortage, but the operator may override after an
	// explicit confirmation.
	StockConfirm
)

// GuardConfig carries the deployment-level stock policy snapshot.
type GuardConfig struct {
	// BlockSaleNoStock blocks out-of-stock sales globally; the per-product
	// flag enables blocking even when the global one is off.
	BlockSaleNoStock bool
}

// CheckStock decides whether an add that would bring the cart's per-product
// quantity to resulting units may proceed. Service products and future
// orders (backorder fulfillment) always pass; otherwise a shortage under an
// active blocking flag either blocks or, for operators with the override
// capability, asks for confirmation.
func CheckStock(p *model.Product, resulting decimal.Decimal, cfg GuardConfig, futureOrder bool, perms OperatorPermissions) StockVerdict {
	if p.IsService || futureOrder {
		return StockAllow
	}
	blocking := cfg.BlockSaleNoStock || p.BlockSaleNoStock
	if !blocking || resulting.LessThanOrEqual(p.StockQuantity) {
		return StockAllow
	}
	if perms.CanOverrideStock {
		return StockConfirm
	}
	return StockBlock
}
