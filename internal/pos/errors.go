// Package pos implements the point-of-sale transaction engine: barcode
// decoding, stock guarding, the cart aggregator, pricing and discounts,
// payment reconciliation and the session state that ties them together.
// It is pure computation — no HTTP, no database. Persistence is the
// service layer's job.
package pos

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrPriceRequired: open-price product added without an explicit price.
	// The caller must ask the operator for a price and re-invoke.
	ErrPriceRequired = errors.New("product requires an explicit price")

	ErrLineNotFound       = errors.New("cart line not found")
	ErrQuantityInvalid    = errors.New("quantity must be positive")
	ErrPriceChangeDenied  = errors.New("operator cannot change prices")
	ErrDiscountNotAllowed = errors.New("operator cannot give discounts")
	ErrDiscountInvalid    = errors.New("discount value is invalid")
	ErrNoCustomer         = errors.New("no customer attached to the sale")
	ErrInsufficientPoints = errors.New("customer does not have enough loyalty points")

	ErrNoPaymentMethod      = errors.New("no payment method selected")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("total paid does not cover the sale total")
	ErrNoOpenRegister      = errors.New("no open cash register session")
	ErrFutureOrderDetails  = errors.New("future order requires a customer and a fulfillment date")
)

// StockShortageError reports that an add would exceed available stock.
// It is returned both for hard blocks and, wrapped in ConfirmRequiredError,
// when a privileged operator may still override.
type StockShortageError struct {
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %s available, %s requested",
		e.ProductName, e.Available.String(), e.Requested.String())
}

// ConfirmRequiredError is returned when the operator may override a stock
// shortage but has not confirmed yet. The cart is untouched until the same
// add is re-invoked with confirmation.
type ConfirmRequiredError struct {
	Shortage *StockShortageError
}

func (e *ConfirmRequiredError) Error() string {
	return e.Shortage.Error() + ": confirmation required to sell without stock"
}

func (e *ConfirmRequiredError) Unwrap() error { return e.Shortage }
