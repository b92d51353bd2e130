package pos

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sellx/internal/model"
)

// CustomerInfo is the customer snapshot attached to a session: the VIP
// discount auto-applies on attach and is removed on detach.
type CustomerInfo struct {
	ID                 uuid.UUID
	Name               string
	VIPDiscountPercent decimal.Decimal
	LoyaltyPoints      int64
}

// Session is one in-progress sale: one cart, one discount state, one payment
// list, owned by a single operator at a single register. It is destroyed on
// finalize or cancel and never persisted mid-sale.
//
// The embedded mutex serializes access across HTTP requests for the same
// session; there is exactly one writer per session by construction, so this
// only guards against a misbehaving client double-submitting.
type Session struct {
	sync.Mutex

	ID                uuid.UUID
	OperatorID        uuid.UUID
	RegisterSessionID uuid.UUID
	Permissions       OperatorPermissions

	Cart      *Cart
	Discounts DiscountState
	Payments  *PaymentList
	Customer  *CustomerInfo

	// FutureOrder marks the deferred-fulfillment variant: partial payment is
	// allowed but a customer and a fulfillment date become mandatory.
	FutureOrder     bool
	FulfillmentDate *time.Time

	CreatedAt time.Time
}

// NewSession opens a checkout session for an operator at an open register.
func NewSession(operatorID, registerSessionID uuid.UUID, perms OperatorPermissions) *Session {
	return &Session{
		ID:                uuid.New(),
		OperatorID:        operatorID,
		RegisterSessionID: registerSessionID,
		Permissions:       perms,
		Cart:              NewCart(),
		Payments:          NewPaymentList(),
		CreatedAt:         time.Now(),
	}
}

// AddProduct runs the full add pipeline: open-price redirect, stock guard on
// the resulting per-product quantity, then merge-or-append into the cart.
// The cart is mutated only on an allow (or a confirmed override, which tags
// the line SoldWithoutStock).
func (s *Session) AddProduct(p *model.Product, qty decimal.Decimal, explicitPrice *decimal.Decimal, confirmed bool, cfg GuardConfig) (LineItem, error) {
	if qty.LessThanOrEqual(decimal.Zero) {
		return LineItem{}, ErrQuantityInvalid
	}

	price := p.SalePrice
	if explicitPrice != nil {
		if !p.AllowOpenPrice && !s.Permissions.CanChangePrice {
			return LineItem{}, ErrPriceChangeDenied
		}
		if explicitPrice.IsNegative() {
			return LineItem{}, ErrDiscountInvalid
		}
		price = *explicitPrice
	} else if p.AllowOpenPrice {
		// Redirect: the caller asks the operator for a price and re-invokes.
		return LineItem{}, ErrPriceRequired
	}

	resulting := s.Cart.QuantityOf(p.ID).Add(qty)
	soldWithoutStock := false
	switch CheckStock(p, resulting, cfg, s.FutureOrder, s.Permissions) {
	case StockBlock:
		return LineItem{}, &StockShortageError{
			ProductName: p.Name,
			Available:   p.StockQuantity,
			Requested:   resulting,
		}
	case StockConfirm:
		if !confirmed {
			return LineItem{}, &ConfirmRequiredError{Shortage: &StockShortageError{
				ProductName: p.Name,
				Available:   p.StockQuantity,
				Requested:   resulting,
			}}
		}
		soldWithoutStock = true
	}

	return s.Cart.Upsert(LineItem{
		ProductID:        p.ID,
		ProductName:      p.Name,
		Quantity:         qty,
		UnitPrice:        price,
		CostPrice:        p.CostPrice,
		IsService:        p.IsService,
		SoldWithoutStock: soldWithoutStock,
	}), nil
}

// UpdateLineQuantity changes a line's quantity. An increase runs through the
// stock guard on the resulting per-product quantity, same as a scan, so an
// edit cannot push a line past a shortage the scan path would have raised.
// Decreases are never guarded.
func (s *Session) UpdateLineQuantity(p *model.Product, lineID uuid.UUID, qty decimal.Decimal, confirmed bool, cfg GuardConfig) (LineItem, error) {
	line := s.Cart.find(lineID)
	if line == nil {
		return LineItem{}, ErrLineNotFound
	}
	if qty.LessThan(MinLineQuantity) {
		qty = MinLineQuantity
	}
	if qty.GreaterThan(line.Quantity) {
		resulting := s.Cart.QuantityOf(line.ProductID).Sub(line.Quantity).Add(qty)
		switch CheckStock(p, resulting, cfg, s.FutureOrder, s.Permissions) {
		case StockBlock:
			return LineItem{}, &StockShortageError{
				ProductName: p.Name,
				Available:   p.StockQuantity,
				Requested:   resulting,
			}
		case StockConfirm:
			if !confirmed {
				return LineItem{}, &ConfirmRequiredError{Shortage: &StockShortageError{
					ProductName: p.Name,
					Available:   p.StockQuantity,
					Requested:   resulting,
				}}
			}
			line.SoldWithoutStock = true
		}
	}
	line.Quantity = qty
	return *line, nil
}

// AttachCustomer applies the customer's VIP discount and makes their loyalty
// balance redeemable.
func (s *Session) AttachCustomer(c CustomerInfo) {
	s.Customer = &c
	s.Discounts.VIPPercent = c.VIPDiscountPercent
}

// DetachCustomer removes the VIP discount and any redeemed points.
func (s *Session) DetachCustomer() {
	s.Customer = nil
	s.Discounts.VIPPercent = decimal.Zero
	s.Discounts.LoyaltyPoints = 0
}

// SetManualDiscount validates and stores the manual discount entry.
// Returns whether the stored value will be clamped at the current subtotal.
func (s *Session) SetManualDiscount(value decimal.Decimal, typ string, pointValue decimal.Decimal) (bool, error) {
	if err := ValidateManualDiscount(value, typ, s.Permissions); err != nil {
		return false, err
	}
	s.Discounts.ManualValue = value
	s.Discounts.ManualType = typ
	return s.Totals(pointValue).ManualDiscountClamped, nil
}

// RedeemPoints sets the loyalty points to redeem, bounded by the attached
// customer's balance.
func (s *Session) RedeemPoints(points int64) error {
	if points < 0 {
		return ErrDiscountInvalid
	}
	if points == 0 {
		s.Discounts.LoyaltyPoints = 0
		return nil
	}
	if s.Customer == nil {
		return ErrNoCustomer
	}
	if points > s.Customer.LoyaltyPoints {
		return ErrInsufficientPoints
	}
	s.Discounts.LoyaltyPoints = points
	return nil
}

// Totals recomputes the money breakdown from scratch.
func (s *Session) Totals(pointValue decimal.Decimal) Totals {
	return ComputeTotals(s.Cart, s.Discounts, s.Permissions, pointValue)
}

// CheckFinalizeReady verifies the terminal preconditions. The regular path
// demands full payment; the future-order path accepts a partial advance but
// requires a customer and a fulfillment date. Both require a non-empty cart
// and an open register session.
func (s *Session) CheckFinalizeReady(total decimal.Decimal, registerOpen bool) error {
	if s.Cart.Len() == 0 {
		return ErrCartEmpty
	}
	if !registerOpen {
		return ErrNoOpenRegister
	}
	if s.FutureOrder {
		if s.Customer == nil || s.FulfillmentDate == nil {
			return ErrFutureOrderDetails
		}
		return nil
	}
	if s.Payments.TotalPaid().LessThan(total) {
		return ErrInsufficientPayment
	}
	return nil
}

// Reset clears the cart and payment state. Used by cancel and by finalize
// after the sale is durable.
func (s *Session) Reset() {
	s.Cart.Clear()
	s.Payments.clear()
	s.Discounts = DiscountState{}
	s.Customer = nil
}
