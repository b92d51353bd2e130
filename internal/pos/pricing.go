package pos

import (
	"github.com/shopspring/decimal"
)

// Discount types for the manual discount entry.
const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

// DiscountState is the sale-level discount input. VIPPercent is auto-derived
// from the attached customer; ManualValue/ManualType come from the operator;
// LoyaltyPoints is the redeemed point count.
type DiscountState struct {
	ManualValue   decimal.Decimal
	ManualType    string
	VIPPercent    decimal.Decimal
	LoyaltyPoints int64
}

// Totals is the full money breakdown of a sale. Every field is recomputed
// from scratch on each call to ComputeTotals — there is no cached discount
// state to desynchronize.
type Totals struct {
	Subtotal        decimal.Decimal
	VIPDiscount     decimal.Decimal
	ManualDiscount  decimal.Decimal
	LoyaltyDiscount decimal.Decimal
	TotalDiscount   decimal.Decimal
	Total           decimal.Decimal
	CostTotal       decimal.Decimal
	Profit          decimal.Decimal

	// ManualDiscountClamped reports that the requested manual discount
	// exceeded the operator's cap and was reduced to the maximum allowed.
	ManualDiscountClamped bool
}

// ComputeTotals derives the complete money breakdown from the cart, the
// discount state and the operator's capabilities. pointValue is the loyalty
// program's fixed currency value per redeemed point.
//
// The manual discount is bounded by the operator's cap expressed as a
// percent-equivalent of the current subtotal: an over-cap request is clamped
// down and reported, not silently dropped. A nonzero manual discount from an
// operator without the discount capability contributes nothing.
// The grand total is clamped so 0 ≤ total ≤ subtotal always holds.
func ComputeTotals(cart *Cart, ds DiscountState, perms OperatorPermissions, pointValue decimal.Decimal) Totals {
	t := Totals{
		Subtotal:        decimal.Zero,
		VIPDiscount:     decimal.Zero,
		ManualDiscount:  decimal.Zero,
		LoyaltyDiscount: decimal.Zero,
		CostTotal:       decimal.Zero,
	}

	for _, l := range cart.Items() {
		t.Subtotal = t.Subtotal.Add(l.Total())
		t.CostTotal = t.CostTotal.Add(l.Quantity.Mul(l.CostPrice))
	}

	if ds.VIPPercent.IsPositive() {
		t.VIPDiscount = t.Subtotal.Mul(ds.VIPPercent).Div(hundred)
	}

	t.ManualDiscount, t.ManualDiscountClamped = manualDiscountAmount(t.Subtotal, ds, perms)

	if ds.LoyaltyPoints > 0 {
		t.LoyaltyDiscount = decimal.NewFromInt(ds.LoyaltyPoints).Mul(pointValue)
	}

	t.TotalDiscount = t.VIPDiscount.Add(t.ManualDiscount).Add(t.LoyaltyDiscount)
	t.Total = t.Subtotal.Sub(t.TotalDiscount)
	if t.Total.IsNegative() {
		t.Total = decimal.Zero
		t.TotalDiscount = t.Subtotal
	}

	// Profit may be negative; reported, not prevented.
	t.Profit = t.Total.Sub(t.CostTotal)
	return t
}

func manualDiscountAmount(subtotal decimal.Decimal, ds DiscountState, perms OperatorPermissions) (decimal.Decimal, bool) {
	if ds.ManualValue.LessThanOrEqual(decimal.Zero) || !perms.CanGiveDiscount {
		return decimal.Zero, false
	}

	amount := ds.ManualValue
	if ds.ManualType == DiscountPercent {
		amount = subtotal.Mul(ds.ManualValue).Div(hundred)
	}

	// Cap check runs on the percent-equivalent against the current subtotal,
	// so absolute-amount requests are bounded too.
	maxAmount := subtotal.Mul(perms.MaxDiscountPercent).Div(hundred)
	if amount.GreaterThan(maxAmount) {
		return maxAmount, true
	}
	return amount, false
}

// ValidateManualDiscount checks a discount entry before it is accepted into
// the session. Operators without the capability may not enter any nonzero
// discount; over-cap values are allowed through because ComputeTotals clamps
// and reports them.
func ValidateManualDiscount(value decimal.Decimal, typ string, perms OperatorPermissions) error {
	if value.IsNegative() {
		return ErrDiscountInvalid
	}
	if typ != DiscountPercent && typ != DiscountAmount {
		return ErrDiscountInvalid
	}
	if value.IsPositive() && !perms.CanGiveDiscount {
		return ErrDiscountNotAllowed
	}
	if typ == DiscountPercent && value.GreaterThan(hundred) {
		return ErrDiscountInvalid
	}
	return nil
}
