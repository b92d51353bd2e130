package pos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWith(lines ...LineItem) *Cart {
	c := NewCart()
	for _, l := range lines {
		c.Upsert(l)
	}
	return c
}

func TestComputeTotals_SubtotalIsSumOfLines(t *testing.T) {
	c := cartWith(
		LineItem{ProductID: newID(), Quantity: dec("2"), UnitPrice: dec("10.00"), CostPrice: dec("6.00")},
		LineItem{ProductID: newID(), Quantity: dec("0.150"), UnitPrice: dec("40.00"), CostPrice: dec("25.00")},
	)
	tt := ComputeTotals(c, DiscountState{}, adminPerms, decimal.Zero)
	assert.True(t, tt.Subtotal.Equal(dec("26.00")), "got %s", tt.Subtotal)
	assert.True(t, tt.Total.Equal(tt.Subtotal))
	assert.True(t, tt.CostTotal.Equal(dec("15.75")))
	assert.True(t, tt.Profit.Equal(dec("10.25")))
}

func TestComputeTotals_ManualPercent(t *testing.T) {
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("200.00")})
	ds := DiscountState{ManualValue: dec("10"), ManualType: DiscountPercent}

	tt := ComputeTotals(c, ds, adminPerms, decimal.Zero)
	assert.True(t, tt.ManualDiscount.Equal(dec("20.00")), "got %s", tt.ManualDiscount)
	assert.True(t, tt.Total.Equal(dec("180.00")))
	assert.False(t, tt.ManualDiscountClamped)
}

func TestComputeTotals_ManualAmountClampedByPercentCap(t *testing.T) {
	// Cap of 10% on a 100 subtotal bounds any manual entry at 10, percent or
	// absolute alike.
	perms := OperatorPermissions{CanGiveDiscount: true, MaxDiscountPercent: dec("10")}
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("100.00")})

	ds := DiscountState{ManualValue: dec("25.00"), ManualType: DiscountAmount}
	tt := ComputeTotals(c, ds, perms, decimal.Zero)
	assert.True(t, tt.ManualDiscount.Equal(dec("10.00")), "got %s", tt.ManualDiscount)
	assert.True(t, tt.ManualDiscountClamped)
	assert.True(t, tt.Total.Equal(dec("90.00")))

	ds = DiscountState{ManualValue: dec("50"), ManualType: DiscountPercent}
	tt = ComputeTotals(c, ds, perms, decimal.Zero)
	assert.True(t, tt.ManualDiscount.Equal(dec("10.00")))
	assert.True(t, tt.ManualDiscountClamped)
}

func TestComputeTotals_NoCapabilityContributesNothing(t *testing.T) {
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("100.00")})
	ds := DiscountState{ManualValue: dec("5"), ManualType: DiscountPercent}

	tt := ComputeTotals(c, ds, cashierPerms, decimal.Zero)
	assert.True(t, tt.ManualDiscount.IsZero())
	assert.True(t, tt.Total.Equal(dec("100.00")))
}

func TestComputeTotals_VIPPlusLoyaltyStack(t *testing.T) {
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("100.00")})
	ds := DiscountState{VIPPercent: dec("5"), LoyaltyPoints: 20}

	// 20 points at 0.10 each = 2.00; VIP 5% of 100 = 5.00.
	tt := ComputeTotals(c, ds, cashierPerms, dec("0.10"))
	assert.True(t, tt.VIPDiscount.Equal(dec("5.00")))
	assert.True(t, tt.LoyaltyDiscount.Equal(dec("2.00")))
	assert.True(t, tt.TotalDiscount.Equal(dec("7.00")))
	assert.True(t, tt.Total.Equal(dec("93.00")))
}

func TestComputeTotals_TotalNeverNegative(t *testing.T) {
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("10.00")})
	ds := DiscountState{VIPPercent: dec("50"), LoyaltyPoints: 200}

	tt := ComputeTotals(c, ds, cashierPerms, dec("0.10"))
	assert.True(t, tt.Total.IsZero(), "got %s", tt.Total)
	assert.True(t, tt.TotalDiscount.Equal(tt.Subtotal))
}

func TestComputeTotals_ProfitMayGoNegative(t *testing.T) {
	c := cartWith(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("10.00"), CostPrice: dec("9.00")})
	ds := DiscountState{ManualValue: dec("20"), ManualType: DiscountPercent}

	tt := ComputeTotals(c, ds, adminPerms, decimal.Zero)
	assert.True(t, tt.Total.Equal(dec("8.00")))
	assert.True(t, tt.Profit.Equal(dec("-1.00")), "got %s", tt.Profit)
}

func TestComputeTotals_EmptyCartIsAllZero(t *testing.T) {
	tt := ComputeTotals(NewCart(), DiscountState{}, adminPerms, decimal.Zero)
	assert.True(t, tt.Subtotal.IsZero())
	assert.True(t, tt.Total.IsZero())
	assert.True(t, tt.Profit.IsZero())
}

func TestValidateManualDiscount(t *testing.T) {
	require.NoError(t, ValidateManualDiscount(dec("10"), DiscountPercent, adminPerms))
	require.NoError(t, ValidateManualDiscount(dec("0"), DiscountAmount, cashierPerms))

	assert.ErrorIs(t, ValidateManualDiscount(dec("-1"), DiscountPercent, adminPerms), ErrDiscountInvalid)
	assert.ErrorIs(t, ValidateManualDiscount(dec("10"), "rebate", adminPerms), ErrDiscountInvalid)
	assert.ErrorIs(t, ValidateManualDiscount(dec("101"), DiscountPercent, adminPerms), ErrDiscountInvalid)
	assert.ErrorIs(t, ValidateManualDiscount(dec("1"), DiscountPercent, cashierPerms), ErrDiscountNotAllowed)
}

func TestSession_RedeemPointsBoundedByBalance(t *testing.T) {
	sess := newTestSession(cashierPerms)

	assert.ErrorIs(t, sess.RedeemPoints(10), ErrNoCustomer)

	sess.AttachCustomer(CustomerInfo{ID: newID(), Name: "Ana", LoyaltyPoints: 50})
	assert.ErrorIs(t, sess.RedeemPoints(51), ErrInsufficientPoints)
	require.NoError(t, sess.RedeemPoints(50))
	assert.Equal(t, int64(50), sess.Discounts.LoyaltyPoints)

	// Zero resets regardless of customer state.
	require.NoError(t, sess.RedeemPoints(0))
	assert.Equal(t, int64(0), sess.Discounts.LoyaltyPoints)
}

func TestSession_DetachCustomerDropsVIPAndPoints(t *testing.T) {
	sess := newTestSession(cashierPerms)
	sess.AttachCustomer(CustomerInfo{ID: newID(), Name: "Ana", VIPDiscountPercent: dec("5"), LoyaltyPoints: 100})
	require.NoError(t, sess.RedeemPoints(10))

	sess.DetachCustomer()
	assert.Nil(t, sess.Customer)
	assert.True(t, sess.Discounts.VIPPercent.IsZero())
	assert.Equal(t, int64(0), sess.Discounts.LoyaltyPoints)
}
