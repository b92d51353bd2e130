package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellx/internal/model"
)

var (
	cashierPerms = OperatorPermissions{}
	adminPerms   = OperatorPermissions{CanOverrideStock: true, CanChangePrice: true, CanGiveDiscount: true, MaxDiscountPercent: dec("100")}
)

func newID() uuid.UUID { return uuid.New() }

func newTestSession(perms OperatorPermissions) *Session {
	return NewSession(uuid.New(), uuid.New(), perms)
}

func TestCheckStock_ServiceAlwaysAllowed(t *testing.T) {
	p := &model.Product{Name: "delivery", IsService: true, StockQuantity: dec("0"), BlockSaleNoStock: true}
	v := CheckStock(p, dec("3"), GuardConfig{BlockSaleNoStock: true}, false, cashierPerms)
	assert.Equal(t, StockAllow, v)
}

func TestCheckStock_FutureOrderAllowed(t *testing.T) {
	p := &model.Product{Name: "sofa", StockQuantity: dec("0"), BlockSaleNoStock: true}
	v := CheckStock(p, dec("1"), GuardConfig{}, true, cashierPerms)
	assert.Equal(t, StockAllow, v)
}

func TestCheckStock_BlockingDisabledAllows(t *testing.T) {
	p := &model.Product{Name: "beans", StockQuantity: dec("0")}
	v := CheckStock(p, dec("5"), GuardConfig{}, false, cashierPerms)
	assert.Equal(t, StockAllow, v)
}

func TestCheckStock_ShortageBlocksWithoutPrivilege(t *testing.T) {
	p := &model.Product{Name: "beans", StockQuantity: dec("2"), BlockSaleNoStock: true}
	v := CheckStock(p, dec("3"), GuardConfig{}, false, cashierPerms)
	assert.Equal(t, StockBlock, v)
}

func TestCheckStock_ShortageAsksConfirmationWithPrivilege(t *testing.T) {
	p := &model.Product{Name: "beans", StockQuantity: dec("2"), BlockSaleNoStock: true}
	v := CheckStock(p, dec("3"), GuardConfig{}, false, adminPerms)
	assert.Equal(t, StockConfirm, v)
}

func TestCheckStock_GlobalFlagCountsToo(t *testing.T) {
	p := &model.Product{Name: "beans", StockQuantity: dec("0")}
	v := CheckStock(p, dec("1"), GuardConfig{BlockSaleNoStock: true}, false, cashierPerms)
	assert.Equal(t, StockBlock, v)
}

func TestSession_AddBlockedLeavesCartUnchanged(t *testing.T) {
	sess := newTestSession(cashierPerms)
	p := &model.Product{ID: newID(), Name: "beans", SalePrice: dec("4.00"), StockQuantity: dec("0"), BlockSaleNoStock: true}

	_, err := sess.AddProduct(p, dec("1"), nil, false, GuardConfig{})
	var shortage *StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, "beans", shortage.ProductName)
	assert.True(t, shortage.Available.Equal(decimal.Zero))
	assert.Equal(t, 0, sess.Cart.Len())
}

func TestSession_OverrideRequiresConfirmation(t *testing.T) {
	sess := newTestSession(adminPerms)
	p := &model.Product{ID: newID(), Name: "beans", SalePrice: dec("4.00"), StockQuantity: dec("0"), BlockSaleNoStock: true}

	// First attempt: engine asks for confirmation, cart untouched.
	_, err := sess.AddProduct(p, dec("1"), nil, false, GuardConfig{})
	var confirm *ConfirmRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.Equal(t, 0, sess.Cart.Len())

	// Confirmed re-invocation: line added and tagged.
	line, err := sess.AddProduct(p, dec("1"), nil, true, GuardConfig{})
	require.NoError(t, err)
	assert.True(t, line.SoldWithoutStock)
	assert.Equal(t, 1, sess.Cart.Len())
}

func TestSession_MergeChecksResultingQuantity(t *testing.T) {
	sess := newTestSession(cashierPerms)
	p := &model.Product{ID: newID(), Name: "beans", SalePrice: dec("4.00"), StockQuantity: dec("3"), BlockSaleNoStock: true}

	_, err := sess.AddProduct(p, dec("2"), nil, false, GuardConfig{})
	require.NoError(t, err)

	// 2 in cart + 2 more = 4 > 3 on hand: the resulting quantity is what
	// gets checked, not the delta.
	_, err = sess.AddProduct(p, dec("2"), nil, false, GuardConfig{})
	var shortage *StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Requested.Equal(dec("4")))
	assert.Equal(t, 1, sess.Cart.Len())
}

func TestSession_QuantityIncreaseRunsGuard(t *testing.T) {
	sess := newTestSession(cashierPerms)
	p := &model.Product{ID: newID(), Name: "beans", SalePrice: dec("4.00"), StockQuantity: dec("2"), BlockSaleNoStock: true}

	line, err := sess.AddProduct(p, dec("2"), nil, false, GuardConfig{})
	require.NoError(t, err)

	// Raising the line past available stock is guarded like a scan.
	_, err = sess.UpdateLineQuantity(p, line.ID, dec("3"), false, GuardConfig{})
	var shortage *StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.True(t, shortage.Requested.Equal(dec("3")))
	assert.True(t, sess.Cart.Items()[0].Quantity.Equal(dec("2")))

	// Decreases never are.
	updated, err := sess.UpdateLineQuantity(p, line.ID, dec("1"), false, GuardConfig{})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec("1")))
}

func TestSession_QuantityIncreaseOverrideConfirm(t *testing.T) {
	sess := newTestSession(adminPerms)
	p := &model.Product{ID: newID(), Name: "beans", SalePrice: dec("4.00"), StockQuantity: dec("2"), BlockSaleNoStock: true}

	line, err := sess.AddProduct(p, dec("2"), nil, false, GuardConfig{})
	require.NoError(t, err)

	_, err = sess.UpdateLineQuantity(p, line.ID, dec("5"), false, GuardConfig{})
	var confirm *ConfirmRequiredError
	require.ErrorAs(t, err, &confirm)
	assert.True(t, sess.Cart.Items()[0].Quantity.Equal(dec("2")))
	assert.False(t, sess.Cart.Items()[0].SoldWithoutStock)

	updated, err := sess.UpdateLineQuantity(p, line.ID, dec("5"), true, GuardConfig{})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(dec("5")))
	assert.True(t, updated.SoldWithoutStock)
}

func TestSession_OpenPriceRedirects(t *testing.T) {
	sess := newTestSession(cashierPerms)
	p := &model.Product{ID: newID(), Name: "bulk candy", AllowOpenPrice: true, StockQuantity: dec("10")}

	_, err := sess.AddProduct(p, dec("1"), nil, false, GuardConfig{})
	assert.ErrorIs(t, err, ErrPriceRequired)
	assert.Equal(t, 0, sess.Cart.Len())

	price := dec("12.50")
	line, err := sess.AddProduct(p, dec("1"), &price, false, GuardConfig{})
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(price))
}

func TestSession_ExplicitPriceNeedsCapability(t *testing.T) {
	sess := newTestSession(cashierPerms)
	p := &model.Product{ID: newID(), Name: "rice", SalePrice: dec("10.00"), StockQuantity: dec("10")}

	price := dec("1.00")
	_, err := sess.AddProduct(p, dec("1"), &price, false, GuardConfig{})
	assert.ErrorIs(t, err, ErrPriceChangeDenied)
}
