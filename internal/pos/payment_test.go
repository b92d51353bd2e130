package pos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellx/internal/model"
)

func cashMethod() *model.PaymentMethod {
	return &model.PaymentMethod{ID: uuid.New(), Name: "Efectivo"}
}

func cardMethod() *model.PaymentMethod {
	return &model.PaymentMethod{ID: uuid.New(), Name: "Tarjeta", FeePercent: dec("3.5"), MaxInstallments: 12}
}

func TestPaymentList_AddValidation(t *testing.T) {
	pl := NewPaymentList()

	_, err := pl.Add(nil, dec("10"), 1)
	assert.ErrorIs(t, err, ErrNoPaymentMethod)

	_, err = pl.Add(cashMethod(), dec("0"), 1)
	assert.ErrorIs(t, err, ErrInvalidPaymentAmount)

	_, err = pl.Add(cashMethod(), dec("-5"), 1)
	assert.ErrorIs(t, err, ErrInvalidPaymentAmount)

	assert.Equal(t, 0, pl.Len())
}

func TestPaymentList_InstallmentsClamped(t *testing.T) {
	pl := NewPaymentList()

	p, err := pl.Add(cardMethod(), dec("100"), 24)
	require.NoError(t, err)
	assert.Equal(t, 12, p.Installments)

	p, err = pl.Add(cardMethod(), dec("100"), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Installments)
}

func TestPayment_FeeIsReportingOnly(t *testing.T) {
	pl := NewPaymentList()
	p, err := pl.Add(cardMethod(), dec("200.00"), 3)
	require.NoError(t, err)

	assert.True(t, p.Fee().Equal(dec("7.00")), "got %s", p.Fee())
	// The fee never inflates what was tendered.
	assert.True(t, pl.TotalPaid().Equal(dec("200.00")))
}

func TestPaymentList_RemainingAndChange(t *testing.T) {
	pl := NewPaymentList()
	total := dec("50.00")

	assert.True(t, pl.Remaining(total).Equal(total))
	assert.True(t, pl.Change(total).IsZero())

	_, err := pl.Add(cashMethod(), dec("30.00"), 1)
	require.NoError(t, err)
	assert.True(t, pl.Remaining(total).Equal(dec("20.00")))
	assert.True(t, pl.Change(total).IsZero())

	_, err = pl.Add(cardMethod(), dec("30.00"), 1)
	require.NoError(t, err)
	assert.True(t, pl.Remaining(total).IsZero())
	assert.True(t, pl.Change(total).Equal(dec("10.00")))
}

func TestPaymentList_RemoveIdempotent(t *testing.T) {
	pl := NewPaymentList()
	p, err := pl.Add(cashMethod(), dec("10.00"), 1)
	require.NoError(t, err)

	pl.Remove(p.ID)
	assert.Equal(t, 0, pl.Len())
	pl.Remove(p.ID)
	assert.Equal(t, 0, pl.Len())
	assert.True(t, pl.TotalPaid().IsZero())
}

func TestCheckFinalizeReady_RegularSale(t *testing.T) {
	sess := newTestSession(cashierPerms)
	total := dec("50.00")

	assert.ErrorIs(t, sess.CheckFinalizeReady(total, true), ErrCartEmpty)

	sess.Cart.Upsert(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: total})
	assert.ErrorIs(t, sess.CheckFinalizeReady(total, false), ErrNoOpenRegister)

	// Unpaid and underpaid both refuse.
	assert.ErrorIs(t, sess.CheckFinalizeReady(total, true), ErrInsufficientPayment)
	_, err := sess.Payments.Add(cashMethod(), dec("49.99"), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, sess.CheckFinalizeReady(total, true), ErrInsufficientPayment)

	// Overpayment is fine; the surplus is change.
	_, err = sess.Payments.Add(cashMethod(), dec("10.01"), 1)
	require.NoError(t, err)
	require.NoError(t, sess.CheckFinalizeReady(total, true))
	assert.True(t, sess.Payments.Change(total).Equal(dec("10.00")))
}

func TestCheckFinalizeReady_FutureOrder(t *testing.T) {
	sess := newTestSession(cashierPerms)
	sess.FutureOrder = true
	total := dec("500.00")
	sess.Cart.Upsert(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: total})

	assert.ErrorIs(t, sess.CheckFinalizeReady(total, true), ErrFutureOrderDetails)

	sess.AttachCustomer(CustomerInfo{ID: newID(), Name: "Ana"})
	assert.ErrorIs(t, sess.CheckFinalizeReady(total, true), ErrFutureOrderDetails)

	due := time.Now().AddDate(0, 0, 7)
	sess.FulfillmentDate = &due

	// No payment at all is acceptable on the deferred path.
	require.NoError(t, sess.CheckFinalizeReady(total, true))

	_, err := sess.Payments.Add(cashMethod(), dec("100.00"), 1)
	require.NoError(t, err)
	require.NoError(t, sess.CheckFinalizeReady(total, true))
}

func TestSession_ResetClearsEverything(t *testing.T) {
	sess := newTestSession(adminPerms)
	sess.Cart.Upsert(LineItem{ProductID: newID(), Quantity: dec("1"), UnitPrice: dec("10")})
	_, err := sess.Payments.Add(cashMethod(), dec("10"), 1)
	require.NoError(t, err)
	sess.AttachCustomer(CustomerInfo{ID: newID(), Name: "Ana", VIPDiscountPercent: dec("5")})
	_, err = sess.SetManualDiscount(dec("5"), DiscountPercent, decimal.Zero)
	require.NoError(t, err)

	sess.Reset()
	assert.Equal(t, 0, sess.Cart.Len())
	assert.Equal(t, 0, sess.Payments.Len())
	assert.Nil(t, sess.Customer)
	assert.True(t, sess.Discounts.ManualValue.IsZero())
	assert.True(t, sess.Discounts.VIPPercent.IsZero())
}
