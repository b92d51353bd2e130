package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sellx/internal/model"
)

// Payment is one tendered instrument in the current checkout. FeePercent is
// copied from the instrument configuration for reporting; it never increases
// what the customer owes.
type Payment struct {
	ID           uuid.UUID
	MethodID     uuid.UUID
	MethodName   string
	Amount       decimal.Decimal
	Installments int
	FeePercent   decimal.Decimal
}

// Fee is amount × feePercent / 100, display/reporting only.
func (p Payment) Fee() decimal.Decimal {
	return p.Amount.Mul(p.FeePercent).Div(hundred)
}

// PaymentList accumulates tendered instruments for the current checkout.
type PaymentList struct {
	payments []Payment
}

func NewPaymentList() *PaymentList { return &PaymentList{} }

// Add validates and appends a payment.
func (pl *PaymentList) Add(method *model.PaymentMethod, amount decimal.Decimal, installments int) (Payment, error) {
	if method == nil {
		return Payment{}, ErrNoPaymentMethod
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return Payment{}, ErrInvalidPaymentAmount
	}
	if installments < 1 {
		installments = 1
	}
	if method.MaxInstallments > 0 && installments > method.MaxInstallments {
		installments = method.MaxInstallments
	}
	p := Payment{
		ID:           uuid.New(),
		MethodID:     method.ID,
		MethodName:   method.Name,
		Amount:       amount,
		Installments: installments,
		FeePercent:   method.FeePercent,
	}
	pl.payments = append(pl.payments, p)
	return p, nil
}

// Remove drops a payment by id; removing an absent id is a no-op.
// Remaining and change follow on the next read — nothing is cached.
func (pl *PaymentList) Remove(id uuid.UUID) {
	for i := range pl.payments {
		if pl.payments[i].ID == id {
			pl.payments = append(pl.payments[:i], pl.payments[i+1:]...)
			return
		}
	}
}

// Payments returns a copy in tender order.
func (pl *PaymentList) Payments() []Payment {
	out := make([]Payment, len(pl.payments))
	copy(out, pl.payments)
	return out
}

func (pl *PaymentList) Len() int { return len(pl.payments) }

func (pl *PaymentList) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range pl.payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Remaining is max(0, total − totalPaid).
func (pl *PaymentList) Remaining(total decimal.Decimal) decimal.Decimal {
	r := total.Sub(pl.TotalPaid())
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Change is max(0, totalPaid − total).
func (pl *PaymentList) Change(total decimal.Decimal) decimal.Decimal {
	c := pl.TotalPaid().Sub(total)
	if c.IsNegative() {
		return decimal.Zero
	}
	return c
}

func (pl *PaymentList) clear() { pl.payments = nil }
