package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCart_MergeSameProductSamePrice(t *testing.T) {
	c := NewCart()
	pid := uuid.New()

	c.Upsert(LineItem{ProductID: pid, ProductName: "rice", Quantity: dec("2"), UnitPrice: dec("10.00")})
	c.Upsert(LineItem{ProductID: pid, ProductName: "rice", Quantity: dec("3"), UnitPrice: dec("10.00")})

	require.Equal(t, 1, c.Len())
	line := c.Items()[0]
	assert.True(t, line.Quantity.Equal(dec("5")))
	assert.True(t, line.Total().Equal(dec("50.00")))
}

func TestCart_DifferentPriceStartsNewRow(t *testing.T) {
	c := NewCart()
	pid := uuid.New()

	c.Upsert(LineItem{ProductID: pid, Quantity: dec("1"), UnitPrice: dec("10.00")})
	c.Upsert(LineItem{ProductID: pid, Quantity: dec("1"), UnitPrice: dec("8.50")})

	assert.Equal(t, 2, c.Len())
	assert.True(t, c.QuantityOf(pid).Equal(dec("2")))
}

func TestCart_LineTotalIsPureFunction(t *testing.T) {
	c := NewCart()
	line := c.Upsert(LineItem{ProductID: uuid.New(), Quantity: dec("2"), UnitPrice: dec("3.30")})

	// Repeated edits must not drift: total always quantity × price.
	for i := 0; i < 50; i++ {
		updated, err := c.UpdateQuantity(line.ID, dec("0.123"))
		require.NoError(t, err)
		assert.True(t, updated.Total().Equal(dec("0.123").Mul(dec("3.30"))))

		updated, err = c.UpdateQuantity(line.ID, dec("7"))
		require.NoError(t, err)
		assert.True(t, updated.Total().Equal(dec("23.10")))
	}
}

func TestCart_UpdateQuantityClampsToMinimum(t *testing.T) {
	c := NewCart()
	line := c.Upsert(LineItem{ProductID: uuid.New(), Quantity: dec("1"), UnitPrice: dec("5")})

	updated, err := c.UpdateQuantity(line.ID, dec("0"))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(MinLineQuantity))

	updated, err = c.UpdateQuantity(line.ID, dec("-4"))
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(MinLineQuantity))
}

func TestCart_UpdateUnknownLine(t *testing.T) {
	c := NewCart()
	_, err := c.UpdateQuantity(uuid.New(), dec("1"))
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	c := NewCart()
	line := c.Upsert(LineItem{ProductID: uuid.New(), Quantity: dec("1"), UnitPrice: dec("5")})
	c.Upsert(LineItem{ProductID: uuid.New(), Quantity: dec("1"), UnitPrice: dec("2")})

	c.Remove(line.ID)
	assert.Equal(t, 1, c.Len())

	// Second removal by the same id: no error, no change.
	c.Remove(line.ID)
	assert.Equal(t, 1, c.Len())
}

func TestCart_LineDiscountClampedAtZero(t *testing.T) {
	l := LineItem{Quantity: dec("1"), UnitPrice: dec("5.00"), LineDiscount: dec("9.00")}
	assert.True(t, l.Total().Equal(decimal.Zero))
}

func TestCart_MergePreservesSoldWithoutStock(t *testing.T) {
	c := NewCart()
	pid := uuid.New()
	c.Upsert(LineItem{ProductID: pid, Quantity: dec("1"), UnitPrice: dec("5"), SoldWithoutStock: true})
	line := c.Upsert(LineItem{ProductID: pid, Quantity: dec("1"), UnitPrice: dec("5")})
	assert.True(t, line.SoldWithoutStock)
}
