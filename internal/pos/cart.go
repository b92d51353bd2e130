package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinLineQuantity is the smallest quantity a cart line may hold after an
// edit — the fractional granularity of weighed goods.
var MinLineQuantity = decimal.New(1, -3) // 0.001

// LineItem is one cart row. Total is deliberately NOT a field: it is always
// recomputed from quantity, unit price and line discount, never stored.
type LineItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string

	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	CostPrice    decimal.Decimal
	LineDiscount decimal.Decimal

	IsService bool
	// SoldWithoutStock marks a line a privileged operator pushed past a
	// stock shortage.
	SoldWithoutStock bool
}

// Total is quantity × unitPrice − lineDiscount, clamped at zero.
func (l LineItem) Total() decimal.Decimal {
	t := l.Quantity.Mul(l.UnitPrice).Sub(l.LineDiscount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

// Cart is the ordered, session-scoped collection of line items. It never
// computes money beyond the line level — subtotals and discounts belong to
// ComputeTotals.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart { return &Cart{} }

// Items returns a copy of the lines, in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

// QuantityOf sums the quantity of a product across all its lines. The stock
// guard checks the resulting per-product quantity, not the delta alone.
func (c *Cart) QuantityOf(productID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.items {
		if l.ProductID == productID {
			total = total.Add(l.Quantity)
		}
	}
	return total
}

// Upsert merges item into an existing line keyed by (productID, unitPrice),
// summing quantities, or appends a new line. A different price always starts
// a new row so per-scan open pricing keeps distinct lines.
func (c *Cart) Upsert(item LineItem) LineItem {
	for i := range c.items {
		l := &c.items[i]
		if l.ProductID == item.ProductID && l.UnitPrice.Equal(item.UnitPrice) {
			l.Quantity = l.Quantity.Add(item.Quantity)
			l.SoldWithoutStock = l.SoldWithoutStock || item.SoldWithoutStock
			return *l
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity sets a line's quantity, clamped up to MinLineQuantity.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, qty decimal.Decimal) (LineItem, error) {
	l := c.find(lineID)
	if l == nil {
		return LineItem{}, ErrLineNotFound
	}
	if qty.LessThan(MinLineQuantity) {
		qty = MinLineQuantity
	}
	l.Quantity = qty
	return *l, nil
}

// UpdatePrice sets a line's unit price.
func (c *Cart) UpdatePrice(lineID uuid.UUID, price decimal.Decimal) (LineItem, error) {
	l := c.find(lineID)
	if l == nil {
		return LineItem{}, ErrLineNotFound
	}
	if price.IsNegative() {
		return LineItem{}, ErrDiscountInvalid
	}
	l.UnitPrice = price
	return *l, nil
}

// Remove drops a line. Idempotent: removing an absent id is a no-op.
func (c *Cart) Remove(lineID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ID == lineID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Used only by cancel and finalize flows.
func (c *Cart) Clear() { c.items = nil }

func (c *Cart) find(lineID uuid.UUID) *LineItem {
	for i := range c.items {
		if c.items[i].ID == lineID {
			return &c.items[i]
		}
	}
	return nil
}
