package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/internal/promo"
	"github.com/angelmondragon/shopcart-backend/pkg/money"
)

// Totals is a consistent view of the derived cart values.
type Totals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

func computeTotals(lines []Line, applied *promo.Coupon) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
		count += line.Quantity
	}
	discount := promo.ComputeDiscount(subtotal, applied)
	return Totals{
		ItemCount: count,
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     money.NonNegative(subtotal.Sub(discount)),
	}
}
