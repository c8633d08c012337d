package promo

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/pkg/enums"
	"github.com/angelmondragon/shopcart-backend/pkg/money"
)

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// FindCoupon returns the first table entry whose normalized code matches code.
func FindCoupon(table []Coupon, code string) (*Coupon, bool) {
	target := NormalizeCode(code)
	if target == "" {
		return nil, false
	}
	for i := range table {
		if NormalizeCode(table[i].Code) == target {
			match := table[i]
			return &match, true
		}
	}
	return nil, false
}

// ComputeDiscount applies coupon to subtotal. The result is always within
// [0, subtotal]; a nil coupon or a non-positive subtotal yields zero.
func ComputeDiscount(subtotal decimal.Decimal, coupon *Coupon) decimal.Decimal {
	if coupon == nil || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch coupon.Kind {
	case enums.CouponKindPercent:
		discount = subtotal.Mul(coupon.Value)
	case enums.CouponKindFlat:
		discount = decimal.Min(coupon.Value, subtotal)
	case enums.CouponKindThreshold:
		if coupon.ThresholdMin.IsPositive() && subtotal.LessThan(coupon.ThresholdMin) {
			return decimal.Zero
		}
		discount = decimal.Min(coupon.Value, subtotal)
	default:
		return decimal.Zero
	}
	return money.Clamp(discount, decimal.Zero, subtotal)
}
