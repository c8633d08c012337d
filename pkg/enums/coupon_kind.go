package enums

import (
	"fmt"
	"strings"
)

// CouponKind describes how a promo code turns a subtotal into a discount.
type CouponKind string

const (
	CouponKindPercent   CouponKind = "percent"
	CouponKindFlat      CouponKind = "flat"
	CouponKindThreshold CouponKind = "threshold"
)

var validCouponKinds = []CouponKind{
	CouponKindPercent,
	CouponKindFlat,
	CouponKindThreshold,
}

// String implements fmt.Stringer.
func (c CouponKind) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CouponKind.
func (c CouponKind) IsValid() bool {
	for _, candidate := range validCouponKinds {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCouponKind converts raw input into a CouponKind.
func ParseCouponKind(value string) (CouponKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCouponKinds {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid coupon kind %q", value)
}
