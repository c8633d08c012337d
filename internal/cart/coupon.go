package cart

import (
	"context"

	"github.com/angelmondragon/shopcart-backend/internal/promo"
)

// Reason explains why a coupon was not applied.
type Reason string

const (
	ReasonEmpty          Reason = "EMPTY"
	ReasonAlreadyApplied Reason = "ALREADY_APPLIED"
	ReasonInvalid        Reason = "INVALID"
)

const outcomeApplied = "applied"

// ApplyResult reports the outcome of ApplyCoupon. Coupon is set only when OK.
type ApplyResult struct {
	OK     bool
	Reason Reason
	Coupon *promo.Coupon
}

// ApplyCoupon validates raw against the promo table. A different valid code
// replaces the current coupon; failures leave state untouched.
func (s *Store) ApplyCoupon(ctx context.Context, raw string) ApplyResult {
	code := promo.NormalizeCode(raw)
	if code == "" {
		return s.reject(ReasonEmpty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applied != nil && promo.NormalizeCode(s.applied.Code) == code {
		return s.reject(ReasonAlreadyApplied)
	}
	coupon, ok := promo.FindCoupon(s.coupons, code)
	if !ok {
		return s.reject(ReasonInvalid)
	}

	s.applied = coupon
	s.metrics.IncCouponOutcome(outcomeApplied)
	s.commit(ctx, opApplyCoupon)

	applied := *coupon
	return ApplyResult{OK: true, Coupon: &applied}
}

func (s *Store) reject(reason Reason) ApplyResult {
	s.metrics.IncCouponOutcome(string(reason))
	return ApplyResult{Reason: reason}
}
