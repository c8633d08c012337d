// Package snapshot persists serialized cart state under namespaced keys.
package snapshot

import (
	"context"
	"strings"
)

// Store is a durable string key/value store. Get reports ok=false for
// missing keys instead of an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

const (
	cartSuffix   = "cart"
	couponSuffix = "coupon"
)

// Keys names the pair of snapshot entries owned by one cart.
type Keys struct {
	Cart   string
	Coupon string
}

// KeysFor builds the cart and coupon keys under prefix, skipping empty parts:
// KeysFor("shopcart", "abc") -> shopcart:abc:cart, shopcart:abc:coupon.
func KeysFor(parts ...string) Keys {
	base := Join(parts...)
	return Keys{
		Cart:   Join(base, cartSuffix),
		Coupon: Join(base, couponSuffix),
	}
}

// Join concatenates non-empty key parts with ":".
func Join(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
