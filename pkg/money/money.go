// Package money holds the total (never failing) price helpers shared by the
// catalog and cart packages. Amounts are decimal values in major currency units.
package money

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fraction digits used for presentation.
const Places = 2

// CoerceToPrice converts loosely typed input into a price. Numbers pass through,
// everything else is reduced to its digits and dots before parsing. Anything
// that cannot be parsed, including NaN and infinities, becomes zero.
func CoerceToPrice(input any) decimal.Decimal {
	switch v := input.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		if d, err := decimal.NewFromString(string(v)); err == nil {
			return d
		}
		return parseCleaned(string(v))
	case string:
		return parseCleaned(v)
	case fmt.Stringer:
		return parseCleaned(v.String())
	default:
		return parseCleaned(fmt.Sprint(v))
	}
}

func fromFloat(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func parseCleaned(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero
	}
	if strings.Count(cleaned, ".") > 1 || cleaned == "." {
		return decimal.Zero
	}
	if strings.HasPrefix(cleaned, ".") {
		cleaned = "0" + cleaned
	}
	cleaned = strings.TrimSuffix(cleaned, ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatMoney renders amount as a dollar string with exactly two fraction digits.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(Places)
}

// Round rounds amount half-up to two places.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Clamp bounds amount to [lo, hi]. When hi < lo the lower bound wins.
func Clamp(amount, lo, hi decimal.Decimal) decimal.Decimal {
	if amount.GreaterThan(hi) {
		amount = hi
	}
	if amount.LessThan(lo) {
		amount = lo
	}
	return amount
}

// NonNegative returns amount, or zero when amount is negative.
func NonNegative(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
