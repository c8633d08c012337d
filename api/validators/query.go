package validators

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
)

// ParseQueryDecimal reads an optional non-negative decimal parameter.
func ParseQueryDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": 0})
	}
	return &value, nil
}

// ParseQueryStrings collects a repeatable parameter; comma separated values
// are split and blanks dropped (?category=a&category=b,c -> [a b c]).
func ParseQueryStrings(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
