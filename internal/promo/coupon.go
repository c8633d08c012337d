package promo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/pkg/enums"
	"github.com/angelmondragon/shopcart-backend/pkg/money"
)

// Coupon is a static promo rule. Value is a fraction for percent coupons and a
// currency amount for flat and threshold coupons.
type Coupon struct {
	Code         string           `json:"code"`
	Kind         enums.CouponKind `json:"type"`
	Value        decimal.Decimal  `json:"value"`
	ThresholdMin decimal.Decimal  `json:"threshold_min"`
}

// DefaultTable returns the built-in promo codes.
func DefaultTable() []Coupon {
	return []Coupon{
		{Code: "SAVE10", Kind: enums.CouponKindPercent, Value: decimal.RequireFromString("0.10")},
		{Code: "FIVEOFF", Kind: enums.CouponKindFlat, Value: decimal.NewFromInt(5)},
		{Code: "BIGSPENDER", Kind: enums.CouponKindThreshold, Value: decimal.NewFromInt(20), ThresholdMin: decimal.NewFromInt(100)},
	}
}

// Entry is the external JSON shape of a coupon, used by coupon table files
// and by persisted cart snapshots:
// {"code":"BIGSPENDER","type":"threshold","value":20,"threshold":{"min":100}}.
type Entry struct {
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     any        `json:"value"`
	Threshold *Threshold `json:"threshold,omitempty"`
}

type Threshold struct {
	Min any `json:"min"`
}

// EntryFor converts a coupon into its external shape.
func EntryFor(c Coupon) Entry {
	entry := Entry{
		Code:  c.Code,
		Type:  c.Kind.String(),
		Value: json.Number(c.Value.String()),
	}
	if c.Kind == enums.CouponKindThreshold || !c.ThresholdMin.IsZero() {
		entry.Threshold = &Threshold{Min: json.Number(c.ThresholdMin.String())}
	}
	return entry
}

// Coupon converts the entry without validating the kind; unknown kinds are
// kept and yield no discount.
func (e Entry) Coupon() Coupon {
	coupon := Coupon{
		Code:  strings.TrimSpace(e.Code),
		Kind:  enums.CouponKind(strings.ToLower(strings.TrimSpace(e.Type))),
		Value: money.CoerceToPrice(e.Value),
	}
	if e.Threshold != nil {
		coupon.ThresholdMin = money.CoerceToPrice(e.Threshold.Min)
	}
	return coupon
}

// LoadTable decodes a JSON array of coupon entries. Entries keep file order
// since lookups resolve ties by table position.
func LoadTable(r io.Reader) ([]Coupon, error) {
	var entries []Entry
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode promo table: %w", err)
	}

	table := make([]Coupon, 0, len(entries))
	for i, entry := range entries {
		code := NormalizeCode(entry.Code)
		if code == "" {
			return nil, fmt.Errorf("promo table entry %d: code is required", i)
		}
		if _, err := enums.ParseCouponKind(entry.Type); err != nil {
			return nil, fmt.Errorf("promo table entry %d (%s): %w", i, code, err)
		}
		table = append(table, entry.Coupon())
	}
	return table, nil
}
