package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/pkg/money"
)

// Product is the canonical catalog entry every other package consumes.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
	Tags       []string        `json:"tags"`
	InStock    bool            `json:"in_stock"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}

// Clone returns a deep copy so callers can keep a snapshot of the product.
func (p Product) Clone() Product {
	out := p
	if p.Tags != nil {
		out.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	}
	if p.Attributes != nil {
		out.Attributes = make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

var (
	idKeys       = []string{"id", "sku"}
	nameKeys     = []string{"name", "title"}
	imageKeys    = []string{"image", "img", "src"}
	inStockKeys  = []string{"inStock", "in_stock"}
	categoryKeys = []string{"category"}
	knownKeys    = map[string]struct{}{"price": {}, "tags": {}}
)

func init() {
	for _, group := range [][]string{idKeys, nameKeys, imageKeys, inStockKeys, categoryKeys} {
		for _, key := range group {
			knownKeys[key] = struct{}{}
		}
	}
}

// Normalize maps a loosely shaped external record onto Product. Alternate key
// names are resolved in priority order, the price is coerced, and unknown keys
// are kept as pass-through attributes. A missing id is derived from name and
// price.
func Normalize(raw map[string]any) Product {
	p := Product{
		ID:       firstString(raw, idKeys),
		Name:     firstString(raw, nameKeys),
		Category: firstString(raw, categoryKeys),
		Price:    money.CoerceToPrice(raw["price"]),
		Image:    firstString(raw, imageKeys),
		Tags:     toTags(raw["tags"]),
		InStock:  firstBool(raw, inStockKeys, true),
	}

	for key, value := range raw {
		if _, ok := knownKeys[key]; ok {
			continue
		}
		if p.Attributes == nil {
			p.Attributes = map[string]any{}
		}
		p.Attributes[key] = value
	}

	p.ID = DeriveID(p)
	return p
}

// DeriveID returns the stable identifier for p: the explicit id when present,
// otherwise a slug of the name joined with the canonical price
// ("Labubu", 70.00 -> "labubu-70"). It returns "" when the product has neither
// an id nor a name.
func DeriveID(p Product) string {
	if id := strings.TrimSpace(p.ID); id != "" {
		return id
	}
	name := strings.Fields(p.Name)
	if len(name) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(name, "-")) + "-" + p.Price.String()
}

func firstString(raw map[string]any, keys []string) string {
	for _, key := range keys {
		if value := stringValue(raw[key]); value != "" {
			return value
		}
	}
	return ""
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}

func firstBool(raw map[string]any, keys []string, fallback bool) bool {
	for _, key := range keys {
		switch typed := raw[key].(type) {
		case bool:
			return typed
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(typed)); err == nil {
				return parsed
			}
		}
	}
	return fallback
}

func toTags(v any) []string {
	tags := []string{}
	switch typed := v.(type) {
	case []string:
		tags = append(tags, typed...)
	case []any:
		for _, tag := range typed {
			if tag == nil {
				continue
			}
			tags = append(tags, fmt.Sprint(tag))
		}
	}
	return tags
}
