package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/internal/catalog"
)

// Line is one cart entry: a copy of the product as it was when first added,
// the captured unit price and a quantity that is always >= 1 while stored.
type Line struct {
	ProductID  string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Image      string          `json:"image,omitempty"`
	Tags       []string        `json:"tags"`
	InStock    bool            `json:"in_stock"`
	Attributes map[string]any  `json:"attributes,omitempty"`
	UnitPrice  decimal.Decimal `json:"price"`
	Quantity   int             `json:"qty"`
}

func newLine(id string, p catalog.Product) Line {
	p = p.Clone()
	return Line{
		ProductID:  id,
		Name:       p.Name,
		Category:   p.Category,
		Image:      p.Image,
		Tags:       p.Tags,
		InStock:    p.InStock,
		Attributes: p.Attributes,
		UnitPrice:  p.Price,
		Quantity:   1,
	}
}

// LineTotal is UnitPrice x Quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clone() Line {
	out := l
	if l.Tags != nil {
		out.Tags = append(make([]string, 0, len(l.Tags)), l.Tags...)
	}
	if l.Attributes != nil {
		out.Attributes = make(map[string]any, len(l.Attributes))
		for k, v := range l.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}
