package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/internal/browse"
	"github.com/angelmondragon/shopcart-backend/internal/cart"
	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	"github.com/angelmondragon/shopcart-backend/internal/promo"
	"github.com/angelmondragon/shopcart-backend/pkg/money"
)

// Amount is a decimal rendered both as a two-place string and for display.
type Amount struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

func newAmount(d decimal.Decimal) Amount {
	return Amount{
		Value:     money.Round(d).StringFixed(2),
		Formatted: money.FormatMoney(d),
	}
}

type ProductView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Category   string         `json:"category,omitempty"`
	Price      Amount         `json:"price"`
	Image      string         `json:"image,omitempty"`
	Tags       []string       `json:"tags"`
	InStock    bool           `json:"in_stock"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func newProductView(p catalog.Product) ProductView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductView{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      newAmount(p.Price),
		Image:      p.Image,
		Tags:       tags,
		InStock:    p.InStock,
		Attributes: p.Attributes,
	}
}

func newProductViews(products []catalog.Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type ProductListView struct {
	Items []ProductView `json:"items"`
	Count int           `json:"count"`
}

func newProductListView(products []catalog.Product) ProductListView {
	return ProductListView{Items: newProductViews(products), Count: len(products)}
}

type CouponView struct {
	Code         string  `json:"code"`
	Type         string  `json:"type"`
	Value        string  `json:"value"`
	ThresholdMin *Amount `json:"threshold_min,omitempty"`
}

func newCouponView(c *promo.Coupon) *CouponView {
	if c == nil {
		return nil
	}
	view := &CouponView{
		Code:  c.Code,
		Type:  c.Kind.String(),
		Value: c.Value.String(),
	}
	if c.ThresholdMin.IsPositive() {
		threshold := newAmount(c.ThresholdMin)
		view.ThresholdMin = &threshold
	}
	return view
}

type CartLineView struct {
	ProductID  string         `json:"product_id"`
	Name       string         `json:"name"`
	Category   string         `json:"category,omitempty"`
	Image      string         `json:"image,omitempty"`
	Tags       []string       `json:"tags"`
	Attributes map[string]any `json:"attributes,omitempty"`
	UnitPrice  Amount         `json:"unit_price"`
	Quantity   int            `json:"quantity"`
	LineTotal  Amount         `json:"line_total"`
}

type CartView struct {
	Lines     []CartLineView `json:"lines"`
	Coupon    *CouponView    `json:"coupon"`
	ItemCount int            `json:"item_count"`
	Subtotal  Amount         `json:"subtotal"`
	Discount  Amount         `json:"discount"`
	Total     Amount         `json:"total"`
}

func newCartView(store *cart.Store) CartView {
	state := store.State()
	lines, totals := state.Lines, state.Totals

	view := CartView{
		Lines:     make([]CartLineView, 0, len(lines)),
		Coupon:    newCouponView(state.Coupon),
		ItemCount: totals.ItemCount,
		Subtotal:  newAmount(totals.Subtotal),
		Discount:  newAmount(totals.Discount),
		Total:     newAmount(totals.Total),
	}
	for _, line := range lines {
		tags := line.Tags
		if tags == nil {
			tags = []string{}
		}
		view.Lines = append(view.Lines, CartLineView{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Category:   line.Category,
			Image:      line.Image,
			Tags:       tags,
			Attributes: line.Attributes,
			UnitPrice:  newAmount(line.UnitPrice),
			Quantity:   line.Quantity,
			LineTotal:  newAmount(line.LineTotal()),
		})
	}
	return view
}

type BrowseView struct {
	State       browse.Snapshot `json:"state"`
	Results     ProductListView `json:"results"`
	OpenProduct *ProductView    `json:"open_product,omitempty"`
}

func newBrowseView(state *browse.State, c *catalog.Catalog) BrowseView {
	snap := state.Snapshot()
	view := BrowseView{
		State:   snap,
		Results: newProductListView(c.Query(snap.Query())),
	}
	if snap.OpenProduct != "" {
		if p, err := c.Get(snap.OpenProduct); err == nil {
			pv := newProductView(p)
			view.OpenProduct = &pv
		}
	}
	return view
}
