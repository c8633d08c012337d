package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/angelmondragon/shopcart-backend/pkg/enums"
)

// Query is the full input of the product pipeline.
type Query struct {
	Search     string
	Categories []string
	Sort       enums.SortKey
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Apply runs search, category filter, price range and sort over products in
// that order. The input slice is never mutated and the result holds cloned
// products, so applying the same query twice yields equal output.
func Apply(products []Product, q Query) []Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	var selected map[string]struct{}
	if len(q.Categories) > 0 {
		selected = make(map[string]struct{}, len(q.Categories))
		for _, category := range q.Categories {
			selected[category] = struct{}{}
		}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !matchesSearch(p, needle) {
			continue
		}
		if selected != nil {
			if _, ok := selected[p.Category]; !ok {
				continue
			}
		}
		if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		out = append(out, p.Clone())
	}

	sortProducts(out, q.Sort)
	return out
}

func matchesSearch(p Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), needle)
}

func sortProducts(products []Product, key enums.SortKey) {
	switch key {
	case enums.SortNameAsc, enums.SortNameDesc:
		// Collators keep internal buffers and are not safe to share.
		collator := collate.New(language.English, collate.IgnoreCase)
		desc := key == enums.SortNameDesc
		sort.SliceStable(products, func(i, j int) bool {
			cmp := collator.CompareString(products[i].Name, products[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case enums.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case enums.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	}
}
