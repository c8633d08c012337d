package browse

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	"github.com/angelmondragon/shopcart-backend/pkg/enums"
)

// Snapshot is a point-in-time copy of a State.
type Snapshot struct {
	Search      string           `json:"search"`
	Categories  []string         `json:"categories"`
	Sort        enums.SortKey    `json:"sort"`
	MinPrice    *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
	OpenProduct string           `json:"open_product,omitempty"`
}

// Query turns the snapshot into a pipeline query.
func (s Snapshot) Query() catalog.Query {
	return catalog.Query{
		Search:     s.Search,
		Categories: s.Categories,
		Sort:       s.Sort,
		MinPrice:   s.MinPrice,
		MaxPrice:   s.MaxPrice,
	}
}

// State coordinates the product list view for one session: the search term,
// selected categories, sort key, price range and the deep-linked product.
type State struct {
	mu         sync.RWMutex
	search     string
	categories map[string]struct{}
	sort       enums.SortKey
	minPrice   *decimal.Decimal
	maxPrice   *decimal.Decimal
	open       string
}

// NewState returns an empty state sorted in catalog order.
func NewState() *State {
	return &State{
		categories: map[string]struct{}{},
		sort:       enums.SortDefault,
	}
}

// SetQuery replaces the search term.
func (s *State) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = query
}

// SetSort replaces the sort key; unknown keys fall back to catalog order.
func (s *State) SetSort(raw string) enums.SortKey {
	key := enums.ParseSortKey(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = key
	return key
}

// ToggleCategory adds the category to the selection or removes it when
// already selected. It reports whether the category is selected afterwards.
func (s *State) ToggleCategory(category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category]; ok {
		delete(s.categories, category)
		return false
	}
	s.categories[category] = struct{}{}
	return true
}

// ClearCategories empties the category selection.
func (s *State) ClearCategories() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = map[string]struct{}{}
}

// SetPriceRange sets the inclusive bounds; nil clears a bound. Reversed
// bounds are swapped.
func (s *State) SetPriceRange(lo, hi *decimal.Decimal) {
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minPrice = copyDecimal(lo)
	s.maxPrice = copyDecimal(hi)
}

// OpenProduct resolves id against the catalog and records it as the
// deep-linked product. Unknown ids return the catalog's NOT_FOUND error and
// leave the state unchanged.
func (s *State) OpenProduct(c *catalog.Catalog, id string) (catalog.Product, error) {
	product, err := c.Get(id)
	if err != nil {
		return catalog.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = product.ID
	return product, nil
}

// CloseProduct clears the deep link.
func (s *State) CloseProduct() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = ""
}

// Query snapshots the state into a pipeline query.
func (s *State) Query() catalog.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Query{
		Search:     s.search,
		Categories: s.selectedLocked(),
		Sort:       s.sort,
		MinPrice:   copyDecimal(s.minPrice),
		MaxPrice:   copyDecimal(s.maxPrice),
	}
}

// Snapshot copies the full state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Search:      s.search,
		Categories:  s.selectedLocked(),
		Sort:        s.sort,
		MinPrice:    copyDecimal(s.minPrice),
		MaxPrice:    copyDecimal(s.maxPrice),
		OpenProduct: s.open,
	}
}

// Results runs the pipeline over the catalog with the current state.
func (s *State) Results(c *catalog.Catalog) []catalog.Product {
	return c.Query(s.Query())
}

func (s *State) selectedLocked() []string {
	out := make([]string, 0, len(s.categories))
	for category := range s.categories {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
