package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
)

//go:embed data/products.json
var defaultData embed.FS

const defaultDataPath = "data/products.json"

// Catalog is the immutable product list plus its id index. It is built once
// and safe for concurrent readers.
type Catalog struct {
	products   []Product
	byID       map[string]int
	categories []string
}

// New builds a catalog from products in order. Products without a derivable
// id receive a synthesized "product-<position>" id; on duplicate ids the
// first product wins the index slot.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	seenCategory := map[string]struct{}{}

	for i, p := range products {
		p = p.Clone()
		p.ID = DeriveID(p)
		if p.ID == "" {
			p.ID = fmt.Sprintf("product-%d", i+1)
		}
		if _, exists := c.byID[p.ID]; !exists {
			c.byID[p.ID] = len(c.products)
		}
		if p.Category != "" {
			if _, seen := seenCategory[p.Category]; !seen {
				seenCategory[p.Category] = struct{}{}
				c.categories = append(c.categories, p.Category)
			}
		}
		c.products = append(c.products, p)
	}
	return c
}

// Load decodes a JSON array of raw product records through Normalize.
func Load(r io.Reader) (*Catalog, error) {
	var records []map[string]any
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	products := make([]Product, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		products = append(products, Normalize(record))
	}
	return New(products), nil
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded storefront catalog.
func Default() (*Catalog, error) {
	f, err := defaultData.Open(defaultDataPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Products returns the catalog in its original order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get resolves a derived identifier. Unknown ids return a NOT_FOUND error.
func (c *Catalog) Get(id string) (Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": id})
	}
	return c.products[idx].Clone(), nil
}

// Categories lists the distinct categories in first-seen catalog order.
func (c *Catalog) Categories() []string {
	return append(make([]string, 0, len(c.categories)), c.categories...)
}

// Query runs the search/filter/sort pipeline over the catalog.
func (c *Catalog) Query(q Query) []Product {
	return Apply(c.products, q)
}
