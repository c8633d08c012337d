package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c, err := Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("expected 5 products, got %d", c.Len())
	}

	p, err := c.Get("p-003")
	if err != nil {
		t.Fatalf("get p-003: %v", err)
	}
	if p.Name != "Aegis Legend 3 Kit" || !p.Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Image != "/assets/imgs/aegis-legend-3.jpg" {
		t.Fatalf("img key not mapped: %q", p.Image)
	}

	want := []string{"Disposable", "Juice", "Device", "Doll"}
	got := c.Categories()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("categories = %v, want %v", got, want)
	}
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	t.Parallel()

	c := New([]Product{{ID: "a", Name: "A"}})
	_, err := c.Get("missing")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestNewSynthesizesAndDedupesIDs(t *testing.T) {
	t.Parallel()

	c := New([]Product{
		{ID: "dup", Name: "First"},
		{ID: "dup", Name: "Second"},
		{Price: decimal.NewFromInt(1)},
		{Name: "Labubu", Price: decimal.NewFromInt(70)},
	})

	first, err := c.Get("dup")
	if err != nil || first.Name != "First" {
		t.Fatalf("expected first duplicate to win, got %+v err=%v", first, err)
	}
	if _, err := c.Get("product-3"); err != nil {
		t.Fatalf("expected synthesized id product-3: %v", err)
	}
	if _, err := c.Get("labubu-70"); err != nil {
		t.Fatalf("expected derived id labubu-70: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("duplicates should stay in the product list, got %d", c.Len())
	}
}

func TestLoadSkipsNullRecordsAndRejectsGarbage(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(`[null, {"title":"Widget","price":"4.50"}]`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 product, got %d", c.Len())
	}
	if _, err := c.Get("widget-4.5"); err != nil {
		t.Fatalf("expected derived id widget-4.5: %v", err)
	}

	if _, err := Load(strings.NewReader(`{"not":"an array"}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadKeepsNumericPriceSignAndExponent(t *testing.T) {
	t.Parallel()

	c, err := Load(strings.NewReader(`[{"id":"neg","title":"Credit","price":-5},{"id":"exp","title":"Bulk","price":2.5e1}]`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	neg, err := c.Get("neg")
	if err != nil || !neg.Price.Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("expected price -5, got %+v err=%v", neg, err)
	}
	exp, err := c.Get("exp")
	if err != nil || !exp.Price.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected price 25, got %+v err=%v", exp, err)
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New([]Product{{ID: "a", Name: "A", Tags: []string{"hot"}, Attributes: map[string]any{"flavor": "mint"}}})
	list := c.Products()
	list[0].Name = "mutated"
	list[0].Tags[0] = "cold"
	list[0].Attributes["flavor"] = "grape"
	p, _ := c.Get("a")
	if p.Name != "A" || p.Tags[0] != "hot" || p.Attributes["flavor"] != "mint" {
		t.Fatalf("catalog mutated through Products(): %+v", p)
	}
}

func TestQueryResultsAreDetached(t *testing.T) {
	t.Parallel()

	c := New([]Product{{ID: "a", Name: "A", Tags: []string{"hot"}, Attributes: map[string]any{"flavor": "mint"}}})
	res := c.Query(Query{})
	if len(res) != 1 {
		t.Fatalf("expected one result, got %d", len(res))
	}
	res[0].Tags[0] = "cold"
	res[0].Attributes["flavor"] = "grape"

	p, _ := c.Get("a")
	if p.Tags[0] != "hot" || p.Attributes["flavor"] != "mint" {
		t.Fatalf("catalog mutated through Query(): %+v", p)
	}
	if again := c.Query(Query{}); again[0].Tags[0] != "hot" {
		t.Fatalf("later queries see mutated tags: %+v", again[0])
	}
}
