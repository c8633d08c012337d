package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	"github.com/angelmondragon/shopcart-backend/internal/promo"
	"github.com/angelmondragon/shopcart-backend/internal/snapshot"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
	"github.com/angelmondragon/shopcart-backend/pkg/metrics"
)

const (
	opAdd          = "add"
	opUpdate       = "update_quantity"
	opRemove       = "remove"
	opClear        = "clear"
	opApplyCoupon  = "apply_coupon"
	opRemoveCoupon = "remove_coupon"
)

// Deps are the collaborators a Store needs.
type Deps struct {
	Snapshots snapshot.Store
	Keys      snapshot.Keys
	Logger    *logger.Logger
}

// Option tunes a Store.
type Option func(*Store)

// WithCoupons replaces the default promo table.
func WithCoupons(table []promo.Coupon) Option {
	return func(s *Store) {
		s.coupons = append([]promo.Coupon(nil), table...)
	}
}

// WithMetrics records mutations and snapshot I/O.
func WithMetrics(m *metrics.CartMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithSnapshotTimeout bounds every snapshot read and write.
func WithSnapshotTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

// Store owns one cart: its lines and the applied coupon. All methods are safe
// for concurrent use; every mutation is persisted synchronously, best effort.
type Store struct {
	mu      sync.Mutex
	lines   []Line
	applied *promo.Coupon

	coupons   []promo.Coupon
	snapshots snapshot.Store
	keys      snapshot.Keys
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
	timeout   time.Duration
}

// NewStore builds a store and restores any persisted state before returning.
func NewStore(ctx context.Context, deps Deps, opts ...Option) (*Store, error) {
	if deps.Snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if deps.Keys.Cart == "" || deps.Keys.Coupon == "" {
		return nil, fmt.Errorf("snapshot keys required")
	}

	s := &Store{
		coupons:   promo.DefaultTable(),
		snapshots: deps.Snapshots,
		keys:      deps.Keys,
		logg:      deps.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load(ctx)
	return s, nil
}

// AddToCart increments the line for product, creating it with quantity 1 on
// first add. Products without a derivable id are ignored.
func (s *Store) AddToCart(ctx context.Context, product catalog.Product) {
	id := catalog.DeriveID(product)
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		if s.lines[idx].Quantity < 1 {
			s.lines[idx].Quantity = 1
		}
		s.lines[idx].Quantity++
	} else {
		s.lines = append(s.lines, newLine(id, product))
	}
	s.commit(ctx, opAdd)
}

// UpdateQuantity sets the quantity of the line for id. Negative input counts
// as 0 and 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id string, qty int) {
	if qty < 0 {
		qty = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		if qty == 0 {
			s.removeAt(idx)
		} else {
			s.lines[idx].Quantity = qty
		}
	}
	s.commit(ctx, opUpdate)
}

// RemoveItem drops the line for id if present.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		s.removeAt(idx)
	}
	s.commit(ctx, opRemove)
}

// ClearCart empties the lines. The applied coupon is kept.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.commit(ctx, opClear)
}

// RemoveCoupon clears the applied coupon.
func (s *Store) RemoveCoupon(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applied = nil
	s.commit(ctx, opRemoveCoupon)
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line.clone())
	}
	return out
}

// AppliedCoupon returns a copy of the applied coupon, or nil.
func (s *Store) AppliedCoupon() *promo.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.applied == nil {
		return nil
	}
	c := *s.applied
	return &c
}

// State is a consistent copy of a cart and its derived totals.
type State struct {
	Lines  []Line
	Coupon *promo.Coupon
	Totals Totals
}

// State copies lines, coupon and totals under one lock.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.lines))
	for _, line := range s.lines {
		lines = append(lines, line.clone())
	}
	var coupon *promo.Coupon
	if s.applied != nil {
		c := *s.applied
		coupon = &c
	}
	return State{Lines: lines, Coupon: coupon, Totals: computeTotals(s.lines, s.applied)}
}

// Totals computes every derived value under one lock.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return computeTotals(s.lines, s.applied)
}

// ItemCount is the sum of line quantities.
func (s *Store) ItemCount() int {
	return s.Totals().ItemCount
}

// Subtotal is the sum of unit price x quantity.
func (s *Store) Subtotal() decimal.Decimal {
	return s.Totals().Subtotal
}

// Discount is the applied coupon's discount for the current subtotal.
func (s *Store) Discount() decimal.Decimal {
	return s.Totals().Discount
}

// Total is max(subtotal - discount, 0).
func (s *Store) Total() decimal.Decimal {
	return s.Totals().Total
}

// Keys reports where this cart is persisted.
func (s *Store) Keys() snapshot.Keys {
	return s.keys
}

func (s *Store) indexOf(id string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) {
	s.lines = append(s.lines[:idx:idx], s.lines[idx+1:]...)
}

// commit runs with s.mu held.
func (s *Store) commit(ctx context.Context, op string) {
	s.metrics.IncMutation(op)
	s.save(ctx)
}
