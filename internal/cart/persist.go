package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/shopcart-backend/internal/catalog"
	"github.com/angelmondragon/shopcart-backend/internal/promo"
)

const (
	snapshotOpLoad = "load"
	snapshotOpSave = "save"
)

// decodeLines parses a cart snapshot leniently. Records without a derivable
// id are dropped, a missing or non-positive qty counts as 1 and later
// duplicates of an id are ignored.
func decodeLines(raw string) ([]Line, error) {
	var records []map[string]any
	decoder := json.NewDecoder(bytes.NewBufferString(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}

	lines := make([]Line, 0, len(records))
	seen := map[string]struct{}{}
	for _, record := range records {
		if record == nil {
			continue
		}
		qty := CoerceQuantity(record["qty"])
		delete(record, "qty")
		nested, _ := record["attributes"].(map[string]any)
		delete(record, "attributes")

		product := catalog.Normalize(record)
		if product.ID == "" {
			continue
		}
		if _, dup := seen[product.ID]; dup {
			continue
		}
		seen[product.ID] = struct{}{}

		for k, v := range nested {
			if product.Attributes == nil {
				product.Attributes = map[string]any{}
			}
			product.Attributes[k] = v
		}

		line := newLine(product.ID, product)
		if qty > 0 {
			line.Quantity = qty
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// decodeCoupon parses a coupon snapshot; "null" and empty codes mean no coupon.
func decodeCoupon(raw string) (*promo.Coupon, error) {
	var entry *promo.Entry
	decoder := json.NewDecoder(bytes.NewBufferString(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode coupon snapshot: %w", err)
	}
	if entry == nil {
		return nil, nil
	}
	coupon := entry.Coupon()
	if promo.NormalizeCode(coupon.Code) == "" {
		return nil, nil
	}
	return &coupon, nil
}

func encodeCoupon(applied *promo.Coupon) ([]byte, error) {
	if applied == nil {
		return []byte("null"), nil
	}
	return json.Marshal(promo.EntryFor(*applied))
}

// load restores state once, before the store is shared. Missing keys and
// corrupt payloads leave the corresponding part empty.
func (s *Store) load(ctx context.Context) {
	ctx, cancel := s.snapshotContext(ctx)
	defer cancel()
	started := time.Now()
	defer func() { s.metrics.ObserveSnapshot(snapshotOpLoad, time.Since(started)) }()

	if raw, ok, err := s.snapshots.Get(ctx, s.keys.Cart); err != nil {
		s.warnSnapshot(ctx, snapshotOpLoad, s.keys.Cart, err)
	} else if ok {
		lines, err := decodeLines(raw)
		if err != nil {
			s.warnSnapshot(ctx, snapshotOpLoad, s.keys.Cart, err)
		} else {
			s.lines = lines
		}
	}

	if raw, ok, err := s.snapshots.Get(ctx, s.keys.Coupon); err != nil {
		s.warnSnapshot(ctx, snapshotOpLoad, s.keys.Coupon, err)
	} else if ok {
		applied, err := decodeCoupon(raw)
		if err != nil {
			s.warnSnapshot(ctx, snapshotOpLoad, s.keys.Coupon, err)
		} else {
			s.applied = applied
		}
	}
}

// save writes both keys. Callers hold s.mu so writes land in mutation order.
func (s *Store) save(ctx context.Context) {
	ctx, cancel := s.snapshotContext(ctx)
	defer cancel()
	started := time.Now()

	var errs error
	cartJSON, err := json.Marshal(s.lines)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode cart: %w", err))
	} else if err := s.snapshots.Set(ctx, s.keys.Cart, string(cartJSON)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("write %s: %w", s.keys.Cart, err))
	}

	couponJSON, err := encodeCoupon(s.applied)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("encode coupon: %w", err))
	} else if err := s.snapshots.Set(ctx, s.keys.Coupon, string(couponJSON)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("write %s: %w", s.keys.Coupon, err))
	}

	s.metrics.ObserveSnapshot(snapshotOpSave, time.Since(started))
	if errs != nil {
		s.warnSnapshot(ctx, snapshotOpSave, s.keys.Cart, errs)
	}
}

func (s *Store) snapshotContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	// Snapshot I/O outlives the request; only the snapshot timeout bounds it.
	ctx = context.WithoutCancel(ctx)
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) warnSnapshot(ctx context.Context, op, key string, err error) {
	s.metrics.IncSnapshotFailure(op)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"snapshot_op":  op,
		"snapshot_key": key,
		"error":        err.Error(),
		"failures":     len(multierr.Errors(err)),
	})
	s.logg.Warn(ctx, "cart snapshot failed")
}
