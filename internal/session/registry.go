package session

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/angelmondragon/shopcart-backend/internal/browse"
	"github.com/angelmondragon/shopcart-backend/internal/cart"
	"github.com/angelmondragon/shopcart-backend/internal/snapshot"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidID reports whether id can be used as a session id and snapshot key part.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Session is the per-visitor state: one cart and one browse state.
type Session struct {
	ID     string
	Cart   *cart.Store
	Browse *browse.State
}

// Registry hands out sessions, restoring carts from snapshots on first use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	loads    singleflight.Group

	snapshots snapshot.Store
	prefix    string
	logg      *logger.Logger
	cartOpts  []cart.Option
}

// NewRegistry builds a registry persisting carts under prefix:<session>.
func NewRegistry(snapshots snapshot.Store, prefix string, logg *logger.Logger, cartOpts ...cart.Option) (*Registry, error) {
	if snapshots == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Registry{
		sessions:  map[string]*Session{},
		snapshots: snapshots,
		prefix:    prefix,
		logg:      logg,
		cartOpts:  cartOpts,
	}, nil
}

// Get returns the session for id, loading its cart once even when several
// requests for a new session arrive together. The session stays registered
// for the life of the process.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("invalid session id %q", id)
	}
	if sess := r.lookup(id); sess != nil {
		return sess, nil
	}

	v, err, _ := r.loads.Do(id, func() (any, error) {
		if sess := r.lookup(id); sess != nil {
			return sess, nil
		}

		sess, err := r.restore(ctx, id)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.sessions[id] = sess
		r.mu.Unlock()

		r.logg.Debug(r.logg.WithSessionID(ctx, id), "session loaded")
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Peek returns the registered session for id, or a detached session restored
// from snapshots when id has not been registered yet. Detached sessions are
// never stored, so read-only traffic does not grow the registry.
func (r *Registry) Peek(ctx context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("invalid session id %q", id)
	}
	if sess := r.lookup(id); sess != nil {
		return sess, nil
	}
	return r.restore(ctx, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) restore(ctx context.Context, id string) (*Session, error) {
	store, err := cart.NewStore(ctx, cart.Deps{
		Snapshots: r.snapshots,
		Keys:      snapshot.KeysFor(r.prefix, id),
		Logger:    r.logg,
	}, r.cartOpts...)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Cart: store, Browse: browse.NewState()}, nil
}

func (r *Registry) lookup(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}
