package debounce

import (
	"context"
	"fmt"
	"time"

	"github.com/billie-coop/fastclick/internal/csync"
)

// Registry maps identities to their own Guard so independent activation
// sources never share a cooldown. One registry serves one scope.
type Registry[K comparable] struct {
	guards *csync.Map[K, *Guard]
	opts   options
}

// NewRegistry creates an empty registry for the named scope.
func NewRegistry[K comparable](name string, opts ...Option) *Registry[K] {
	o := buildOptions(name, opts)
	o.logger = o.logger.With("scope", name)
	return &Registry[K]{
		guards: csync.NewMap[K, *Guard](),
		opts:   o,
	}
}

// Name returns the scope name.
func (r *Registry[K]) Name() string {
	return r.opts.name
}

// GuardFor returns the guard for id, creating it with the registry's window
// on first use. Every caller sharing an identity gets the same guard.
func (r *Registry[K]) GuardFor(id K) *Guard {
	return r.guardWithWindow(id, r.opts.window)
}

func (r *Registry[K]) guardWithWindow(id K, window time.Duration) *Guard {
	g, created := r.guards.LoadOrStore(id, func() *Guard {
		return NewGuard(window)
	})
	if created {
		r.opts.logger.Debug("guard created", "identity", id, "window", g.Window())
	}
	return g
}

// Allow consults the guard for id against the registry's clock.
func (r *Registry[K]) Allow(id K) bool {
	return r.allow(id, r.GuardFor(id))
}

func (r *Registry[K]) allow(id K, g *Guard) bool {
	allowed, now := g.allowAt(r.opts.clock)
	if !allowed {
		r.opts.logger.Debug("activation suppressed",
			"identity", id,
			"at_ms", now,
			"last_fire_ms", g.LastFire(),
		)
	}
	r.opts.observer.Observe(context.Background(), Activation{
		Scope:    r.opts.name,
		Identity: fmt.Sprint(id),
		Allowed:  allowed,
		At:       now,
	})
	return allowed
}

// Validate fails with a DuplicateIdentityError if ids repeats an identity.
func (r *Registry[K]) Validate(ids []K) error {
	return Validate(r.opts.name, ids)
}

// Len returns the number of guards created so far.
func (r *Registry[K]) Len() int {
	return r.guards.Len()
}

// Identities returns the identities that have a guard, in no particular
// order.
func (r *Registry[K]) Identities() []K {
	return r.guards.Keys()
}

// Range calls f for every guard until f returns false.
func (r *Registry[K]) Range(f func(id K, g *Guard) bool) {
	r.guards.Range(f)
}

// Reset discards every guard. Identities used afterwards start fresh.
func (r *Registry[K]) Reset() {
	r.guards.Clear()
}

// Validate fails with a DuplicateIdentityError on the first identity that
// appears twice in ids.
func Validate[K comparable](scope string, ids []K) error {
	seen := make(map[K]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return &DuplicateIdentityError{Scope: scope, Identity: id}
		}
		seen[id] = struct{}{}
	}
	return nil
}
