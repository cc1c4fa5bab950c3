package debounce

import "context"

// Adapter wraps an activation handler with its own Guard. Register Func (or
// the adapter's Handle method) with the event source in place of the handler.
type Adapter[E any] struct {
	guard *Guard
	fn    func(E)
	opts  options
}

// NewAdapter wraps fn. The adapter owns a single guard for its lifetime.
func NewAdapter[E any](fn func(E), opts ...Option) *Adapter[E] {
	o := buildOptions("adapter", opts)
	o.logger = o.logger.With("adapter", o.name)
	return &Adapter[E]{
		guard: NewGuard(o.window),
		fn:    fn,
		opts:  o,
	}
}

// Handle forwards ev to the wrapped handler unless it arrives inside the
// cooldown window, in which case it is dropped. The handler runs on the
// calling goroutine. Handle reports whether ev was forwarded.
func (a *Adapter[E]) Handle(ev E) bool {
	allowed, now := a.guard.allowAt(a.opts.clock)
	a.opts.observer.Observe(context.Background(), Activation{
		Scope:   a.opts.name,
		Allowed: allowed,
		At:      now,
	})
	if !allowed {
		a.opts.logger.Debug("activation suppressed", "at_ms", now)
		return false
	}
	a.fn(ev)
	return true
}

// Func returns the adapter as a plain callback.
func (a *Adapter[E]) Func() func(E) {
	return func(ev E) {
		a.Handle(ev)
	}
}

// Guard returns the adapter's guard.
func (a *Adapter[E]) Guard() *Guard {
	return a.guard
}

// Wrap is the zero-argument form of NewAdapter.
func Wrap(fn func(), opts ...Option) func() {
	a := NewAdapter(func(struct{}) { fn() }, opts...)
	return func() {
		a.Handle(struct{}{})
	}
}
