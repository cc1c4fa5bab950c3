package debounce

import "context"

// Activation describes one allow/suppress decision.
type Activation struct {
	Scope    string
	Identity string
	Allowed  bool
	At       int64
}

// Observer is notified of every decision made by an adapter or registry.
// Implementations must not block.
type Observer interface {
	Observe(ctx context.Context, a Activation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, a Activation)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, a Activation) {
	f(ctx, a)
}

// NopObserver discards observations.
type NopObserver struct{}

// Observe does nothing.
func (NopObserver) Observe(context.Context, Activation) {}

// Observers fans every observation out to each non-nil observer in order.
func Observers(obs ...Observer) Observer {
	list := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			list = append(list, o)
		}
	}
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) Observe(ctx context.Context, a Activation) {
	for _, o := range m {
		o.Observe(ctx, a)
	}
}
