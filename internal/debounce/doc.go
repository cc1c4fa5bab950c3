// Package debounce drops rapid repeated activation events (double taps, double
// clicks, key repeats) so each logical activation is handled at most once per
// cooldown window.
//
// # Guard
//
// Guard is the primitive. TryFire(now) allows a call unless the previous
// allowed call happened less than the window ago:
//
//	g := debounce.NewGuard(500 * time.Millisecond)
//	g.TryFire(0)   // true, the first activation is never suppressed
//	g.TryFire(100) // false
//	g.TryFire(600) // true
//
// A delta of zero or less (same reading, or a clock that went backwards) is
// treated as allowed.
//
// # Explicit wrapper
//
// Adapter owns one Guard and sits between an event source and a handler:
//
//	a := debounce.NewAdapter(func(ev Click) { save(ev) })
//	button.OnClick(a.Func())
//
// # Declarative markers
//
// A Scope is built from Markers, each attaching an integer identity to a
// handler method. Identities must be unique within a scope; NewScope fails
// with a DuplicateIdentityError otherwise. Instrumented methods call Enter at
// their entry point:
//
//	func (v *View) doClickFilter() {
//	    if !v.scope.Enter(1) {
//	        return
//	    }
//	    ...
//	}
//
// Weave produces the same check as a proxy around an existing function. Both
// forms share one Registry, so reaching identity 1 through either path hits
// the same cooldown.
//
// Uniqueness is checked per declaring type. Methods promoted through struct
// embedding keep the scope of the type that declares them.
//
// # Thread Safety
//
// Guard serializes TryFire with a mutex. Allow reads the clock inside the same
// critical section, so concurrent callers with an advancing clock get exactly
// one allowed activation per window.
package debounce
