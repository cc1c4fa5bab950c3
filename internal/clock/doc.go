// Package clock supplies millisecond timestamps to the debounce core.
//
// Everything downstream of this package works on plain int64 milliseconds, so a
// clock is just something that can answer NowMillis:
//
//	c := clock.New()          // wall-clock base, monotonic progression
//	f := clock.NewFake(1000)  // manual clock for tests
//	f.Advance(250 * time.Millisecond)
//
// Real readings start at the Unix epoch time of construction and then advance by
// the monotonic elapsed time, so they never run backwards when the system clock
// is adjusted.
package clock
