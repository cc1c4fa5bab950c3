package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns the current time in milliseconds.
type Clock interface {
	NowMillis() int64
}

// Func adapts a plain function to the Clock interface.
type Func func() int64

// NowMillis calls f.
func (f Func) NowMillis() int64 {
	return f()
}

// Real is a monotonic clock anchored to the wall clock at construction.
type Real struct {
	base  int64
	start time.Time
}

// New creates a real clock.
func New() *Real {
	start := time.Now()
	return &Real{
		base:  start.UnixMilli(),
		start: start,
	}
}

// NowMillis returns the anchor plus the monotonic time elapsed since New.
func (r *Real) NowMillis() int64 {
	return r.base + time.Since(r.start).Milliseconds()
}

// Fake is a manually driven clock. It is safe for concurrent use.
type Fake struct {
	ms atomic.Int64
}

// NewFake creates a fake clock reading ms.
func NewFake(ms int64) *Fake {
	f := &Fake{}
	f.ms.Store(ms)
	return f
}

// NowMillis returns the current fake reading.
func (f *Fake) NowMillis() int64 {
	return f.ms.Load()
}

// Set moves the clock to ms. Moving backwards is allowed so tests can
// exercise clock regression.
func (f *Fake) Set(ms int64) {
	f.ms.Store(ms)
}

// Advance moves the clock forward by d and returns the new reading.
func (f *Fake) Advance(d time.Duration) int64 {
	return f.ms.Add(d.Milliseconds())
}

// Stepping advances by a fixed step on every read. Concurrent readers each
// observe a distinct value.
type Stepping struct {
	ms   atomic.Int64
	step int64
}

// NewStepping creates a clock whose first reading is start.
func NewStepping(start int64, step time.Duration) *Stepping {
	s := &Stepping{step: step.Milliseconds()}
	s.ms.Store(start - s.step)
	return s
}

// NowMillis advances the clock by one step and returns the new reading.
func (s *Stepping) NowMillis() int64 {
	return s.ms.Add(s.step)
}

var (
	_ Clock = (*Real)(nil)
	_ Clock = (*Fake)(nil)
	_ Clock = (*Stepping)(nil)
	_ Clock = Func(nil)
)
