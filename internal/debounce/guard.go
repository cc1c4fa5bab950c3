package debounce

import (
	"sync"
	"time"

	"github.com/billie-coop/fastclick/internal/clock"
)

// Guard decides whether an activation falls inside the cooldown window of the
// previous allowed one.
type Guard struct {
	mu       sync.Mutex
	lastFire int64
	window   int64
}

// NewGuard creates a guard with the given window. Non-positive or
// sub-millisecond windows select DefaultWindow.
func NewGuard(window time.Duration) *Guard {
	ms := window.Milliseconds()
	if ms <= 0 {
		ms = DefaultWindow.Milliseconds()
	}
	return &Guard{window: ms}
}

// TryFire reports whether an activation at now (milliseconds) is allowed and,
// if so, records it. A call less than the window after the last allowed one
// is suppressed. A zero or negative delta is allowed and restarts the
// cooldown from now, so a clock that went backwards is treated as fresh state.
func (g *Guard) TryFire(now int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tryFireLocked(now)
}

// Allow reads c while holding the guard's lock and applies TryFire to the
// reading.
func (g *Guard) Allow(c clock.Clock) bool {
	allowed, _ := g.allowAt(c)
	return allowed
}

func (g *Guard) allowAt(c clock.Clock) (bool, int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := c.NowMillis()
	return g.tryFireLocked(now), now
}

func (g *Guard) tryFireLocked(now int64) bool {
	delta := now - g.lastFire
	if delta > 0 && delta < g.window {
		return false
	}
	g.lastFire = now
	return true
}

// Window returns the cooldown window.
func (g *Guard) Window() time.Duration {
	return time.Duration(g.window) * time.Millisecond
}

// LastFire returns the timestamp of the most recent allowed activation, or 0.
func (g *Guard) LastFire() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastFire
}
