package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClockIsAnchoredAndMonotonic(t *testing.T) {
	before := time.Now().UnixMilli()
	c := New()

	first := c.NowMillis()
	assert.GreaterOrEqual(t, first, before)

	prev := first
	for i := 0; i < 1000; i++ {
		now := c.NowMillis()
		require.GreaterOrEqual(t, now, prev)
		prev = now
	}
}

func TestFakeClock(t *testing.T) {
	f := NewFake(1000)
	assert.Equal(t, int64(1000), f.NowMillis())

	assert.Equal(t, int64(1250), f.Advance(250*time.Millisecond))
	assert.Equal(t, int64(1250), f.NowMillis())

	f.Set(900)
	assert.Equal(t, int64(900), f.NowMillis())
}

func TestFunc(t *testing.T) {
	var c Clock = Func(func() int64 { return 42 })
	assert.Equal(t, int64(42), c.NowMillis())
}

func TestSteppingClockYieldsDistinctReadings(t *testing.T) {
	s := NewStepping(100, time.Millisecond)
	assert.Equal(t, int64(100), s.NowMillis())
	assert.Equal(t, int64(101), s.NowMillis())

	const readers = 64
	seen := make(chan int64, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- s.NowMillis()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]struct{})
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, readers)
}
