package debounce

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fastclick/internal/clock"
)

func TestRegistryGuardForIsMemoized(t *testing.T) {
	r := NewRegistry[string]("view")
	a := r.GuardFor("save")
	assert.Same(t, a, r.GuardFor("save"))
	assert.NotSame(t, a, r.GuardFor("load"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "view", r.Name())
}

func TestRegistryGuardForConcurrentFirstUse(t *testing.T) {
	r := NewRegistry[int]("view")

	const workers = 50
	got := make([]*Guard, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.GuardFor(1)
		}(i)
	}
	wg.Wait()

	for _, g := range got {
		assert.Same(t, got[0], g)
	}
}

func TestRegistryIdentityIsolation(t *testing.T) {
	c := clock.NewFake(10_000)
	r := NewRegistry[int]("view", WithClock(c))

	assert.True(t, r.Allow(1))
	assert.True(t, r.Allow(2), "firing 1 must not suppress 2")

	c.Advance(100 * time.Millisecond)
	assert.False(t, r.Allow(1))
	assert.False(t, r.Allow(2))

	c.Advance(DefaultWindow - 100*time.Millisecond)
	assert.True(t, r.Allow(1))
	assert.True(t, r.Allow(2))
}

func TestRegistryUsesConfiguredWindow(t *testing.T) {
	r := NewRegistry[string]("view", WithWindow(2*time.Second))
	assert.Equal(t, 2*time.Second, r.GuardFor("x").Window())
}

func TestRegistryResetDiscardsGuards(t *testing.T) {
	c := clock.NewFake(10_000)
	r := NewRegistry[int]("view", WithClock(c))
	before := r.GuardFor(1)
	require.True(t, r.Allow(1))

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.Allow(1), "fresh guard after reset")
	assert.NotSame(t, before, r.GuardFor(1))
}

func TestRegistryIdentitiesAndRange(t *testing.T) {
	r := NewRegistry[string]("view")
	a := r.GuardFor("save")
	r.GuardFor("share")

	assert.ElementsMatch(t, []string{"save", "share"}, r.Identities())

	seen := map[string]*Guard{}
	r.Range(func(id string, g *Guard) bool {
		seen[id] = g
		return true
	})
	require.Len(t, seen, 2)
	assert.Same(t, a, seen["save"])

	visited := 0
	r.Range(func(string, *Guard) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestRegistryObserver(t *testing.T) {
	c := clock.NewFake(10_000)
	var got []Activation
	obs := ObserverFunc(func(_ context.Context, a Activation) {
		got = append(got, a)
	})
	r := NewRegistry[int]("view", WithClock(c), WithObserver(obs))

	r.Allow(3)
	c.Advance(100 * time.Millisecond)
	r.Allow(3)

	require.Len(t, got, 2)
	assert.Equal(t, Activation{Scope: "view", Identity: "3", Allowed: true, At: 10_000}, got[0])
	assert.False(t, got[1].Allowed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantDup string
	}{
		{name: "empty"},
		{name: "unique", ids: []string{"a", "b", "c"}},
		{name: "duplicate", ids: []string{"a", "b", "a"}, wantDup: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry[string]("view").Validate(tt.ids)
			if tt.wantDup == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrDuplicateIdentity)
			var dup *DuplicateIdentityError
			require.True(t, errors.As(err, &dup))
			assert.Equal(t, tt.wantDup, dup.Identity)
			assert.Equal(t, "view", dup.Scope)
		})
	}
}
