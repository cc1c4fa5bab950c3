package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fastclick/internal/debounce"
)

func TestBrokerDeliversByType(t *testing.T) {
	b := NewBroker(4)
	suppressed := b.Subscribe(ActivationSuppressedEvent)
	all := b.Subscribe()

	b.Observe(context.Background(), debounce.Activation{Scope: "MainView", Identity: "1", Allowed: false, At: 100})
	b.Observe(context.Background(), debounce.Activation{Scope: "MainView", Identity: "1", Allowed: true, At: 700})

	ev := <-suppressed
	assert.Equal(t, ActivationSuppressedEvent, ev.Type)
	payload, ok := ev.Payload.(ActivationPayload)
	require.True(t, ok)
	assert.Equal(t, int64(100), payload.Activation.At)
	assert.Empty(t, suppressed)

	assert.Equal(t, ActivationSuppressedEvent, (<-all).Type)
	assert.Equal(t, ActivationAllowedEvent, (<-all).Type)
}

func TestBrokerDropsWhenFull(t *testing.T) {
	b := NewBroker(1)
	ch := b.Subscribe(StatusMessageEvent)

	b.Publish(Event{Type: StatusMessageEvent, Payload: StatusMessagePayload{Message: "one"}})
	b.Publish(Event{Type: StatusMessageEvent, Payload: StatusMessagePayload{Message: "two"}})

	assert.Equal(t, int64(1), b.Dropped())
	ev := <-ch
	assert.Equal(t, "one", ev.Payload.(StatusMessagePayload).Message)
}

func TestBrokerUnsubscribeClosesOnce(t *testing.T) {
	b := NewBroker(0)
	ch := b.Subscribe(ActivationAllowedEvent, ActivationSuppressedEvent)

	b.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic on the closed channel.
	b.Publish(Event{Type: ActivationAllowedEvent})
	b.Clear()
}

func TestBrokerClear(t *testing.T) {
	b := NewBroker(0)
	a := b.Subscribe(ScopeResetEvent, StatusMessageEvent)
	c := b.Subscribe()

	b.Clear()
	_, open := <-a
	assert.False(t, open)
	_, open = <-c
	assert.False(t, open)
}
