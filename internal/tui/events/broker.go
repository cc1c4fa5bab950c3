// Package events distributes activation and UI events to subscribers.
// Delivery never blocks the publisher: a subscriber whose buffer is full
// misses the event and the broker counts the drop.
package events

import (
	"sync"
	"sync/atomic"
)

// AllEvents subscribes to every event type.
const AllEvents EventType = "*"

const defaultBufferSize = 64

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
	dropped     atomic.Int64
}

// NewBroker creates a new event broker. A non-positive bufferSize uses the
// default.
func NewBroker(bufferSize int) *Broker {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to specific event types
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)

	if len(eventTypes) == 0 {
		eventTypes = []EventType{AllEvents}
	}

	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broker) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var target chan Event
	for eventType, subscribers := range b.subscribers {
		for i, sub := range subscribers {
			if sub == ch {
				target = sub
				b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
				break
			}
		}
		if len(b.subscribers[eventType]) == 0 {
			delete(b.subscribers, eventType)
		}
	}
	if target != nil {
		close(target)
	}
}

// Publish sends an event to all subscribers
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	b.send(b.subscribers[event.Type], event)
	if event.Type != AllEvents {
		b.send(b.subscribers[AllEvents], event)
	}
}

func (b *Broker) send(subscribers []chan Event, event Event) {
	for _, ch := range subscribers {
		select {
		case ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped reports how many deliveries were skipped on full buffers.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Clear removes all subscriptions
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]bool)
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}

	b.subscribers = make(map[EventType][]chan Event)
}
