package csync

import "sync"

// Map is a thread-safe map implementation with generic types.
// It uses a RWMutex for concurrent read access and exclusive write access.
type Map[K comparable, V any] struct {
	data map[K]V
	mu   sync.RWMutex
}

// NewMap creates a new thread-safe map
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key, returns the value and whether it exists
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	return value, exists
}

// LoadOrStore returns the existing value for key. If there is none, it calls
// create under the write lock, stores the result and returns it with
// created set. create runs at most once per key.
func (m *Map[K, V]) LoadOrStore(key K, create func() V) (value V, created bool) {
	if value, ok := m.Get(key); ok {
		return value, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if value, ok := m.data[key]; ok {
		return value, false
	}
	value = create()
	m.data[key] = value
	return value, true
}

// Len returns the number of key-value pairs in the map
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Keys returns a slice of all keys in the map
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]K, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys
}

// Range iterates over all key-value pairs in the map.
// The function f is called for each pair. If f returns false, iteration stops.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key, value := range m.data {
		if !f(key, value) {
			break
		}
	}
}

// Clear removes all key-value pairs from the map
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[K]V)
}
