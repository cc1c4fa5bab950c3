// Package csync provides thread-safe concurrent data structures.
//
// Map is a generic RWMutex-guarded map with an atomic get-or-create, which is
// what the debounce registry needs to hand out one guard per identity:
//
//	guards := csync.NewMap[int, *Guard]()
//	g, created := guards.LoadOrStore(1, func() *Guard { return NewGuard() })
//
// All operations are safe to call from multiple goroutines.
package csync
