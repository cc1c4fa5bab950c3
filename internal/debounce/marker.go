package debounce

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Marker attaches a stable identity to a handler method. It is plain data:
// instrumentation tooling reads it and injects Scope.Enter at the method's
// entry point.
type Marker struct {
	ID     int
	Method string

	// Window overrides the scope's window for this identity when positive.
	Window time.Duration
}

// Mark creates a marker with the scope's default window.
func Mark(id int, method string) Marker {
	return Marker{ID: id, Method: method}
}

func (m Marker) String() string {
	if m.Method == "" {
		return fmt.Sprintf("#%d", m.ID)
	}
	return fmt.Sprintf("%s#%d", m.Method, m.ID)
}

// ValidateMarkers fails with a DuplicateIdentityError naming both methods when
// two markers share an ID.
func ValidateMarkers(scope string, markers []Marker) error {
	seen := make(map[int]Marker, len(markers))
	for _, m := range markers {
		if prev, dup := seen[m.ID]; dup {
			return &DuplicateIdentityError{
				Scope:    scope,
				Identity: m.ID,
				First:    prev.Method,
				Second:   m.Method,
			}
		}
		seen[m.ID] = m
	}
	return nil
}

// Scope holds the guards of one declaring unit, such as a view or a
// component instance.
type Scope struct {
	id      uuid.UUID
	reg     *Registry[int]
	markers map[int]Marker
	logger  *slog.Logger
}

// NewScope validates markers and creates a scope with one guard per marker.
// A duplicate identity fails construction.
func NewScope(name string, markers []Marker, opts ...Option) (*Scope, error) {
	reg := NewRegistry[int](name, opts...)
	if err := ValidateMarkers(name, markers); err != nil {
		reg.opts.logger.Error("invalid marker declaration", "error", err)
		return nil, fmt.Errorf("declare scope %q: %w", name, err)
	}

	s := &Scope{
		id:      uuid.New(),
		reg:     reg,
		markers: make(map[int]Marker, len(markers)),
	}
	s.logger = reg.opts.logger.With("scope_id", s.id.String())
	for _, m := range markers {
		s.markers[m.ID] = m
		s.GuardFor(m.ID)
	}
	s.logger.Debug("scope declared", "markers", len(markers))
	return s, nil
}

// ID returns the instance identifier, distinct for every NewScope call.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Name returns the declared scope name.
func (s *Scope) Name() string {
	return s.reg.Name()
}

// Markers returns the declared markers ordered by ID.
func (s *Scope) Markers() []Marker {
	out := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Marker) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Marker returns the marker declared for id.
func (s *Scope) Marker(id int) (Marker, bool) {
	m, ok := s.markers[id]
	return m, ok
}

// GuardFor returns the guard for id. Undeclared identities are created
// lazily with the scope's window.
func (s *Scope) GuardFor(id int) *Guard {
	if m, ok := s.markers[id]; ok && m.Window > 0 {
		return s.reg.guardWithWindow(id, m.Window)
	}
	return s.reg.GuardFor(id)
}

// Enter is the check injected at the top of a marked method. A false result
// means the method must return without any effect.
func (s *Scope) Enter(id int) bool {
	return s.reg.allow(id, s.GuardFor(id))
}

// WeaveFunc returns fn guarded by identity id.
func (s *Scope) WeaveFunc(id int, fn func()) func() {
	return func() {
		if !s.Enter(id) {
			return
		}
		fn()
	}
}

// Weave returns fn guarded by identity id in scope s. It shares state with
// Enter and every other weave of the same identity.
func Weave[E any](s *Scope, id int, fn func(E)) func(E) {
	return func(ev E) {
		if !s.Enter(id) {
			return
		}
		fn(ev)
	}
}

// Len returns the number of live guards.
func (s *Scope) Len() int {
	return s.reg.Len()
}

// Identities returns the identities that have a guard, ascending.
func (s *Scope) Identities() []int {
	ids := s.reg.Identities()
	slices.Sort(ids)
	return ids
}

// Cooling returns the identities whose last allowed activation is less than
// their window ago, ascending. A repeat of one of these is suppressed.
func (s *Scope) Cooling() []int {
	now := s.reg.opts.clock.NowMillis()
	var ids []int
	s.reg.Range(func(id int, g *Guard) bool {
		last := g.LastFire()
		if last != 0 && now > last && now-last < g.window {
			ids = append(ids, id)
		}
		return true
	})
	slices.Sort(ids)
	return ids
}

// Close discards every guard. No guard outlives its scope; a scope used after
// Close starts with fresh guards.
func (s *Scope) Close() {
	ids := s.Identities()
	s.reg.Reset()
	s.logger.Debug("scope closed", "identities", ids)
}
