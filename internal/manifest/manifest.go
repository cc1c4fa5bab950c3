// Package manifest loads a registration table of debounce scopes and markers
// from YAML, so marker identities can be declared outside the handler code
// and validated once at startup.
//
//	scopes:
//	  - name: MainView
//	    window_ms: 500
//	    markers:
//	      - id: 1
//	        method: doClickFilter
//	      - id: 2
//	        method: doClickSave
//	        window_ms: 1000
package manifest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/billie-coop/fastclick/internal/debounce"
)

// ErrDuplicateScope is returned when two scopes share a name.
var ErrDuplicateScope = errors.New("duplicate scope name")

// Manifest is the decoded registration table.
type Manifest struct {
	Scopes []ScopeDecl `yaml:"scopes"`
}

// ScopeDecl declares one scope.
type ScopeDecl struct {
	Name     string       `yaml:"name"`
	WindowMs int64        `yaml:"window_ms,omitempty"`
	Markers  []MarkerDecl `yaml:"markers"`
}

// MarkerDecl declares one marked method.
type MarkerDecl struct {
	ID       int    `yaml:"id"`
	Method   string `yaml:"method"`
	WindowMs int64  `yaml:"window_ms,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest and checks its structure. Identity uniqueness is
// checked by Build.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	names := make(map[string]struct{}, len(m.Scopes))
	for i, s := range m.Scopes {
		if s.Name == "" {
			return nil, fmt.Errorf("scope %d: name is required", i)
		}
		if _, dup := names[s.Name]; dup {
			return nil, fmt.Errorf("scope %q: %w", s.Name, ErrDuplicateScope)
		}
		names[s.Name] = struct{}{}
		if s.WindowMs < 0 {
			return nil, fmt.Errorf("scope %q: window_ms must not be negative", s.Name)
		}
		for _, mk := range s.Markers {
			if mk.WindowMs < 0 {
				return nil, fmt.Errorf("scope %q marker %d: window_ms must not be negative", s.Name, mk.ID)
			}
		}
	}
	return &m, nil
}

// Scope returns the declaration named name.
func (m *Manifest) Scope(name string) (ScopeDecl, bool) {
	for _, s := range m.Scopes {
		if s.Name == name {
			return s, true
		}
	}
	return ScopeDecl{}, false
}

// Validate checks marker identity uniqueness in every scope without building
// any guards.
func (m *Manifest) Validate() error {
	for _, s := range m.Scopes {
		if err := debounce.ValidateMarkers(s.Name, s.DebounceMarkers()); err != nil {
			return fmt.Errorf("manifest: %w", err)
		}
	}
	return nil
}

// Window returns the scope-level window, or 0 when unset.
func (s ScopeDecl) Window() time.Duration {
	return time.Duration(s.WindowMs) * time.Millisecond
}

// DebounceMarkers converts the marker declarations of s.
func (s ScopeDecl) DebounceMarkers() []debounce.Marker {
	out := make([]debounce.Marker, 0, len(s.Markers))
	for _, mk := range s.Markers {
		out = append(out, debounce.Marker{
			ID:     mk.ID,
			Method: mk.Method,
			Window: time.Duration(mk.WindowMs) * time.Millisecond,
		})
	}
	return out
}

// Build creates one debounce scope per declaration. opts apply to every
// scope; a scope-level window_ms overrides WithWindow. A duplicate marker
// identity fails the whole build with a debounce.DuplicateIdentityError.
func (m *Manifest) Build(opts ...debounce.Option) (map[string]*debounce.Scope, error) {
	scopes := make(map[string]*debounce.Scope, len(m.Scopes))
	for _, decl := range m.Scopes {
		scopeOpts := opts
		if decl.WindowMs > 0 {
			scopeOpts = append(append([]debounce.Option{}, opts...), debounce.WithWindow(decl.Window()))
		}
		s, err := debounce.NewScope(decl.Name, decl.DebounceMarkers(), scopeOpts...)
		if err != nil {
			return nil, err
		}
		scopes[decl.Name] = s
	}
	return scopes, nil
}
