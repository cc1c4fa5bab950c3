package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fastclick/internal/debounce"
)

const sample = `
scopes:
  - name: MainView
    markers:
      - id: 1
        method: doClickFilter
      - id: 2
        method: doClickSave
        window_ms: 1000
  - name: SettingsView
    window_ms: 250
    markers:
      - id: 1
        method: doClickApply
`

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, m.Scopes, 2)

	scopes, err := m.Build(debounce.WithWindow(400 * time.Millisecond))
	require.NoError(t, err)
	require.Len(t, scopes, 2)

	mainView := scopes["MainView"]
	require.NotNil(t, mainView)
	assert.Equal(t, 400*time.Millisecond, mainView.GuardFor(1).Window())
	assert.Equal(t, time.Second, mainView.GuardFor(2).Window())

	settings := scopes["SettingsView"]
	require.NotNil(t, settings)
	assert.Equal(t, 250*time.Millisecond, settings.GuardFor(1).Window())

	mk, ok := settings.Marker(1)
	require.True(t, ok)
	assert.Equal(t, "doClickApply", mk.Method)
}

func TestBuildRejectsDuplicateIdentity(t *testing.T) {
	m, err := Parse([]byte(`
scopes:
  - name: MainView
    markers:
      - {id: 1, method: doClickFilter}
      - {id: 1, method: doClickSave}
`))
	require.NoError(t, err)

	_, err = m.Build()
	require.ErrorIs(t, err, debounce.ErrDuplicateIdentity)
	assert.Contains(t, err.Error(), "doClickFilter and doClickSave")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"bad yaml", "scopes: [", "parse manifest YAML"},
		{"missing name", "scopes:\n  - markers: []\n", "name is required"},
		{"duplicate scope", "scopes:\n  - name: a\n  - name: a\n", "duplicate scope name"},
		{"negative scope window", "scopes:\n  - name: a\n    window_ms: -1\n", "must not be negative"},
		{"negative marker window", "scopes:\n  - name: a\n    markers:\n      - {id: 1, window_ms: -5}\n", "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Scopes, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScopeLookupAndValidate(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	decl, ok := m.Scope("SettingsView")
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, decl.Window())
	assert.Equal(t, []debounce.Marker{debounce.Mark(1, "doClickApply")}, decl.DebounceMarkers())

	_, ok = m.Scope("Nowhere")
	assert.False(t, ok)

	m.Scopes[0].Markers = append(m.Scopes[0].Markers, MarkerDecl{ID: 2, Method: "doClickShare"})
	err = m.Validate()
	require.ErrorIs(t, err, debounce.ErrDuplicateIdentity)
	assert.Contains(t, err.Error(), `scope "MainView"`)
}
