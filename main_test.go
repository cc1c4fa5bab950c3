package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billie-coop/fastclick/internal/tui"
	"github.com/billie-coop/fastclick/internal/tui/events"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReloadManifestSendsMarkers(t *testing.T) {
	path := writeManifest(t, `
scopes:
  - name: MainView
    window_ms: 800
    markers:
      - id: 1
        method: doClickFilter
      - id: 2
        method: doClickSave
`)
	broker := events.NewBroker(0)
	status := broker.Subscribe(events.StatusMessageEvent)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var sent []tea.Msg
	reloadManifest(path, logger, broker, func(msg tea.Msg) { sent = append(sent, msg) })

	require.Len(t, sent, 1)
	msg, ok := sent[0].(tui.ManifestMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Len(t, msg.Markers, 2)
	assert.Equal(t, int64(800), msg.Window.Milliseconds())
	assert.Empty(t, status)
}

func TestReloadManifestPublishesLoadErrors(t *testing.T) {
	path := writeManifest(t, `
scopes:
  - name: MainView
    markers:
      - id: 2
        method: doClickSave
      - id: 2
        method: doClickShare
`)
	broker := events.NewBroker(0)
	status := broker.Subscribe(events.StatusMessageEvent)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var sent []tea.Msg
	reloadManifest(path, logger, broker, func(msg tea.Msg) { sent = append(sent, msg) })

	assert.Empty(t, sent)
	require.Len(t, status, 1)
	payload, ok := (<-status).Payload.(events.StatusMessagePayload)
	require.True(t, ok)
	assert.Equal(t, events.StatusError, payload.Type)
	assert.Contains(t, payload.Message, "declared more than once")
}
