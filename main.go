// Package main is the entry point for the fastclick demo.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/fastclick/internal/clock"
	"github.com/billie-coop/fastclick/internal/config"
	"github.com/billie-coop/fastclick/internal/manifest"
	"github.com/billie-coop/fastclick/internal/telemetry"
	"github.com/billie-coop/fastclick/internal/tui"
	"github.com/billie-coop/fastclick/internal/tui/events"
	"github.com/billie-coop/fastclick/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfgManager := config.NewManager(wd)
	if err := cfgManager.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg := cfgManager.Get()

	logFile, err := os.OpenFile(cfgManager.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := tui.Options{
		Window: cfg.Window(),
		Theme:  cfg.Theme,
		Clock:  clock.New(),
		Logger: logger,
	}

	manifestPath := cfgManager.ManifestPath()
	if manifestPath != "" {
		loaded := loadManifest(manifestPath, logger)
		if loaded.Err != nil {
			return loaded.Err
		}
		opts.Markers = loaded.Markers
		if loaded.Window > 0 {
			opts.Window = loaded.Window
		}
	}

	recorder, err := telemetry.NewDefaultRecorder()
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}
	opts.Observer = recorder

	broker := events.NewBroker(0)
	defer broker.Clear()
	opts.Events = broker

	m, err := tui.New(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if manifestPath != "" {
		w, err := watcher.New(watcher.DefaultDelay, func([]string) {
			reloadManifest(manifestPath, logger, broker, p.Send)
		}, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Watch(manifestPath); err != nil {
			return err
		}
	}

	_, err = p.Run()
	return err
}

// loadManifest reads the MainView declarations from the manifest at path.
func loadManifest(path string, logger *slog.Logger) tui.ManifestMsg {
	mf, err := manifest.Load(path)
	if err == nil {
		err = mf.Validate()
	}
	if err != nil {
		return tui.ManifestMsg{Err: err}
	}
	logger.Info("manifest loaded", "path", path, "scopes", len(mf.Scopes))

	decl, ok := mf.Scope(tui.ScopeName)
	if !ok {
		return tui.ManifestMsg{}
	}
	return tui.ManifestMsg{Markers: decl.DebounceMarkers(), Window: decl.Window()}
}

// reloadManifest hands a changed manifest to the program. A manifest that
// fails to load is reported as an error status and the running scope is
// left alone.
func reloadManifest(path string, logger *slog.Logger, broker *events.Broker, send func(tea.Msg)) {
	msg := loadManifest(path, logger)
	if msg.Err != nil {
		logger.Error("manifest reload failed", "path", path, "error", msg.Err)
		broker.Publish(events.Event{
			Type: events.StatusMessageEvent,
			Payload: events.StatusMessagePayload{
				Message: "manifest: " + msg.Err.Error(),
				Type:    events.StatusError,
			},
		})
		return
	}
	send(msg)
}
