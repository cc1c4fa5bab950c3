package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is the quiet period used when New is given a non-positive
// delay.
const DefaultDelay = 250 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher: closed")

// FileWatcher monitors a set of files and reports changes with trailing
// debouncing: rapid changes are collected and onChange runs once after
// things settle.
type FileWatcher struct {
	debounceDelay time.Duration
	fsw           *fsnotify.Watcher
	logger        *slog.Logger

	mu      sync.Mutex
	targets map[string]struct{}
	dirs    map[string]struct{}
	closed  bool

	// Debouncing state
	timer        *time.Timer
	timerMu      sync.Mutex
	pendingPaths map[string]struct{}

	// Callback when changes are ready
	onChange   func([]string)
	callbackMu sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a file watcher. onChange is called with the changed paths
// after debounceDelay passes without another change. onChange must not call Close.
func New(debounceDelay time.Duration, onChange func([]string), logger *slog.Logger) (*FileWatcher, error) {
	if debounceDelay <= 0 {
		debounceDelay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	w := &FileWatcher{
		debounceDelay: debounceDelay,
		fsw:           fsw,
		logger:        logger.With("component", "watcher"),
		targets:       make(map[string]struct{}),
		dirs:          make(map[string]struct{}),
		pendingPaths:  make(map[string]struct{}),
		onChange:      onChange,
		done:          make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Watch starts reporting changes to path.
func (w *FileWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = struct{}{}
	}
	w.targets[abs] = struct{}{}
	w.logger.Debug("watching file", "path", abs)
	return nil
}

// FileChanged notifies the watcher of a change to path. Paths that are not
// watched are ignored. Multiple rapid calls are debounced into a single
// onChange callback.
func (w *FileWatcher) FileChanged(path string) {
	abs, err := filepath.Abs(path)
	if err != nil || !w.isTarget(abs) {
		return
	}

	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	w.pendingPaths[abs] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.processPending)
}

// Close stops the watcher. Pending changes are discarded: once Close returns,
// onChange is not called again.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pendingPaths = make(map[string]struct{})
	w.timerMu.Unlock()

	// Wait out a callback that had already taken the pending paths.
	w.callbackMu.Lock()
	w.callbackMu.Unlock()

	return err
}

func (w *FileWatcher) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *FileWatcher) isTarget(abs string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.targets[abs]
	return ok && !w.closed
}

func (w *FileWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.FileChanged(ev.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// processPending is called after the debounce delay and hands the
// accumulated paths to onChange.
func (w *FileWatcher) processPending() {
	w.timerMu.Lock()

	paths := make([]string, 0, len(w.pendingPaths))
	for path := range w.pendingPaths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	w.pendingPaths = make(map[string]struct{})
	w.timer = nil

	w.timerMu.Unlock()

	if len(paths) == 0 || w.onChange == nil {
		return
	}

	// Callback runs outside timerMu. callbackMu orders it against Close.
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	if w.isClosed() {
		return
	}
	w.onChange(paths)
}
