// Package tui is an interactive demo of the debounce guard: three buttons
// that can be tapped with keys or the mouse, one routed through a marked
// handler, one plain, and one behind an explicit adapter.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/fastclick/internal/clock"
	"github.com/billie-coop/fastclick/internal/debounce"
	"github.com/billie-coop/fastclick/internal/tui/events"
	"github.com/billie-coop/fastclick/internal/tui/styles"
)

// ScopeName is the declaring scope of the demo's marked handlers.
const ScopeName = "MainView"

// FilterID is the marker identity of doClickFilter.
const FilterID = 1

const (
	wrappedName = "wrapped"
	maxLogLines = 200
	statusTTL   = 3 * time.Second
)

// Options configures the demo.
type Options struct {
	// Window is the default cooldown. Markers may override it.
	Window time.Duration

	// Markers declares the MainView scope. doClickFilter is added when the
	// list does not declare FilterID.
	Markers []debounce.Marker

	Theme    string
	Clock    clock.Clock
	Logger   *slog.Logger
	Observer debounce.Observer

	// Events, when set, receives every decision. The model subscribes to
	// it to log dropped activations.
	Events *events.Broker
}

// Stats counts handled and dropped activations per button.
type Stats struct {
	Handled    [buttonCount]int
	Suppressed [buttonCount]int
}

// tap is the event value forwarded to handlers.
type tap struct {
	button Button
	source string
}

type clearStatusMsg struct {
	id int
}

// ManifestMsg carries reloaded marker declarations for the MainView scope.
// A non-nil Err reports a manifest that failed to load or validate; the
// current scope stays in place.
type ManifestMsg struct {
	Markers []debounce.Marker
	Window  time.Duration
	Err     error
}

// Model is the bubbletea model of the demo.
type Model struct {
	width    int
	height   int
	focus    Button
	showHelp bool

	opts    Options
	markers []debounce.Marker
	scope   *debounce.Scope
	wrapped *debounce.Adapter[tap]
	stats   Stats

	eventSub <-chan events.Event
	lines    []string
	viewport viewport.Model
	status      string
	statusError bool
	statusID    int

	keys   KeyMap
	theme  *styles.Theme
	logger *slog.Logger
	now    func() time.Time
}

// New creates the demo model. It fails if the markers reuse an identity.
func New(opts Options) (*Model, error) {
	if opts.Window <= 0 {
		opts.Window = debounce.DefaultWindow
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	m := &Model{
		opts:     opts,
		markers:  withFilterMarker(opts.Markers),
		keys:     DefaultKeyMap(),
		theme:    styles.Lookup(opts.Theme),
		logger:   opts.Logger.With("component", "tui"),
		now:      time.Now,
		viewport: viewport.New(),
	}

	if err := m.declare(); err != nil {
		return nil, err
	}
	if opts.Events != nil {
		m.eventSub = opts.Events.Subscribe(
			events.ActivationSuppressedEvent,
			events.ScopeResetEvent,
			events.StatusMessageEvent,
		)
	}
	return m, nil
}

func withFilterMarker(markers []debounce.Marker) []debounce.Marker {
	markers = slices.Clone(markers)
	if !slices.ContainsFunc(markers, func(mk debounce.Marker) bool { return mk.ID == FilterID }) {
		markers = append(markers, debounce.Mark(FilterID, "doClickFilter"))
	}
	return markers
}

// declare builds the scope and the wrapped adapter with fresh guards. The
// previous scope, if any, is closed only once the new one is valid.
func (m *Model) declare() error {
	scope, err := debounce.NewScope(ScopeName, m.markers, m.debounceOptions()...)
	if err != nil {
		return err
	}
	if m.scope != nil {
		m.scope.Close()
	}
	m.scope = scope
	m.wrapped = debounce.NewAdapter(m.doClickWrapped,
		append(m.debounceOptions(), debounce.WithName(wrappedName))...)
	return nil
}

func (m *Model) debounceOptions() []debounce.Option {
	observers := []debounce.Observer{debounce.ObserverFunc(m.observe), m.opts.Observer}
	if m.opts.Events != nil {
		observers = append(observers, m.opts.Events)
	}
	return []debounce.Option{
		debounce.WithWindow(m.opts.Window),
		debounce.WithClock(m.opts.Clock),
		debounce.WithLogger(m.opts.Logger),
		debounce.WithObserver(debounce.Observers(observers...)),
	}
}

// observe counts dropped activations; handled ones are counted by record.
func (m *Model) observe(_ context.Context, a debounce.Activation) {
	if a.Allowed {
		return
	}
	switch {
	case a.Scope == wrappedName:
		m.stats.Suppressed[ButtonWrapped]++
	case a.Scope == ScopeName && a.Identity == strconv.Itoa(FilterID):
		m.stats.Suppressed[ButtonFiltered]++
	}
}

// Stats returns the activation counters.
func (m *Model) Stats() Stats {
	return m.stats
}

// Scope returns the MainView scope.
func (m *Model) Scope() *debounce.Scope {
	return m.scope
}

// Activate delivers one activation of b, as a key press or click would.
func (m *Model) Activate(b Button, source string) {
	switch b {
	case ButtonFiltered:
		m.doClickFilter(source)
	case ButtonUnfiltered:
		m.doClickNoFilter(source)
	case ButtonWrapped:
		m.wrapped.Handle(tap{button: b, source: source})
	}
}

// doClickFilter handles the filtered button. Its entry check is the one an
// instrumentation step injects for the marker below.
//
//fastclick:guard 1
func (m *Model) doClickFilter(source string) {
	if !m.scope.Enter(FilterID) {
		return
	}
	m.record(ButtonFiltered, source)
}

func (m *Model) doClickNoFilter(source string) {
	m.record(ButtonUnfiltered, source)
}

func (m *Model) doClickWrapped(t tap) {
	m.record(t.button, t.source)
}

func (m *Model) record(b Button, source string) {
	m.stats.Handled[b]++
	m.logger.Info("activation handled", "button", b.String(), "source", source)

	style := m.theme.S().Allowed
	if b == ButtonUnfiltered {
		style = m.theme.S().Plain
	}
	line := fmt.Sprintf("%s  %-10s via %s", m.now().Format("15:04:05.000"), b, source)
	m.appendLog(style.Render(line))
}

func (m *Model) appendLog(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.refreshLog()
}

// Reset discards every cooldown and counter.
func (m *Model) Reset() error {
	if err := m.declare(); err != nil {
		return err
	}
	m.stats = Stats{}
	m.logger.Info("cooldowns reset")
	if m.opts.Events != nil {
		m.opts.Events.Publish(events.Event{Type: events.ScopeResetEvent, Payload: events.ScopePayload{Scope: ScopeName}})
	}
	return nil
}

// Reload redeclares the MainView scope from new markers. On a duplicate
// identity the current scope and its cooldowns are kept.
func (m *Model) Reload(markers []debounce.Marker, window time.Duration) error {
	prevMarkers, prevWindow := m.markers, m.opts.Window
	m.markers = withFilterMarker(markers)
	if window > 0 {
		m.opts.Window = window
	}
	if err := m.declare(); err != nil {
		m.markers, m.opts.Window = prevMarkers, prevWindow
		return err
	}
	m.logger.Info("scope reloaded", "markers", len(m.markers), "window", m.opts.Window)
	return nil
}

func (m *Model) refreshLog() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return m, nil
		}
		if b, ok := m.buttonAt(msg.X, msg.Y); ok {
			m.focus = b
			m.Activate(b, "mouse")
		}

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case events.Event:
		return m, m.handleEvent(msg)

	case ManifestMsg:
		if msg.Err == nil {
			msg.Err = m.Reload(msg.Markers, msg.Window)
		}
		if msg.Err != nil {
			m.logger.Error("manifest reload failed", "error", msg.Err)
			return m, m.setErrorStatus("manifest: " + msg.Err.Error())
		}
		return m, m.setStatus("manifest reloaded")

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusError = false
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Filtered):
		m.focus = ButtonFiltered
		m.Activate(ButtonFiltered, "key")
	case key.Matches(msg, m.keys.Unfiltered):
		m.focus = ButtonUnfiltered
		m.Activate(ButtonUnfiltered, "key")
	case key.Matches(msg, m.keys.Wrapped):
		m.focus = ButtonWrapped
		m.Activate(ButtonWrapped, "key")
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % buttonCount
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus + buttonCount - 1) % buttonCount
	case key.Matches(msg, m.keys.Press):
		m.Activate(m.focus, "key")
	case key.Matches(msg, m.keys.Reset):
		if err := m.Reset(); err != nil {
			m.logger.Error("reset failed", "error", err)
			return m.setErrorStatus("reset failed: " + err.Error())
		}
		return m.setStatus("cooldowns reset")
	}
	return nil
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.status = s
	m.statusError = false
	m.statusID++
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) setErrorStatus(s string) tea.Cmd {
	cmd := m.setStatus(s)
	m.statusError = true
	return cmd
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	// title, subtitle, blank, buttons, stats, blank, panel border, footer
	logHeight := max(3, height-buttonRowY-buttonHeight-6)
	m.viewport = viewport.New(
		viewport.WithWidth(max(10, width-2)),
		viewport.WithHeight(logHeight),
	)
	m.viewport.MouseWheelEnabled = true
	m.refreshLog()
}

// View renders the UI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	s := m.theme.S()

	var b strings.Builder
	b.WriteString(s.Title.Render("fastclick") + "\n")
	b.WriteString(s.Subtitle.Render(fmt.Sprintf("cooldown %s · tap quickly to see repeats dropped", m.opts.Window)) + "\n")
	b.WriteString("\n")
	b.WriteString(m.renderButtons() + "\n")
	b.WriteString(m.renderStats() + "\n")
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(styles.RenderMarkdown(m.theme, helpMarkdown, max(20, m.width-4)))
	} else {
		b.WriteString(s.Panel.Render(m.viewport.View()))
	}
	b.WriteString("\n")

	footer := m.status
	if footer == "" {
		footer = "1/2/3 tap · tab move · enter press · r reset · ? help · q quit"
	}
	if m.statusError {
		b.WriteString(s.Suppressed.Render(footer))
	} else {
		b.WriteString(s.Muted.Render(footer))
	}
	return b.String()
}

func (m *Model) renderStats() string {
	s := m.theme.S()
	parts := make([]string, 0, buttonCount)
	for b := Button(0); b < buttonCount; b++ {
		part := fmt.Sprintf("%s %s", b, s.Allowed.Render(strconv.Itoa(m.stats.Handled[b])))
		if b != ButtonUnfiltered {
			part += "/" + s.Suppressed.Render(strconv.Itoa(m.stats.Suppressed[b]))
		}
		parts = append(parts, part)
	}
	line := s.Muted.Render("handled/dropped  ") + strings.Join(parts, "   ")
	if cooling := m.scope.Cooling(); len(cooling) > 0 {
		ids := make([]string, 0, len(cooling))
		for _, id := range cooling {
			ids = append(ids, "#"+strconv.Itoa(id))
		}
		line += "   " + s.Suppressed.Render("cooling "+strings.Join(ids, " "))
	}
	return line
}

const helpMarkdown = `# fastclick

Each button handles **activations**. Tap a button twice within the cooldown
window and the second tap is dropped.

| Button | Guarded by |
|---|---|
| Filtered | marker identity 1 in scope MainView |
| Unfiltered | nothing; every tap is handled |
| Wrapped | its own adapter guard |

The first tap is never dropped. Counters show handled/dropped per button.
Press **r** to discard every cooldown, **?** to close this help.
`
