package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/fastclick/internal/tui/events"
)

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	if m.eventSub == nil {
		return nil
	}
	sub := m.eventSub
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	cmds := []tea.Cmd{m.listenForEvents()}

	switch event.Type {
	case events.ActivationSuppressedEvent:
		if payload, ok := event.Payload.(events.ActivationPayload); ok {
			a := payload.Activation
			name := a.Scope
			if a.Identity != "" {
				name += "#" + a.Identity
			}
			line := fmt.Sprintf("%s  %-10s dropped", time.UnixMilli(a.At).Format("15:04:05.000"), name)
			m.appendLog(m.theme.S().Suppressed.Render(line))
		}

	case events.ScopeResetEvent:
		if payload, ok := event.Payload.(events.ScopePayload); ok {
			m.appendLog(m.theme.S().Muted.Render("reset " + payload.Scope))
		}

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			if payload.Type == events.StatusError {
				cmds = append(cmds, m.setErrorStatus(payload.Message))
			} else {
				cmds = append(cmds, m.setStatus(payload.Message))
			}
		}
	}

	return tea.Batch(cmds...)
}
