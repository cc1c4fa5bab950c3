package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines the demo's key bindings
type KeyMap struct {
	Filtered   key.Binding
	Unfiltered key.Binding
	Wrapped    key.Binding
	Next       key.Binding
	Prev       key.Binding
	Press      key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Filtered: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "filtered"),
		),
		Unfiltered: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "unfiltered"),
		),
		Wrapped: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "wrapped"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "previous button"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/space", "press focused"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset cooldowns"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
