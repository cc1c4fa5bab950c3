package tui

import (
	"github.com/charmbracelet/lipgloss/v2"
)

// Button identifies one of the demo's activation targets.
type Button int

const (
	ButtonFiltered Button = iota
	ButtonUnfiltered
	ButtonWrapped
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonFiltered:
		return "filtered"
	case ButtonUnfiltered:
		return "unfiltered"
	case ButtonWrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

func (b Button) label() string {
	switch b {
	case ButtonFiltered:
		return "1  Filtered"
	case ButtonUnfiltered:
		return "2  Unfiltered"
	default:
		return "3  Wrapped"
	}
}

// Button row placement: below the title, the subtitle and a blank line.
const (
	buttonRowY   = 3
	buttonHeight = 3
	buttonGap    = 1
)

// zone is the horizontal extent of a rendered button.
type zone struct {
	button Button
	x0, x1 int
}

func (m *Model) buttonStyle(b Button) lipgloss.Style {
	if b == m.focus {
		return m.theme.S().ButtonFocused
	}
	return m.theme.S().Button
}

func (m *Model) renderButtons() string {
	parts := make([]string, 0, 2*int(buttonCount))
	for b := Button(0); b < buttonCount; b++ {
		if b > 0 {
			parts = append(parts, lipgloss.NewStyle().Width(buttonGap).Render(""))
		}
		parts = append(parts, m.buttonStyle(b).Render(b.label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) buttonZones() []zone {
	zones := make([]zone, 0, buttonCount)
	x := 0
	for b := Button(0); b < buttonCount; b++ {
		w := lipgloss.Width(m.buttonStyle(b).Render(b.label()))
		zones = append(zones, zone{button: b, x0: x, x1: x + w})
		x += w + buttonGap
	}
	return zones
}

// buttonAt maps a screen cell to the button drawn there.
func (m *Model) buttonAt(x, y int) (Button, bool) {
	if y < buttonRowY || y >= buttonRowY+buttonHeight {
		return 0, false
	}
	for _, z := range m.buttonZones() {
		if x >= z.x0 && x < z.x1 {
			return z.button, true
		}
	}
	return 0, false
}
