// Package styles holds the demo's color themes and lipgloss styles.
package styles

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

// Theme is a named palette.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	BgSubtle color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgInverted color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Warning color.Color
	Error   color.Color

	styles *Styles
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	Panel         lipgloss.Style

	Allowed    lipgloss.Style
	Suppressed lipgloss.Style
	Plain      lipgloss.Style
}

// NewFireTheme is the default theme.
func NewFireTheme() *Theme {
	return &Theme{
		Name:   "fire",
		IsDark: true,

		Primary:   lipgloss.Color("#C0392B"),
		Secondary: lipgloss.Color("#F4D03F"),
		Accent:    lipgloss.Color("#F39C12"),

		BgSubtle: lipgloss.Color("#3D566E"),

		FgBase:     lipgloss.Color("#f5f6fa"),
		FgMuted:    lipgloss.Color("#a0a0a0"),
		FgInverted: lipgloss.Color("#1e1e1e"),

		Border:      lipgloss.Color("#5D6D7E"),
		BorderFocus: lipgloss.Color("#F39C12"),

		Success: lipgloss.Color("#27AE60"),
		Warning: lipgloss.Color("#F39C12"),
		Error:   lipgloss.Color("#E74C3C"),
	}
}

// NewMonoTheme uses the terminal's 256-color grays only.
func NewMonoTheme() *Theme {
	return &Theme{
		Name:   "mono",
		IsDark: true,

		Primary:   lipgloss.Color("255"),
		Secondary: lipgloss.Color("250"),
		Accent:    lipgloss.Color("255"),

		BgSubtle: lipgloss.Color("238"),

		FgBase:     lipgloss.Color("252"),
		FgMuted:    lipgloss.Color("244"),
		FgInverted: lipgloss.Color("232"),

		Border:      lipgloss.Color("241"),
		BorderFocus: lipgloss.Color("255"),

		Success: lipgloss.Color("250"),
		Warning: lipgloss.Color("246"),
		Error:   lipgloss.Color("242"),
	}
}

// Lookup returns the theme named name, falling back to fire.
func Lookup(name string) *Theme {
	switch name {
	case "mono":
		return NewMonoTheme()
	default:
		return NewFireTheme()
	}
}

// S returns the theme's styles, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	button := base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2)

	return &Styles{
		Title:    base.Foreground(t.Accent).Bold(true),
		Subtitle: base.Foreground(t.Secondary),
		Muted:    base.Foreground(t.FgMuted),

		Button: button,
		ButtonFocused: button.
			BorderForeground(t.BorderFocus).
			Foreground(t.Primary).
			Bold(true),
		Panel: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Allowed:    base.Foreground(t.Success),
		Suppressed: base.Foreground(t.Error),
		Plain:      base.Foreground(t.Warning),
	}
}
