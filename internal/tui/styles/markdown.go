package styles

import (
	"strings"

	"github.com/charmbracelet/glamour/v2"
)

// RenderMarkdown renders md for a terminal of the given width. It falls back
// to the raw text if glamour fails.
func RenderMarkdown(t *Theme, md string, width int) string {
	style := "dark"
	if !t.IsDark {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
