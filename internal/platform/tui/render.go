package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maze-arcade/internal/core"
)

// Styles holds the lipgloss styles used by every screen. They are built
// from a renderer so SSH sessions get the client's color profile.
type Styles struct {
	Title  lipgloss.Style
	Text   lipgloss.Style
	Accent lipgloss.Style
	Alert  lipgloss.Style
	Dim    lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles builds the palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Text:   r.NewStyle().Foreground(lipgloss.Color("252")),
		Accent: r.NewStyle().Foreground(lipgloss.Color("75")),
		Alert:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Dim:    r.NewStyle().Foreground(lipgloss.Color("245")),
		Help:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// RenderCanvas converts a Screen buffer to a string, applying a style per
// row. Rows without an entry use def.
func RenderCanvas(s *core.Screen, rows map[int]lipgloss.Style, def lipgloss.Style) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		style, ok := rows[y]
		if !ok {
			style = def
		}
		sb.WriteString(style.Render(s.Row(y)))
	}
	return sb.String()
}

// place pads body so its top-left cell lands at (x, y). This must agree with
// RuntimeConfig.Origin, which maps mouse clicks back onto the canvas.
func place(x, y int, body string) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", y))

	pad := strings.Repeat(" ", x)
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(pad)
		sb.WriteString(line)
	}
	return sb.String()
}
