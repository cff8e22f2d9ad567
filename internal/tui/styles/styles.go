package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type Style struct {
	Color     Color
	Brand     lipgloss.Style // Brand styles the "Formula 1" name
	Highlight lipgloss.Style // Highlight styles the race name and the next session
	Subtle    lipgloss.Style // Subtle styles sessions that already started
	Bold      lipgloss.Style
	Footer    lipgloss.Style
}

// Color uses ANSI palette indexes rather than true colors so the output matches the terminal's own
// theme.
type Color struct {
	BrightRed   lipgloss.Color
	BrightGreen lipgloss.Color
	Subtle      lipgloss.Color
}

// Default returns the styles bound to the given renderer; the renderer decides whether any escape
// sequences are emitted.
func Default(r *lipgloss.Renderer) *Style {
	brightRed := lipgloss.Color("9")
	brightGreen := lipgloss.Color("10")
	subtle := lipgloss.Color("238")

	return &Style{
		Color: Color{
			BrightRed:   brightRed,
			BrightGreen: brightGreen,
			Subtle:      subtle,
		},
		Brand:     r.NewStyle().Foreground(brightRed),
		Highlight: r.NewStyle().Foreground(brightGreen),
		Subtle:    r.NewStyle().Foreground(subtle),
		Bold:      r.NewStyle().Bold(true),
		Footer:    r.NewStyle().Foreground(subtle).Italic(true),
	}
}

// NewRenderer returns a renderer for out. When forceColor is set ANSI styling is always emitted,
// otherwise the color profile is detected from the terminal.
func NewRenderer(out io.Writer, forceColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if forceColor {
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// NewPlainRenderer returns a renderer that never emits escape sequences.
func NewPlainRenderer(out io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.Ascii)
	return r
}
