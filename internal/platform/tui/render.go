package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tuber-tapper/internal/core"
)

// Palette maps core.Color to lipgloss styles for one output.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the styles on the given renderer. SSH sessions pass
// their own renderer so color detection follows the client terminal.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Palette{
		core.ColorDefault:      r.NewStyle(),
		core.ColorYellow:       fg("3"),
		core.ColorMagenta:      fg("5"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightYellow: fg("11").Bold(true),
		core.ColorBrightWhite:  fg("15"),
		core.ColorOrange:       fg("208"),
		core.ColorBrown:        fg("130"),
		core.ColorGray:         fg("245"),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
