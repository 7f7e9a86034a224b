package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/soundless/internal/core"
	"github.com/vovakirdan/soundless/internal/engine"
)

// FooterRows is the number of terminal rows below the game screen.
const FooterRows = 1

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightCyan:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Footer draws the noise meter, and the silence timer while the challenge
// runs, under the game screen.
type Footer struct {
	noise  progress.Model
	ritual progress.Model
	label  lipgloss.Style
	hint   lipgloss.Style
}

// NewFooter creates a footer for a terminal of the given width.
func NewFooter(width int) Footer {
	f := Footer{
		noise:  progress.New(progress.WithGradient("#3a7d44", "#c0392b"), progress.WithoutPercentage()),
		ritual: progress.New(progress.WithSolidFill("#b48ead"), progress.WithoutPercentage()),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
	f.SetWidth(width)
	return f
}

// SetWidth splits the terminal width between the bars.
func (f *Footer) SetWidth(width int) {
	bar := max((width-30)/2, 8)
	f.noise.Width = bar
	f.ritual.Width = bar
}

// View renders the footer for a snapshot.
func (f Footer) View(s engine.Snapshot) string {
	parts := []string{
		f.label.Render("noise "),
		f.noise.ViewAs(s.Noise / 100),
	}
	if s.State == engine.StateBoss {
		parts = append(parts,
			f.label.Render("  silence "),
			f.ritual.ViewAs(s.Ritual.Progress),
			f.label.Render(fmt.Sprintf(" %.0fs", s.Ritual.Required-s.Ritual.Elapsed)),
		)
	} else {
		parts = append(parts, f.hint.Render("  wasd move · WASD run · click to walk · p pause · q quit"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
