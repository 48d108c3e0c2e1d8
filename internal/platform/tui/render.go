package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rocket-arcade/internal/core"
)

// palette maps cell roles to terminal colors.
var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorShip:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorThrust:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBullet:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorChaser:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorDrifter: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorSpark:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorEmber:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorAlert:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same role share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			role := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != role {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := palette[role]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
