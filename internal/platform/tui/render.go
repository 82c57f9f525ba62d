package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goldnoam/great-heist/internal/core"
)

// palette styles each cell role. ColorDefault runs are written unstyled.
var palette = map[core.Color]lipgloss.Style{
	core.ColorWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorCash:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorDoor:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorStation: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorSpent:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorGuard:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorBanner:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string, one line per row.
// Adjacent cells of the same role share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			role := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != role {
					break
				}
				run.WriteRune(cell.Rune)
			}
			writeRun(&sb, role, run.String())
		}
	}
	return sb.String()
}

func writeRun(sb *strings.Builder, role core.Color, text string) {
	style, ok := palette[role]
	if !ok {
		sb.WriteString(text)
		return
	}
	sb.WriteString(style.Render(text))
}
