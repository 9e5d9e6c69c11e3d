package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas lipgloss.Style
	ball   lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func newStyles(t Theme, ballColor string) styles {
	ball := lipgloss.Color(ballColor)
	if ballColor == "" {
		ball = t.Primary
	}
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		ball:   lipgloss.NewStyle().Foreground(ball),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(40),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		ok:     lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		bad:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// TiltGauge draws a horizontal gauge for a tilt value in [-limit, limit].
func TiltGauge(v, limit float64, width int) string {
	if width < 3 {
		width = 3
	}
	pos := int((v/limit + 1) / 2 * float64(width-1))
	pos = max(0, min(width-1, pos))

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i == pos:
			b.WriteRune('●')
		case i == width/2:
			b.WriteRune('┼')
		default:
			b.WriteRune('─')
		}
	}
	b.WriteByte(']')
	return b.String()
}
