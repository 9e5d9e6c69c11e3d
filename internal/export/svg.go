package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/tiltball/internal/tilt"
)

// TrajectoryToSVG draws the ball path across the canvas. Coordinates are
// percentages, so the viewBox is fixed rather than fitted to the data.
func TrajectoryToSVG(states []tilt.State, width, height int, p tilt.Properties) string {
	if len(states) < 2 {
		return ""
	}

	color := html.EscapeString(p.Color)
	sx := float64(width) / 100
	sy := float64(height) / 100

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#18181b"/>
<path fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1.5" d="M`,
		width, height, width, height, color))

	for i, s := range states {
		x := s.Position.X * sx
		y := s.Position.Y * sy
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	last := states[len(states)-1].Position
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last.X*sx, last.Y*sy, p.Width/2, color))

	sb.WriteString("</svg>")
	return sb.String()
}
