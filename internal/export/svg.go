package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/reentry/internal/dynamo"
)

// TrajectoryToSVG draws the trajectory over the body outline. Both axes
// share one scale so the body stays round.
func TrajectoryToSVG(points []dynamo.Vec2, bodyRadius float64, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1

	scale := math.Min(float64(width)/(maxX-minX), float64(height)/(maxY-minY))
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	toScreen := func(p dynamo.Vec2) (float64, float64) {
		return float64(width)/2 + (p.X-cx)*scale, float64(height)/2 - (p.Y-cy)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if bodyRadius > 0 {
		ox, oy := toScreen(dynamo.Vec2{})
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1d3557" stroke="#457b9d"/>
`, ox, oy, bodyRadius*scale)
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range points {
		x, y := toScreen(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
