package report

import (
	"fmt"
	"strings"

	"github.com/deltaflow/piso1d/internal/grid"
)

// point is a single (z, value) sample for a profile polyline.
type point struct{ X, Y float64 }

// profileToSVG renders one field's z-profile as an SVG polyline.
func profileToSVG(points []point, width, height int, strokeColor, caption string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="8" y="16" fill="#888899" font-family="monospace" font-size="12">%s</text>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, caption, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVGProfiles writes three SVG files at pathPrefix+"_u.svg",
// "_p.svg", "_t.svg" plotting the converged velocity, pressure, and
// temperature fields against axial position.
func WriteSVGProfiles(pathPrefix string, st *grid.State) error {
	fields := []struct {
		suffix string
		values []float64
		color  string
	}{
		{"_u.svg", st.U, "#00ccff"},
		{"_p.svg", st.P, "#00ff88"},
		{"_t.svg", st.T, "#ffaa00"},
	}

	for _, f := range fields {
		pts := make([]point, st.N)
		for i, v := range f.values {
			pts[i] = point{X: float64(i) * st.Dz, Y: v}
		}
		svg := profileToSVG(pts, 640, 240, f.color, f.suffix)
		if err := writeFile(pathPrefix+f.suffix, svg); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.suffix, err)
		}
	}
	return nil
}
