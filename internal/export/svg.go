package export

import (
	"fmt"
	"strings"
)

var svgPalette = []string{"#00ff00", "#00ccff", "#ff88ff", "#ffcc00", "#ff4444", "#88ff88"}

// CurveToSVG creates an SVG polyline from one property curve.
func CurveToSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	// Add padding
	rangeX := pad(&minX, &maxX)
	rangeY := pad(&minY, &maxY)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
	writePath(&sb, xs, ys, minX, minY, rangeX, rangeY, width, height, strokeColor)
	sb.WriteString(`</svg>`)
	return sb.String()
}

// TableToSVG plots every property column of a table against its sweep
// column, each curve independently scaled to the full plot height.
func TableToSVG(t *Table, width, height int) string {
	if len(t.Rows) < 2 || len(t.Columns) < 2 {
		return ""
	}

	xs := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		xs[i] = row[0]
	}
	minX, maxX := bounds(xs)
	rangeX := pad(&minX, &maxX)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for col := 1; col < len(t.Columns); col++ {
		ys := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			ys[i] = row[col]
		}
		minY, maxY := bounds(ys)
		rangeY := pad(&minY, &maxY)
		color := svgPalette[(col-1)%len(svgPalette)]
		writePath(&sb, xs, ys, minX, minY, rangeX, rangeY, width, height, color)
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-size="12" font-family="monospace">%s</text>
`, 16*col, color, t.Columns[col]))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func pad(lo, hi *float64) float64 {
	r := *hi - *lo
	if r == 0 {
		r = 1
	}
	*lo -= r * 0.1
	*hi += r * 0.1
	return *hi - *lo
}

func writePath(sb *strings.Builder, xs, ys []float64, minX, minY, rangeX, rangeY float64, width, height int, strokeColor string) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}
