// Package export renders a step response as a standalone SVG document.
package export

import (
	"fmt"
	"strings"

	"regulab/internal/step"
)

const (
	svgWidth  = 640.0
	svgHeight = 360.0
	svgMargin = 40.0
)

// ResponseToSVG plots the samples as a polyline with axis lines and a dashed
// steady-state marker when the metric is defined.
func ResponseToSVG(resp *step.Response) string {
	if resp == nil || len(resp.Samples) == 0 {
		return ""
	}

	minY, maxY := resp.Samples[0].Y, resp.Samples[0].Y
	for _, s := range resp.Samples {
		if s.Y < minY {
			minY = s.Y
		}
		if s.Y > maxY {
			maxY = s.Y
		}
	}
	if minY > 0 {
		minY = 0
	}
	if maxY == minY {
		maxY = minY + 1
	}

	maxT := resp.Samples[len(resp.Samples)-1].T
	if maxT == 0 {
		maxT = 1
	}

	plotW := svgWidth - 2*svgMargin
	plotH := svgHeight - 2*svgMargin
	toX := func(t float64) float64 { return svgMargin + t/maxT*plotW }
	toY := func(y float64) float64 { return svgHeight - svgMargin - (y-minY)/(maxY-minY)*plotH }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight))

	// Axes.
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#555"/>
`, svgMargin, toY(0), svgWidth-svgMargin, toY(0)))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#555"/>
`, svgMargin, svgMargin, svgMargin, svgHeight-svgMargin))

	if ss := resp.Metrics.SteadyState; ss.Defined && ss.Value != 0 {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#888" stroke-dasharray="4 4"/>
`, svgMargin, toY(ss.Value), svgWidth-svgMargin, toY(ss.Value)))
	}

	points := make([]string, 0, len(resp.Samples))
	for _, s := range resp.Samples {
		points = append(points, fmt.Sprintf("%.1f,%.1f", toX(s.T), toY(s.Y)))
	}
	sb.WriteString(`<polyline fill="none" stroke="#00ff00" stroke-width="1.5" points="`)
	sb.WriteString(strings.Join(points, " "))
	sb.WriteString("\"/>\n</svg>\n")

	return sb.String()
}
