// Package viz renders analysis results for the terminal: an asciigraph plot
// of the step response, a metrics panel, and a Graphviz block diagram of the
// closed loop.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"regulab/internal/poles"
	"regulab/internal/step"
)

const (
	plotWidth  = 70
	plotHeight = 12
)

// PlotResponse draws the step response as an ASCII chart.
func PlotResponse(resp *step.Response, caption string) string {
	if resp == nil || len(resp.Samples) < 2 {
		return ""
	}
	series := make([]float64, len(resp.Samples))
	for i, s := range resp.Samples {
		series[i] = s.Y
	}
	return asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// RenderMetrics formats the metric panel, one labeled line per figure.
// Undefined metrics show their reason instead of a number.
func RenderMetrics(m step.Metrics) string {
	var sb strings.Builder
	row := func(label string, f step.Measure, unit string) {
		v := f.String()
		if f.Defined && unit != "" {
			v += " " + unit
		}
		sb.WriteString(LabelStyle.Render(label) + ValueStyle.Render(v) + "\n")
	}
	row("Steady state", m.SteadyState, "")
	row("Overshoot", m.Overshoot, "%")
	row("Settling time", m.SettlingTime, "s")
	row("Rise time", m.RiseTime, "s")
	row("Peak time", m.PeakTime, "s")
	return sb.String()
}

// RenderStability formats the stability verdict.
func RenderStability(stable bool) string {
	if stable {
		return StableStyle.Render("STABLE")
	}
	return UnstableStyle.Render("UNSTABLE")
}

// RenderPoles formats grouped poles, one per line with multiplicity.
func RenderPoles(groups []poles.Group) string {
	var sb strings.Builder
	for _, g := range groups {
		line := formatComplex(g.Value)
		if g.Multiplicity > 1 {
			line += fmt.Sprintf(" (x%d)", g.Multiplicity)
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if im == 0 {
		return fmt.Sprintf("%.4g", re)
	}
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%.4g %s %.4gi", re, sign, im)
}
