// Package tui is the interactive gain tuner: a bubbletea app that closes
// the loop around the plant with the current PID gains and redraws the step
// response on every change.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"regulab/internal/lti"
	"regulab/internal/pipeline"
	"regulab/internal/step"
	"regulab/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var gainNames = []string{"Kp", "Ki", "Kd"}

type model struct {
	plant lti.TransferFunction
	cfg   step.Config

	gains  [3]float64
	cursor int
	delta  float64

	editing bool
	editBuf string

	result *pipeline.ClosedLoop
	runErr error

	width  int
	height int
}

// NewTuner builds the tuner around a plant with starting gains.
func NewTuner(plant lti.TransferFunction, kp, ki, kd float64, cfg step.Config) tea.Model {
	m := model{
		plant:  plant,
		cfg:    cfg,
		gains:  [3]float64{kp, ki, kd},
		delta:  0.1,
		width:  80,
		height: 24,
	}
	m.resimulate()
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m *model) resimulate() {
	m.result, m.runErr = pipeline.CloseLoop(m.plant, m.gains[0], m.gains[1], m.gains[2], m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				m.gains[m.cursor] = val
				m.resimulate()
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(gainNames)-1 {
			m.cursor++
		}
	case "left", "h":
		m.gains[m.cursor] -= m.delta
		m.resimulate()
	case "right", "l":
		m.gains[m.cursor] += m.delta
		m.resimulate()
	case "+", "=":
		m.delta *= 10
	case "-", "_":
		m.delta /= 10
	case "0":
		m.delta = 0.1
	case "z":
		m.gains[m.cursor] = 0
		m.resimulate()
	case "enter", " ":
		m.editing = true
		m.editBuf = fmt.Sprintf("%.3g", m.gains[m.cursor])
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render("GAIN TUNER") + "\n")

	for i, name := range gainNames {
		line := fmt.Sprintf("%-3s %8.3f", name, m.gains[i])
		if i == m.cursor {
			if m.editing {
				line = fmt.Sprintf("%-3s %8s", name, m.editBuf+"_")
			}
			s.WriteString(viz.ActiveGainStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	s.WriteString(dim.Render(fmt.Sprintf("step %.3g", m.delta)) + "\n\n")

	switch {
	case m.runErr != nil:
		s.WriteString(viz.ErrorStyle.Render(m.runErr.Error()) + "\n")
	case m.result != nil:
		rep := m.result.Report
		if m.result.Warning != "" {
			s.WriteString(viz.WarnStyle.Render(m.result.Warning) + "\n")
		}
		if rep.ResponseErr != nil {
			s.WriteString(cyan.Render(rep.Expression) + "\n")
			s.WriteString(viz.ErrorStyle.Render(rep.ResponseErr.Error()) + "\n")
			break
		}
		s.WriteString(cyan.Render(rep.Expression) + "  " + viz.RenderStability(rep.Response.Stable) + "\n")
		if plot := viz.PlotResponse(rep.Response, "closed-loop step response"); plot != "" {
			s.WriteString(viz.GraphStyle.Render(plot) + "\n")
		}
		s.WriteString(viz.RenderMetrics(rep.Response.Metrics))
		if rep.RecommendationErr == nil {
			s.WriteString(yellow.Render(fmt.Sprintf("suggests %s", rep.Recommendation.Type)) + "\n")
		}
	}

	s.WriteString(viz.HelpStyle.Render("↑/↓ select  ←/→ adjust  +/- step size  enter edit  z zero  q quit"))
	return s.String()
}
