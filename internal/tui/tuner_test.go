package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"regulab/internal/lti"
	"regulab/internal/step"
)

func newTestTuner(t *testing.T) tea.Model {
	t.Helper()
	plant := lti.MustNew([]float64{1}, []float64{1, 1})
	return NewTuner(plant, 1, 0, 0, step.DefaultConfig())
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTunerInitialView(t *testing.T) {
	m := newTestTuner(t)
	view := m.View()
	for _, want := range []string{"GAIN TUNER", "Kp", "Ki", "Kd", "STABLE"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestTunerAdjustResimulates(t *testing.T) {
	m := newTestTuner(t)
	before := m.View()

	m, _ = m.Update(key("l"))
	after := m.View()
	if !strings.Contains(after, "1.100") {
		t.Error("expected adjusted Kp in view")
	}
	if before == after {
		t.Error("expected the view to change after adjusting a gain")
	}
}

func TestTunerCursorMoves(t *testing.T) {
	m := newTestTuner(t)
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("l"))
	view := m.View()
	if !strings.Contains(view, "0.100") {
		t.Errorf("expected Ki adjusted to 0.100, got view:\n%s", view)
	}
}

func TestTunerEditEntry(t *testing.T) {
	m := newTestTuner(t)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(key("2"))
	m, _ = m.Update(key("."))
	m, _ = m.Update(key("5"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "2.500") {
		t.Error("expected typed gain value in view")
	}
}

func TestTunerQuit(t *testing.T) {
	m := newTestTuner(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
