package progress

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInteractive(t *testing.T) {
	t.Parallel()
	if Interactive(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}

func TestSpinnerModel_Update(t *testing.T) {
	t.Parallel()

	m := spinnerModel{message: "Resolving feat-a", msgChan: make(chan string)}

	next, _ := m.Update(messageUpdate("Resolving feat-b"))
	m = next.(spinnerModel)
	if !strings.Contains(m.View(), "Resolving feat-b") {
		t.Errorf("View() = %q, want updated message", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(spinnerModel)
	if !m.quit || cmd == nil {
		t.Error("ctrl+c should quit the spinner")
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}
}

func TestSpinner_UpdateBeforeStart(t *testing.T) {
	t.Parallel()

	s := NewSpinner(&bytes.Buffer{}, "first")
	s.UpdateMessage("second")
	if s.lastMsg != "second" {
		t.Errorf("lastMsg = %q, want second", s.lastMsg)
	}
	// Stop on a spinner that never started is a no-op.
	s.Stop()
}
