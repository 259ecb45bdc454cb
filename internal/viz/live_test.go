package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/panel"
)

type sinkFunc func(engine.Frame, int)

func (s sinkFunc) UpdateEngine(f engine.Frame, fps int) { s(f, fps) }

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	a, err := engine.New(engine.DefaultParams(), 1)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(panel.NewController(a, nil), opts)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

func TestModelTypingAndStart(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, runes("400")...)
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, runes("300")...)
	m = send(m, runes("s")...)
	m = send(m, TickMsg(time.Now()))

	f := m.Frame()
	if f.Validity != engine.Valid || !f.Running {
		t.Fatalf("expected a valid running frame, got %v running=%v", f.Validity, f.Running)
	}
	if f.Angle == engine.NeutralAngle {
		t.Error("crank should have moved")
	}
	view := m.View()
	for _, want := range []string{"25.0%", "RUNNING", "400", "300"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelWaitingBanner(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, runes("s")...)
	m = send(m, TickMsg(time.Now()))

	if m.Frame().Angle != engine.NeutralAngle {
		t.Error("crank should stay at rest with empty fields")
	}
	if !strings.Contains(m.View(), "WAITING") {
		t.Error("view missing the waiting banner")
	}
}

func TestModelBackspaceAndReset(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, runes("401")...)
	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.ctrl.Form().Value(panel.FieldHot); got != "40" {
		t.Errorf("expected 40 after backspace, got %q", got)
	}

	m = send(m, runes("r")...)
	if got := m.ctrl.Animator().Inputs(); got != (engine.Inputs{}) {
		t.Errorf("reset should clear the inputs, got %+v", got)
	}
}

func TestModelTickAlwaysReschedules(t *testing.T) {
	m := newTestModel(t, Options{FPS: 30})
	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("paused model should still schedule the next tick")
	}
}

func TestModelFeedsSink(t *testing.T) {
	var calls, fps int
	m := newTestModel(t, Options{FPS: 30, Audio: sinkFunc(func(_ engine.Frame, n int) {
		calls++
		fps = n
	})})
	send(m, TickMsg(time.Now()), TickMsg(time.Now()))
	if calls != 2 || fps != 30 {
		t.Errorf("sink got %d calls at %d fps", calls, fps)
	}
}

func TestModelThemeAndHelp(t *testing.T) {
	m := newTestModel(t, Options{Theme: "ember"})
	first := m.theme.Name
	m = send(m, runes("t")...)
	if m.theme.Name == first {
		t.Error("t should cycle the theme")
	}
	m = send(m, runes("?")...)
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}

func TestModelRecordsGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	m := newTestModel(t, Options{GIFPath: path})
	m = send(m, runes("400")...)
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, runes("300s")...)

	m = send(m, runes("g")...)
	m = send(m, TickMsg(time.Now()), TickMsg(time.Now()), TickMsg(time.Now()))
	m = send(m, runes("g")...)

	if m.recording {
		t.Error("second g should stop recording")
	}
	if !strings.Contains(m.message, "saved 3 frames") {
		t.Errorf("unexpected message %q", m.message)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("gif not written: %v", err)
	}
}
