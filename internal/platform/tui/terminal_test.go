package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-arcade/internal/core"
)

func TestNewTerminalDefaultsSize(t *testing.T) {
	term := NewTerminal(TerminalConfig{Layout: testLayout(t)})

	rt := term.Runtime()
	if rt.ScreenW != 80 || rt.ScreenH != 24 {
		t.Errorf("Runtime() = %+v, want 80x24", rt)
	}
}

func TestResizeWithoutProgram(t *testing.T) {
	term := NewTerminal(TerminalConfig{Runtime: core.DefaultConfig(), Layout: testLayout(t)})
	term.Resize(100, 50)

	if rt := term.Runtime(); rt.ScreenW != 100 || rt.ScreenH != 50 {
		t.Errorf("Runtime() = %+v after resize", rt)
	}
}

func TestTrackRelease(t *testing.T) {
	term := NewTerminal(TerminalConfig{Layout: testLayout(t)})
	p := tea.NewProgram(nil)

	release := term.Track(p)
	if term.current != p {
		t.Fatal("Track did not set the current program")
	}

	q := tea.NewProgram(nil)
	releaseQ := term.Track(q)
	release()
	if term.current != q {
		t.Error("a stale release cleared the newer program")
	}
	releaseQ()
	if term.current != nil {
		t.Error("release did not clear the program")
	}
}

func TestZeroDwellSkipsInterstitial(t *testing.T) {
	term := NewTerminal(TerminalConfig{Layout: testLayout(t)})

	if err := term.ShowLevel(context.Background(), 3, 0); err != nil {
		t.Errorf("ShowLevel() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := term.ShowGameOver(ctx, 100, 0); err != context.Canceled {
		t.Errorf("ShowGameOver() = %v, want context.Canceled", err)
	}
}

func TestDwellModel(t *testing.T) {
	m := dwellModel{
		lines:  []string{"GAME OVER", "", "SCORE 1200"},
		style:  NewStyles(nil).Alert,
		rt:     core.DefaultConfig(),
		width:  60,
		height: 24,
	}

	out := m.View()
	for _, want := range []string{"GAME OVER", "SCORE 1200"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, cmd := m.Update(runeKey('x'))
	if cmd != nil || next.(dwellModel).done {
		t.Error("ordinary keys should not end the dwell")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	dm := next.(dwellModel)
	if !dm.quit || !dm.done || cmd == nil {
		t.Errorf("ctrl+c: quit=%v done=%v", dm.quit, dm.done)
	}

	next, _ = m.Update(dwellDoneMsg{})
	if dm := next.(dwellModel); dm.quit || !dm.done {
		t.Errorf("dwell end: quit=%v done=%v", dm.quit, dm.done)
	}
}

func TestPlace(t *testing.T) {
	got := place(2, 1, "ab\ncd")
	want := "\n  ab\n  cd"
	if got != want {
		t.Errorf("place() = %q, want %q", got, want)
	}
}
