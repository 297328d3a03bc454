package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/maze-arcade/internal/config"
	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/flow"
	"github.com/vovakirdan/maze-arcade/internal/scores"
)

// fakeScreen records dispatched events. It reports done on Quit and on
// any Select.
type fakeScreen struct {
	view   flow.View
	events []flow.Event
}

func (f *fakeScreen) View() flow.View { return f.view }

func (f *fakeScreen) Dispatch(ev flow.Event) bool {
	f.events = append(f.events, ev)
	return ev.Kind == flow.EventQuit || ev.Kind == flow.EventSelect
}

func testLayout(t *testing.T) flow.Layout {
	t.Helper()
	l, err := flow.NewLayout(config.DefaultLayout())
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return l
}

func newTestScreen(t *testing.T, state flow.State) (*fakeScreen, screenModel) {
	t.Helper()
	layout := testLayout(t)
	scr := &fakeScreen{view: flow.View{
		State:      state,
		Capacity:   scores.DefaultCapacity,
		NameMaxLen: 10,
		Buttons:    layout.Buttons(state),
		Width:      layout.Width,
		Height:     layout.Height,
	}}
	m := newScreenModel(scr, layout, core.DefaultConfig(), NewKeyMapper(), NewStyles(nil))
	return scr, m
}

func update(t *testing.T, m screenModel, msg tea.Msg) (screenModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(screenModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestCursorNavigation(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateMenu)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if want := len(m.view.Buttons) - 1; m.cursor != want {
		t.Fatalf("cursor = %d, want wrap to %d", m.cursor, want)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.done || cmd == nil {
		t.Fatal("select should close the screen")
	}
	if len(scr.events) != 1 || scr.events[0] != flow.Select(flow.TargetExit) {
		t.Errorf("events = %v, want [select(exit)]", scr.events)
	}
}

func TestHotkeyIsForwarded(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateMenu)

	m, _ = update(t, m, runeKey('4'))
	if len(scr.events) != 1 || scr.events[0] != flow.Press('4') {
		t.Fatalf("events = %v, want [key('4')]", scr.events)
	}
	if m.done {
		t.Error("a key press the screen did not act on should not close it")
	}
}

func TestMouseClickUsesOrigin(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateMenu)
	ox, oy := m.rt.Origin(m.view.Width, m.view.Height)

	// Outside the canvas is a miss.
	m, _ = update(t, m, tea.MouseMsg{X: ox - 1, Y: oy + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(scr.events) != 0 {
		t.Fatalf("click outside the canvas dispatched %v", scr.events)
	}

	// Hover over HIGH SCORES moves the cursor.
	m, _ = update(t, m, tea.MouseMsg{X: ox + 20, Y: oy + 14, Action: tea.MouseActionMotion})
	if m.cursor != 3 {
		t.Fatalf("cursor after hover = %d, want 3", m.cursor)
	}

	// Right clicks do nothing.
	m, _ = update(t, m, tea.MouseMsg{X: ox + 20, Y: oy + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if len(scr.events) != 0 {
		t.Fatalf("right click dispatched %v", scr.events)
	}

	m, _ = update(t, m, tea.MouseMsg{X: ox + 20, Y: oy + 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(scr.events) != 1 || scr.events[0] != flow.Select(flow.TargetStartGame) {
		t.Fatalf("events = %v, want [select(start)]", scr.events)
	}
	if !m.done {
		t.Error("click should close the screen")
	}
}

func TestBackButtonClick(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateAbout)
	ox, oy := m.rt.Origin(m.view.Width, m.view.Height)

	update(t, m, tea.MouseMsg{X: ox + 25, Y: oy + 21, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(scr.events) != 1 || scr.events[0] != flow.Back() {
		t.Fatalf("events = %v, want [back]", scr.events)
	}
}

func TestNameEntryKeys(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateNewHighScore)
	if m.Init() == nil {
		t.Error("name entry should start the caret blink")
	}

	m, _ = update(t, m, runeKey('q'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := []flow.Event{flow.Press('q'), flow.PressKey(flow.KeyBackspace), flow.PressKey(flow.KeyEnter)}
	if len(scr.events) != len(want) {
		t.Fatalf("events = %v, want %v", scr.events, want)
	}
	for i := range want {
		if scr.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, scr.events[i], want[i])
		}
	}
}

func TestCaretBlinks(t *testing.T) {
	scr, m := newTestScreen(t, flow.StateNewHighScore)
	scr.view.Name = "ZD"
	scr.view.Last.Score = 900
	m.view = scr.View()
	m.rt.TickRate = 4

	m, cmd := update(t, m, TickMsg{})
	if m.blink || cmd == nil {
		t.Fatalf("blink = %v after one of two frames", m.blink)
	}
	m, _ = update(t, m, TickMsg{})
	if !m.blink {
		t.Fatal("caret should show after two frames at 4 ticks per second")
	}
	if !strings.Contains(m.View(), "ZD▌") {
		t.Errorf("View() missing caret:\n%s", m.View())
	}

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	if strings.Contains(m.View(), "▌") {
		t.Error("caret should be hidden on the off phase")
	}
}

func TestBlinkFrames(t *testing.T) {
	tests := []struct {
		rate int
		want int
	}{
		{rate: 60, want: 30},
		{rate: 30, want: 15},
		{rate: 1, want: 1},
		{rate: 0, want: 30},
		{rate: -5, want: 30},
	}
	for _, tt := range tests {
		if got := blinkFrames(tt.rate); got != tt.want {
			t.Errorf("blinkFrames(%d) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestViewPerScreen(t *testing.T) {
	tests := []struct {
		state flow.State
		board scores.Board
		want  []string
	}{
		{flow.StateMenu, scores.Board{{Name: "ZED", Score: 1200}}, []string{"M A Z E", "START GAME", "1  START GAME", "BEST  ZED  1200"}},
		{flow.StateLevelSelect, nil, []string{"SELECT LEVEL", "LEVEL 2 (Open)", "BACK"}},
		{flow.StateInstructions, nil, []string{"HOW TO PLAY", "CONTROLS"}},
		{flow.StateAbout, nil, []string{"ABOUT", "HIGH SCORES"}},
		{flow.StateHighScores, nil, []string{"No high scores yet!"}},
		{flow.StateHighScores, scores.Board{{Name: "ZED", Score: 1200}, {Name: "AMY", Score: 300}}, []string{"RANK", "#1", "ZED", "1200", "#2", "AMY"}},
		{flow.StateNewHighScore, scores.Board{{Name: "ZED", Score: 1200}}, []string{"NEW HIGH SCORE!", "SCORE  900", "RANK  #2", "__________"}},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			scr, m := newTestScreen(t, tt.state)
			scr.view.Board = tt.board
			scr.view.Last.Score = 900
			m.view = scr.View()

			out := m.View()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("View() missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestWindowResize(t *testing.T) {
	_, m := newTestScreen(t, flow.StateMenu)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if got := m.Runtime(); got.ScreenW != 120 || got.ScreenH != 40 {
		t.Errorf("Runtime() = %+v", got)
	}
}
