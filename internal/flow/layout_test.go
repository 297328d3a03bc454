package flow

import (
	"testing"

	"github.com/vovakirdan/maze-arcade/internal/config"
)

func TestDefaultLayoutButtons(t *testing.T) {
	l := testLayout(t)

	if n := len(l.Buttons(StateMenu)); n != 6 {
		t.Errorf("menu buttons = %d, want 6", n)
	}
	if n := len(l.Buttons(StateLevelSelect)); n != 3 {
		t.Errorf("level select buttons = %d, want 3", n)
	}
	for _, s := range []State{StateInstructions, StateHighScores, StateAbout} {
		bs := l.Buttons(s)
		if len(bs) != 1 || bs[0].Event().Kind != EventBack {
			t.Errorf("%s buttons = %+v, want a single back button", s, bs)
		}
	}
	if n := len(l.Buttons(StatePlaying)); n != 0 {
		t.Errorf("playing buttons = %d, want 0", n)
	}
}

func TestLayoutHitTest(t *testing.T) {
	l := testLayout(t)

	tests := []struct {
		name   string
		state  State
		x, y   int
		want   TargetKind
		wantOK bool
	}{
		{"start top-left", StateMenu, 15, 4, TargetStartGame, true},
		{"levels center", StateMenu, 30, 8, TargetLevelSelect, true},
		{"exit bottom-right", StateMenu, 44, 21, TargetExit, true},
		{"left of buttons", StateMenu, 14, 5, 0, false},
		{"between screens", StateInstructions, 30, 5, 0, false},
		{"level two", StateLevelSelect, 20, 12, TargetLevel, true},
		{"back on about", StateAbout, 25, 21, TargetBack, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := l.HitTest(tt.state, tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("HitTest ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && b.Target.Kind != tt.want {
				t.Errorf("HitTest target = %s, want %s", b.Target.Kind, tt.want)
			}
		})
	}
}

func TestLayoutHotkey(t *testing.T) {
	l := testLayout(t)

	b, ok := l.Hotkey(StateLevelSelect, '2')
	if !ok || b.Target != (Target{Kind: TargetLevel, Level: 2}) {
		t.Errorf("Hotkey('2') = %+v, %v", b, ok)
	}
	if _, ok := l.Hotkey(StateMenu, 0); ok {
		t.Error("zero rune should never match")
	}
	if _, ok := l.Hotkey(StateAbout, '1'); ok {
		t.Error("about has no hot-keys")
	}
}

func TestNewLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		button config.ButtonConfig
	}{
		{"unknown screen", config.ButtonConfig{Screen: "options", Target: "back"}},
		{"unknown target", config.ButtonConfig{Screen: "menu", Target: "settings"}},
		{"level zero", config.ButtonConfig{Screen: "level_select", Target: "level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.LayoutConfig{Width: 10, Height: 10, Buttons: []config.ButtonConfig{tt.button}}
			if _, err := NewLayout(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStateNamesRoundTrip(t *testing.T) {
	for _, s := range []State{StateMenu, StatePlaying, StateInstructions, StateHighScores, StateNewHighScore, StateLevelSelect, StateAbout} {
		got, err := ParseState(s.String())
		if err != nil || got != s {
			t.Errorf("ParseState(%q) = %s, %v", s.String(), got, err)
		}
	}
	if _, err := ParseState("credits"); err == nil {
		t.Error("expected error for unknown state")
	}
}
