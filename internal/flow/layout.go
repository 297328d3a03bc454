package flow

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/maze-arcade/internal/config"
	"github.com/vovakirdan/maze-arcade/internal/core"
)

// Button is one clickable item. The same rect is used to draw the button
// and to hit-test clicks.
type Button struct {
	Screen State
	Target Target
	Label  string
	Hotkey rune // 0 if the button has no hot-key
	Rect   core.Rect
}

// Event returns the event a click on this button produces.
func (b Button) Event() Event {
	if b.Target.Kind == TargetBack {
		return Back()
	}
	return Event{Kind: EventSelect, Target: b.Target}
}

// Layout is the table of buttons for every screen on a fixed-size canvas.
type Layout struct {
	Width   int
	Height  int
	buttons []Button
}

// NewLayout converts the configuration table.
func NewLayout(cfg config.LayoutConfig) (Layout, error) {
	l := Layout{
		Width:   cfg.Width,
		Height:  cfg.Height,
		buttons: make([]Button, 0, len(cfg.Buttons)),
	}

	for i, bc := range cfg.Buttons {
		screen, err := ParseState(bc.Screen)
		if err != nil {
			return Layout{}, fmt.Errorf("flow: layout button %d: %w", i, err)
		}
		kind, err := ParseTargetKind(bc.Target)
		if err != nil {
			return Layout{}, fmt.Errorf("flow: layout button %d: %w", i, err)
		}
		if kind == TargetLevel && bc.Level < 1 {
			return Layout{}, fmt.Errorf("flow: layout button %d: level must be at least 1", i)
		}

		var hotkey rune
		if bc.Hotkey != "" {
			hotkey, _ = utf8.DecodeRuneInString(bc.Hotkey)
		}

		l.buttons = append(l.buttons, Button{
			Screen: screen,
			Target: Target{Kind: kind, Level: bc.Level},
			Label:  bc.Label,
			Hotkey: hotkey,
			Rect:   core.NewRect(bc.Rect.X, bc.Rect.Y, bc.Rect.W, bc.Rect.H),
		})
	}

	return l, nil
}

// Buttons returns the buttons of screen s in table order.
func (l Layout) Buttons(s State) []Button {
	var out []Button
	for _, b := range l.buttons {
		if b.Screen == s {
			out = append(out, b)
		}
	}
	return out
}

// HitTest returns the button of screen s containing canvas cell (x, y).
func (l Layout) HitTest(s State, x, y int) (Button, bool) {
	for _, b := range l.buttons {
		if b.Screen == s && b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

// Hotkey returns the button of screen s bound to key r.
func (l Layout) Hotkey(s State, r rune) (Button, bool) {
	if r == 0 {
		return Button{}, false
	}
	for _, b := range l.buttons {
		if b.Screen == s && b.Hotkey == r {
			return b, true
		}
	}
	return Button{}, false
}
