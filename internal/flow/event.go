package flow

import "fmt"

// EventKind distinguishes the input events a screen can produce.
type EventKind int

const (
	EventQuit     EventKind = iota + 1 // Window close, ctrl+c, connection loss
	EventSelect                        // A menu item was clicked or chosen
	EventBack                          // Cancel back to the menu
	EventKeyPress                      // Raw key for text entry and hot-keys
)

// TargetKind names what a Select event picks.
type TargetKind int

const (
	TargetStartGame TargetKind = iota + 1
	TargetLevelSelect
	TargetInstructions
	TargetHighScores
	TargetAbout
	TargetExit
	TargetLevel // Start at Target.Level
	TargetBack
)

var targetNames = map[TargetKind]string{
	TargetStartGame:    "start",
	TargetLevelSelect:  "levels",
	TargetInstructions: "instructions",
	TargetHighScores:   "high_scores",
	TargetAbout:        "about",
	TargetExit:         "exit",
	TargetLevel:        "level",
	TargetBack:         "back",
}

// String returns the target name used in configuration.
func (k TargetKind) String() string {
	if name, ok := targetNames[k]; ok {
		return name
	}
	return fmt.Sprintf("target(%d)", int(k))
}

// ParseTargetKind converts a configuration name to a TargetKind.
func ParseTargetKind(name string) (TargetKind, error) {
	for k, n := range targetNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("flow: unknown target %q", name)
}

// Target is the item picked by a Select event.
type Target struct {
	Kind  TargetKind
	Level int
}

// KeyCode classifies a key press.
type KeyCode int

const (
	KeyRune KeyCode = iota + 1
	KeyEnter
	KeyBackspace
	KeyEscape
)

// Key is a single key press. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// Event is one input event delivered to the controller.
type Event struct {
	Kind   EventKind
	Target Target
	Key    Key
}

// Quit builds a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// Select builds a select event for kind.
func Select(kind TargetKind) Event {
	return Event{Kind: EventSelect, Target: Target{Kind: kind}}
}

// Back builds a back event.
func Back() Event {
	return Event{Kind: EventBack}
}

// Press builds a key event for a printable rune.
func Press(r rune) Event {
	return Event{Kind: EventKeyPress, Key: Key{Code: KeyRune, Rune: r}}
}

// PressKey builds a key event for a non-printable key.
func PressKey(code KeyCode) Event {
	return Event{Kind: EventKeyPress, Key: Key{Code: code}}
}

func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "quit"
	case EventSelect:
		if e.Target.Kind == TargetLevel {
			return fmt.Sprintf("select(level %d)", e.Target.Level)
		}
		return "select(" + e.Target.Kind.String() + ")"
	case EventBack:
		return "back"
	case EventKeyPress:
		switch e.Key.Code {
		case KeyEnter:
			return "key(enter)"
		case KeyBackspace:
			return "key(backspace)"
		case KeyEscape:
			return "key(esc)"
		}
		return fmt.Sprintf("key(%q)", e.Key.Rune)
	}
	return "event(?)"
}
