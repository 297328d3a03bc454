// Package flow implements the arcade shell's screen state machine.
//
// The Controller owns the active screen, the high-score board and the
// name-entry buffer. A UI presents one screen at a time and feeds the
// player's input back through Dispatch; entering Playing hands control to
// the session runner until the run ends.
package flow

import "fmt"

// State identifies the active screen.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateInstructions
	StateHighScores
	StateNewHighScore
	StateLevelSelect
	StateAbout
)

var stateNames = map[State]string{
	StateMenu:         "menu",
	StatePlaying:      "playing",
	StateInstructions: "instructions",
	StateHighScores:   "high_scores",
	StateNewHighScore: "new_high_score",
	StateLevelSelect:  "level_select",
	StateAbout:        "about",
}

// String returns the screen name used in configuration and logs.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState converts a screen name back to a State.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("flow: unknown screen %q", name)
}
