// Package session runs one continuous play-through across consecutive levels
// against an external level engine.
package session

import "context"

// LevelOutcome is the terminal result of a single level as reported by the engine.
type LevelOutcome int

const (
	LevelQuit     LevelOutcome = iota + 1 // Player closed the game
	LevelGameOver                         // All lives lost
	LevelVictory                          // Level cleared
)

// String returns a human-readable name for the outcome.
func (o LevelOutcome) String() string {
	switch o {
	case LevelQuit:
		return "quit"
	case LevelGameOver:
		return "game_over"
	case LevelVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// ParseLevelOutcome converts a name produced by String back to an outcome.
func ParseLevelOutcome(s string) (LevelOutcome, bool) {
	switch s {
	case "quit":
		return LevelQuit, true
	case "game_over", "gameover":
		return LevelGameOver, true
	case "victory":
		return LevelVictory, true
	}
	return 0, false
}

// LevelParams is everything the engine needs to run one level.
type LevelParams struct {
	SpeedMultiplier float64
	BoardIndex      int
	Level           int
	Lives           int
	Score           int
}

// LevelResult is the engine's report after a level ends.
// Score and Lives are the updated snapshot, not deltas.
type LevelResult struct {
	Outcome LevelOutcome
	Score   int
	Lives   int
}

// Engine simulates one playable level. PlayLevel blocks until the level
// ends and must return promptly with LevelQuit once ctx is cancelled.
type Engine interface {
	PlayLevel(ctx context.Context, params LevelParams) (LevelResult, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(ctx context.Context, params LevelParams) (LevelResult, error)

// PlayLevel calls f.
func (f EngineFunc) PlayLevel(ctx context.Context, params LevelParams) (LevelResult, error) {
	return f(ctx, params)
}
