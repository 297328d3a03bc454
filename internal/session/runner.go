package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/config"
)

// Outcome is how a whole session ended.
type Outcome int

const (
	OutcomeQuit       Outcome = iota + 1 // Quit signal; the process should stop
	OutcomeGameOver                      // All lives lost; score may qualify
	OutcomeMenuReturn                    // Session aborted; back to the menu
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeGameOver:
		return "game_over"
	case OutcomeMenuReturn:
		return "menu_return"
	default:
		return "unknown"
	}
}

// State is the running snapshot carried between levels.
type State struct {
	Level int
	Lives int
	Score int
}

// Result is returned when a session ends.
// State.Level is the level that was being played when it ended.
type Result struct {
	Outcome Outcome
	State   State
}

// Display shows the blocking announcements around levels.
// Both calls wait for dwell without reading input and return ctx.Err()
// if the context is cancelled first.
type Display interface {
	ShowLevel(ctx context.Context, level int, dwell time.Duration) error
	ShowGameOver(ctx context.Context, score int, dwell time.Duration) error
}

// Options configures a Runner.
type Options struct {
	Difficulty    Difficulty
	Boards        BoardMapping
	Interstitial  time.Duration
	GameOverDwell time.Duration
}

// OptionsFromConfig builds runner options from the shell configuration.
func OptionsFromConfig(cfg config.SessionConfig, boards config.BoardsConfig) (Options, error) {
	mapping, err := NewBoardMapping(boards)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Difficulty:    Difficulty{Base: cfg.SpeedBase, Step: cfg.SpeedStep},
		Boards:        mapping,
		Interstitial:  cfg.Interstitial,
		GameOverDwell: cfg.GameOverDwell,
	}, nil
}

// Runner drives consecutive calls into the level engine.
type Runner struct {
	engine  Engine
	display Display
	opts    Options
	logger  *log.Logger
}

// NewRunner creates a runner. A nil display waits silently; a nil logger discards.
func NewRunner(engine Engine, display Display, opts Options, logger *log.Logger) *Runner {
	if display == nil {
		display = WaitDisplay{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		engine:  engine,
		display: display,
		opts:    opts,
		logger:  logger,
	}
}

// Params computes the engine parameters for the given snapshot.
func (r *Runner) Params(st State) LevelParams {
	return LevelParams{
		SpeedMultiplier: r.opts.Difficulty.SpeedMultiplier(st.Level),
		BoardIndex:      r.opts.Boards.Index(st.Level),
		Level:           st.Level,
		Lives:           st.Lives,
		Score:           st.Score,
	}
}

// Run plays levels starting from start until the session ends.
// Score and lives carry over between levels unchanged.
func (r *Runner) Run(ctx context.Context, start State) Result {
	st := start
	if st.Level < 1 {
		st.Level = 1
	}

	for {
		if ctx.Err() != nil {
			return Result{Outcome: OutcomeQuit, State: st}
		}

		params := r.Params(st)

		if st.Level > 1 {
			if err := r.display.ShowLevel(ctx, st.Level, r.opts.Interstitial); err != nil {
				r.logger.Debug("interstitial interrupted", "level", st.Level, "error", err)
				return Result{Outcome: OutcomeQuit, State: st}
			}
		}

		r.logger.Info("level started",
			"level", params.Level,
			"board", params.BoardIndex,
			"speed", params.SpeedMultiplier,
			"lives", params.Lives,
			"score", params.Score,
		)

		res, err := r.engine.PlayLevel(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				return Result{Outcome: OutcomeQuit, State: st}
			}
			r.logger.Error("level engine failed", "level", st.Level, "error", err)
			return Result{Outcome: OutcomeMenuReturn, State: st}
		}

		r.logger.Info("level ended",
			"level", st.Level,
			"outcome", res.Outcome,
			"score", res.Score,
			"lives", res.Lives,
		)

		switch res.Outcome {
		case LevelVictory:
			st.Score = res.Score
			st.Lives = res.Lives
			st.Level++

		case LevelGameOver:
			st.Score = res.Score
			st.Lives = res.Lives
			if err := r.display.ShowGameOver(ctx, st.Score, r.opts.GameOverDwell); err != nil {
				return Result{Outcome: OutcomeQuit, State: st}
			}
			return Result{Outcome: OutcomeGameOver, State: st}

		case LevelQuit:
			st.Score = res.Score
			st.Lives = res.Lives
			return Result{Outcome: OutcomeQuit, State: st}

		default:
			r.logger.Error("level engine returned unknown outcome", "level", st.Level, "outcome", int(res.Outcome))
			return Result{Outcome: OutcomeMenuReturn, State: st}
		}
	}
}

// WaitDisplay shows nothing and only waits out the dwell.
type WaitDisplay struct{}

// ShowLevel waits for dwell or until ctx is done.
func (WaitDisplay) ShowLevel(ctx context.Context, _ int, dwell time.Duration) error {
	return Wait(ctx, dwell)
}

// ShowGameOver waits for dwell or until ctx is done.
func (WaitDisplay) ShowGameOver(ctx context.Context, _ int, dwell time.Duration) error {
	return Wait(ctx, dwell)
}

// Wait blocks for d, returning ctx.Err() if the context ends first.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
