package flow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/input"
	"github.com/vovakirdan/maze-arcade/internal/scores"
	"github.com/vovakirdan/maze-arcade/internal/session"
)

// BoardStore loads and persists the high-score board. Update must apply fn
// to the stored board and write the result in one step, since other
// controllers may share the store.
type BoardStore interface {
	Load() scores.Board
	Update(fn func(scores.Board) scores.Board) (scores.Board, error)
	Capacity() int
}

// SessionRunner plays one session from a starting snapshot.
type SessionRunner interface {
	Run(ctx context.Context, start session.State) session.Result
}

// RunRecorder receives finished sessions. It is optional.
type RunRecorder interface {
	RecordRun(ctx context.Context, run RunSummary) (string, error)
	NameRun(ctx context.Context, id, name string) error
}

// RunSummary describes a finished session for the recorder.
type RunSummary struct {
	StartLevel int
	Result     session.Result
	Qualified  bool
}

// UI presents the active screen. Present renders the controller's View and
// passes input to Dispatch until Dispatch reports the screen is done. It
// returns ctx.Err() if the context is cancelled first.
type UI interface {
	Present(ctx context.Context, scr Screen) error
}

// Screen is the controller surface a UI works against.
type Screen interface {
	View() View
	Dispatch(ev Event) bool
}

// View is a rendering snapshot of the controller.
type View struct {
	State      State
	Board      scores.Board
	Capacity   int
	Name       string
	NameMaxLen int
	Last       session.State // Snapshot of the most recent session
	Buttons    []Button
	Width      int
	Height     int
}

// Config holds the controller's collaborators.
type Config struct {
	Store      BoardStore
	Runner     SessionRunner
	Layout     Layout
	NameMaxLen int
	StartLives int
	Recorder   RunRecorder // May be nil
	Logger     *log.Logger // May be nil
}

// Controller is the top-level screen state machine.
type Controller struct {
	state      State
	running    bool
	board      scores.Board
	store      BoardStore
	runner     SessionRunner
	layout     Layout
	name       *input.NameBuffer
	startLives int
	recorder   RunRecorder
	logger     *log.Logger

	pendingLevel int           // Start level of the session about to run
	last         session.State // Snapshot after the most recent session
	lastRunID    string        // Recorder ID of the most recent session
}

// New creates a controller in the Menu state and loads the board.
func New(cfg Config) (*Controller, error) {
	if cfg.Store == nil {
		return nil, errors.New("flow: a board store is required")
	}
	if cfg.Runner == nil {
		return nil, errors.New("flow: a session runner is required")
	}
	if cfg.StartLives < 1 {
		return nil, fmt.Errorf("flow: start lives must be at least 1, got %d", cfg.StartLives)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Controller{
		state:      StateMenu,
		running:    true,
		board:      cfg.Store.Load(),
		store:      cfg.Store,
		runner:     cfg.Runner,
		layout:     cfg.Layout,
		name:       input.NewNameBuffer(cfg.NameMaxLen),
		startLives: cfg.StartLives,
		recorder:   cfg.Recorder,
		logger:     logger,
	}, nil
}

// State returns the active screen.
func (c *Controller) State() State {
	return c.state
}

// Running reports whether the shell loop should continue.
func (c *Controller) Running() bool {
	return c.running
}

// Board returns a copy of the in-memory board.
func (c *Controller) Board() scores.Board {
	return c.board.Clone()
}

// View returns a snapshot for rendering the active screen.
func (c *Controller) View() View {
	return View{
		State:      c.state,
		Board:      c.board.Clone(),
		Capacity:   c.store.Capacity(),
		Name:       c.name.String(),
		NameMaxLen: c.name.MaxLen(),
		Last:       c.last,
		Buttons:    c.layout.Buttons(c.state),
		Width:      c.layout.Width,
		Height:     c.layout.Height,
	}
}

// Run drives the shell until the player quits or ctx is cancelled.
// A cancelled context is a normal exit and returns nil.
func (c *Controller) Run(ctx context.Context, ui UI) error {
	for c.Running() {
		if ctx.Err() != nil {
			c.stop("signal")
			break
		}

		if c.state == StatePlaying {
			c.play(ctx)
			continue
		}

		if err := ui.Present(ctx, c); err != nil {
			if ctx.Err() != nil {
				c.stop("signal")
				break
			}
			return fmt.Errorf("flow: presenting %s: %w", c.state, err)
		}
	}
	return nil
}

// Dispatch applies one event to the active screen. It returns true when the
// presented screen must close: the state changed or the shell stopped.
func (c *Controller) Dispatch(ev Event) bool {
	if !c.running {
		return true
	}
	before := c.state

	if ev.Kind == EventQuit {
		c.stop("quit")
		return true
	}

	switch c.state {
	case StateMenu:
		c.handleMenu(ev)
	case StateLevelSelect:
		c.handleLevelSelect(ev)
	case StateInstructions, StateHighScores, StateAbout:
		c.handleInfo(ev)
	case StateNewHighScore:
		c.handleNameEntry(ev)
	case StatePlaying:
		// Input belongs to the engine while a session runs.
	}

	return !c.running || c.state != before
}

// resolveHotkey turns a key press into the Select or Back it mirrors.
func (c *Controller) resolveHotkey(ev Event) Event {
	if ev.Kind != EventKeyPress {
		return ev
	}
	switch ev.Key.Code {
	case KeyEscape:
		return Back()
	case KeyRune:
		if b, ok := c.layout.Hotkey(c.state, ev.Key.Rune); ok {
			return b.Event()
		}
	}
	return ev
}

func (c *Controller) handleMenu(ev Event) {
	ev = c.resolveHotkey(ev)
	if ev.Kind != EventSelect {
		return
	}

	switch ev.Target.Kind {
	case TargetStartGame:
		c.startSession(1)
	case TargetLevelSelect:
		c.enter(StateLevelSelect)
	case TargetInstructions:
		c.enter(StateInstructions)
	case TargetHighScores:
		c.board = c.store.Load()
		c.enter(StateHighScores)
	case TargetAbout:
		c.enter(StateAbout)
	case TargetExit:
		c.stop("exit")
	}
}

func (c *Controller) handleLevelSelect(ev Event) {
	ev = c.resolveHotkey(ev)

	switch ev.Kind {
	case EventBack:
		c.enter(StateMenu)
	case EventSelect:
		switch ev.Target.Kind {
		case TargetLevel:
			if ev.Target.Level >= 1 {
				c.startSession(ev.Target.Level)
			}
		case TargetBack:
			c.enter(StateMenu)
		}
	}
}

func (c *Controller) handleInfo(ev Event) {
	ev = c.resolveHotkey(ev)

	switch {
	case ev.Kind == EventBack:
		c.enter(StateMenu)
	case ev.Kind == EventSelect && ev.Target.Kind == TargetBack:
		c.enter(StateMenu)
	}
}

func (c *Controller) handleNameEntry(ev Event) {
	if ev.Kind != EventKeyPress {
		return
	}

	switch ev.Key.Code {
	case KeyEnter:
		c.commitName()
	case KeyBackspace:
		c.name.Backspace()
	case KeyRune:
		c.name.Append(ev.Key.Rune)
	}
}

// commitName inserts the entered name with the last session's score into
// the stored board and writes it through.
func (c *Controller) commitName() {
	name := c.name.Commit()
	entry := scores.Entry{Name: name, Score: c.last.Score}

	board, err := c.store.Update(func(b scores.Board) scores.Board {
		return scores.Insert(b, c.store.Capacity(), entry)
	})
	c.board = board
	if err != nil {
		c.logger.Error("could not save high scores", "error", err)
	} else {
		c.logger.Info("high score saved", "name", name, "score", entry.Score)
	}

	if c.recorder != nil && c.lastRunID != "" {
		if err := c.recorder.NameRun(context.Background(), c.lastRunID, name); err != nil {
			c.logger.Warn("could not name run in history", "run", c.lastRunID, "error", err)
		}
	}

	c.enter(StateHighScores)
}

func (c *Controller) startSession(level int) {
	c.pendingLevel = level
	c.enter(StatePlaying)
}

// play runs the pending session and moves to the screen its outcome calls for.
func (c *Controller) play(ctx context.Context) {
	start := session.State{Level: c.pendingLevel, Lives: c.startLives, Score: 0}
	c.logger.Info("session started", "level", start.Level, "lives", start.Lives)

	res := c.runner.Run(ctx, start)
	c.last = res.State
	c.lastRunID = ""

	c.logger.Info("session ended",
		"outcome", res.Outcome,
		"level", res.State.Level,
		"score", res.State.Score,
	)

	switch res.Outcome {
	case session.OutcomeQuit:
		c.stop("quit during session")

	case session.OutcomeGameOver:
		// Other sessions may have committed since this one started.
		c.board = c.store.Load()
		qualified := scores.Qualifies(c.board, c.store.Capacity(), res.State.Score)
		c.record(ctx, start.Level, res, qualified)
		if qualified {
			c.enter(StateNewHighScore)
		} else {
			c.enter(StateMenu)
		}

	default:
		c.record(ctx, start.Level, res, false)
		c.enter(StateMenu)
	}
}

func (c *Controller) record(ctx context.Context, startLevel int, res session.Result, qualified bool) {
	if c.recorder == nil {
		return
	}
	id, err := c.recorder.RecordRun(ctx, RunSummary{
		StartLevel: startLevel,
		Result:     res,
		Qualified:  qualified,
	})
	if err != nil {
		c.logger.Warn("could not record run", "error", err)
		return
	}
	c.lastRunID = id
}

// enter switches screens. The name buffer is reset on entering and on
// leaving name entry so an uncommitted name never leaks.
func (c *Controller) enter(s State) {
	if s == StateNewHighScore || c.state == StateNewHighScore {
		c.name.Reset()
	}
	if s != c.state {
		c.logger.Debug("screen changed", "from", c.state, "to", s)
	}
	c.state = s
}

func (c *Controller) stop(reason string) {
	if c.running {
		c.logger.Info("shell stopping", "reason", reason, "screen", c.state)
	}
	c.running = false
}
