package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/config"
	"github.com/vovakirdan/maze-arcade/internal/flow"
	"github.com/vovakirdan/maze-arcade/internal/platform/tui"
	"github.com/vovakirdan/maze-arcade/internal/registry"
	"github.com/vovakirdan/maze-arcade/internal/scores"
	"github.com/vovakirdan/maze-arcade/internal/session"
	"github.com/vovakirdan/maze-arcade/internal/storage"
)

var (
	flagEngine string
	flagScript string
)

// loadConfig loads the shell config and applies command-line overrides.
func loadConfig() (config.ShellConfig, error) {
	cfg, err := config.LoadShell(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagScores != "" {
		cfg.Scores.Path = flagScores
	}
	if flagDBPath != "" {
		cfg.History.DBPath = flagDBPath
		cfg.History.Enabled = true
	}
	if flagEngine != "" {
		cfg.Engine.ID = flagEngine
	}
	if flagScript != "" {
		cfg.Engine.Script = flagScript
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// shell holds what every controller in the process shares: the score
// file, the history database, and the parsed configuration.
type shell struct {
	cfg     config.ShellConfig
	layout  flow.Layout
	scores  *scores.Store
	history *storage.Store // nil when history is off
	opts    session.Options
	logger  *log.Logger
}

func newShell(cfg config.ShellConfig, logger *log.Logger) (*shell, error) {
	if !registry.Exists(cfg.Engine.ID) {
		return nil, fmt.Errorf("unknown engine %q (run 'arcade engines' to list them)", cfg.Engine.ID)
	}

	layout, err := flow.NewLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	opts, err := session.OptionsFromConfig(cfg.Session, cfg.Boards)
	if err != nil {
		return nil, err
	}
	store, err := scores.NewStore(cfg.Scores.Path, cfg.Scores.Capacity, logger)
	if err != nil {
		return nil, err
	}

	sh := &shell{
		cfg:    cfg,
		layout: layout,
		scores: store,
		opts:   opts,
		logger: logger,
	}

	if cfg.History.Enabled {
		hs, err := storage.Open(cfg.History.DBPath)
		if err != nil {
			// Continue without history - the shell still works
			logger.Warn("could not open history database", "path", cfg.History.DBPath, "error", err)
		} else {
			sh.history = hs
		}
	}

	logger.Debug("shell configured",
		"engine", cfg.Engine.ID,
		"scores", store.Path(),
		"history", sh.history != nil,
	)
	return sh, nil
}

// newController builds a controller whose screens and levels run on term.
// It has the tui.ShellFactory signature so serve can build one per
// connection.
func (sh *shell) newController(_ context.Context, term *tui.Terminal, logger *log.Logger) (*flow.Controller, error) {
	engine, err := registry.Create(sh.cfg.Engine.ID, registry.Env{
		Runtime:    term.Runtime(),
		Script:     sh.cfg.Engine.Script,
		BoardNames: sh.cfg.Boards.Names,
		Host:       term,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	var recorder flow.RunRecorder
	if sh.history != nil {
		recorder = sh.history
	}

	return flow.New(flow.Config{
		Store:      sh.scores,
		Runner:     session.NewRunner(engine, term, sh.opts, logger),
		Layout:     sh.layout,
		NameMaxLen: sh.cfg.Name.MaxLen,
		StartLives: sh.cfg.Session.StartLives,
		Recorder:   recorder,
		Logger:     logger,
	})
}

func (sh *shell) Close() error {
	if sh.history != nil {
		return sh.history.Close()
	}
	return nil
}

// runShell runs a controller until it stops. A cancelled context is a
// normal exit.
func runShell(ctx context.Context, ctrl *flow.Controller, term *tui.Terminal) error {
	err := ctrl.Run(ctx, term)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
