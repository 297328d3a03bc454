package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/maze-arcade/internal/flow"
	"github.com/vovakirdan/maze-arcade/internal/platform/tui"
	"github.com/vovakirdan/maze-arcade/internal/scores"
	"github.com/vovakirdan/maze-arcade/internal/session"
	"github.com/vovakirdan/maze-arcade/internal/storage"
)

// withFlags points the global flags at a temp workspace and restores them.
func withFlags(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	saved := []string{flagConfig, flagScores, flagDBPath, flagEngine, flagScript}
	t.Cleanup(func() {
		flagConfig, flagScores, flagDBPath, flagEngine, flagScript = saved[0], saved[1], saved[2], saved[3], saved[4]
	})

	cfgPath := filepath.Join(dir, "shell.yaml")
	if err := os.WriteFile(cfgPath, []byte("engine:\n  id: console\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	flagConfig = cfgPath
	flagScores = filepath.Join(dir, "scores.json")
	flagDBPath = ""
	flagEngine = ""
	flagScript = ""
	return dir
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := withFlags(t)
	flagDBPath = filepath.Join(dir, "history.db")
	flagEngine = "scripted"
	flagScript = filepath.Join(dir, "run.yaml")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if cfg.Scores.Path != flagScores {
		t.Errorf("Scores.Path = %q", cfg.Scores.Path)
	}
	if !cfg.History.Enabled || cfg.History.DBPath != flagDBPath {
		t.Errorf("History = %+v, want enabled at %s", cfg.History, flagDBPath)
	}
	if cfg.Engine.ID != "scripted" || cfg.Engine.Script != flagScript {
		t.Errorf("Engine = %+v", cfg.Engine)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := withFlags(t)
	flagConfig = filepath.Join(dir, "missing.yaml")

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for a missing --config file")
	}
}

func TestNewShellUnknownEngine(t *testing.T) {
	withFlags(t)
	flagEngine = "pinball"

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if _, err := newShell(cfg, log.New(os.Stderr)); err == nil || !strings.Contains(err.Error(), "pinball") {
		t.Errorf("newShell() error = %v, want unknown engine", err)
	}
}

func TestNewShellBuildsController(t *testing.T) {
	dir := withFlags(t)
	flagDBPath = filepath.Join(dir, "history.db")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	sh, err := newShell(cfg, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("newShell() failed: %v", err)
	}
	defer sh.Close()

	if sh.history == nil {
		t.Error("history should be open when --db is set")
	}

	term := tui.NewTerminal(tui.TerminalConfig{Layout: sh.layout})
	ctrl, err := sh.newController(context.Background(), term, sh.logger)
	if err != nil {
		t.Fatalf("newController() failed: %v", err)
	}
	if ctrl.State() != flow.StateMenu || !ctrl.Running() {
		t.Errorf("controller starts in %v (running=%v)", ctrl.State(), ctrl.Running())
	}
}

func TestRunShellCancelled(t *testing.T) {
	withFlags(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	sh, err := newShell(cfg, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("newShell() failed: %v", err)
	}

	term := tui.NewTerminal(tui.TerminalConfig{Layout: sh.layout})
	ctrl, err := sh.newController(context.Background(), term, sh.logger)
	if err != nil {
		t.Fatalf("newController() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := runShell(ctx, ctrl, term); err != nil {
		t.Errorf("runShell() = %v, want nil on cancel", err)
	}
	if ctrl.Running() {
		t.Error("controller still running after cancel")
	}
}

func TestScoresReset(t *testing.T) {
	withFlags(t)
	t.Cleanup(func() { flagScoresReset = false })

	store, err := scores.NewStore(flagScores, scores.DefaultCapacity, nil)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := store.Save(scores.Board{{Name: "OLD", Score: 100}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	flagScoresReset = true
	if err := runScores(nil, nil); err != nil {
		t.Fatalf("runScores() failed: %v", err)
	}
	if board := store.Load(); len(board) != 0 {
		t.Errorf("board after reset = %+v", board)
	}
}

func TestShowRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	id, err := store.RecordRun(ctx, flow.RunSummary{
		StartLevel: 1,
		Result: session.Result{
			Outcome: session.OutcomeGameOver,
			State:   session.State{Level: 3, Score: 4200},
		},
		Qualified: true,
	})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	var out bytes.Buffer
	if err := showRun(ctx, &out, store, id); err != nil {
		t.Fatalf("showRun() failed: %v", err)
	}
	for _, want := range []string{id, "1 to 3", "4200", "game_over", "true"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := showRun(ctx, &out, store, "missing"); !errors.Is(err, storage.ErrUnknownRun) {
		t.Errorf("showRun(missing) = %v, want ErrUnknownRun", err)
	}
}
