package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/maze-arcade/internal/core"
	"github.com/vovakirdan/maze-arcade/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the arcade shell in this terminal",
	Long: `Start the arcade at the main menu.

Controls:
  Up/Down/j/k  - Move the highlight
  Enter        - Choose the highlighted button
  1-6          - Menu hot-keys
  Mouse        - Click a button
  Esc/b        - Back to the menu
  Q/Ctrl+C     - Quit

Examples:
  arcade play
  arcade play --engine scripted --script ./run.yaml
  arcade play --scores ./scores.json --log-file arcade.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagEngine, "engine", "", "Level engine ID (overrides config)")
	playCmd.Flags().StringVar(&flagScript, "script", "", "Script for the scripted engine")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	// stderr is the screen, so logs are dropped unless --log-file is set
	logger, closeLog, err := newLogger("arcade", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sh, err := newShell(cfg, logger)
	if err != nil {
		return err
	}
	defer sh.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	terminal := tui.NewTerminal(tui.TerminalConfig{
		Runtime: localRuntime(),
		Layout:  sh.layout,
	})

	ctrl, err := sh.newController(ctx, terminal, logger)
	if err != nil {
		return err
	}
	return runShell(ctx, ctrl, terminal)
}

// localRuntime describes the terminal the process is attached to.
func localRuntime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}
