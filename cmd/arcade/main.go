// arcade is a terminal maze-arcade shell: menus, level sessions, and a
// persistent high-score board, playable locally or over SSH.
//
// Usage:
//
//	arcade play              - Run the shell in this terminal
//	arcade serve             - Start SSH server for remote play
//	arcade scores            - Print the high-score board
//	arcade history           - Show recent runs from the history database
//	arcade engines           - List available level engines
//
// Global flags:
//
//	--config <path>    - Shell config YAML (default: search order)
//	--scores <path>    - High-score file (default: from config)
//	--db <path>        - History database; setting it enables history
//	--log-file <path>  - Write logs to a file
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible sessions
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import engines to register them
	_ "github.com/vovakirdan/maze-arcade/internal/engines/console"
	_ "github.com/vovakirdan/maze-arcade/internal/engines/scripted"
)

var (
	// Global flags
	flagConfig   string
	flagScores   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagFPS      int
	flagSeed     int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Maze Arcade - a classic maze chase shell for your terminal",
	Long: `Maze Arcade runs the menus, level sessions, and high-score board of a
classic maze chase game in your terminal.

Available commands:
  play     - Run the shell in this terminal
  serve    - Start SSH server for remote play
  scores   - Print the high-score board
  history  - Show recent runs
  engines  - List level engines

Examples:
  arcade play
  arcade play --engine scripted --script ./run.yaml
  arcade serve --ssh :2222
  arcade scores --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to shell config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScores, "scores", "", "Path to the high-score file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the history database (enables history)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(enginesCmd)
}
