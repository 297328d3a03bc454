package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-arcade/internal/scores"
)

var (
	flagScoresJSON  bool
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score board",
	Long: `Display the high-score board the shell reads at startup.

Examples:
  arcade scores
  arcade scores --json
  arcade scores --reset
  arcade scores --scores ./scores.json`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print the board as JSON")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Clear the board")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := scores.NewStore(cfg.Scores.Path, cfg.Scores.Capacity, nil)
	if err != nil {
		return err
	}

	if flagScoresReset {
		if err := store.Save(nil); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", store.Path())
		return nil
	}

	board := store.Load()

	if flagScoresJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if board == nil {
			board = scores.Board{}
		}
		return enc.Encode(board)
	}

	colorTitle.Printf("High Scores - %s\n", store.Path())
	fmt.Println()

	if len(board) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		colorHint.Println("Play 'arcade play' to set the first high score!")
		return nil
	}

	// Print header
	colorHeader.Printf("  %-4s  %-12s  %s\n", "Rank", "Name", "Score")
	colorHeader.Printf("  %-4s  %-12s  %s\n", "----", "----", "-----")

	for i, e := range board {
		fmt.Printf("  %-4d  %-12s  %d\n", i+1, e.Name, e.Score)
	}

	if best, ok := board.Best(); ok {
		fmt.Println()
		colorBest.Printf("Best: %s %d\n", best.Name, best.Score)
	}
	return nil
}
