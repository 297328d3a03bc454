package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-arcade/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent runs",
	Long: `Display the most recent sessions from the history database, or one
run in detail when its ID is given.

Runs are only logged when history is enabled in the config or --db is set.

Examples:
  arcade history
  arcade history --limit 50
  arcade history --db ./history.db
  arcade history 3f2b9c1e-8d4a-4f7e-9b1a-2c5d6e7f8a9b`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if len(args) == 1 {
		return showRun(ctx, os.Stdout, store, args[0])
	}

	runs, err := store.RecentRuns(ctx, flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		if !cfg.History.Enabled {
			fmt.Println()
			colorHint.Println("History is off; enable it in the config or pass --db.")
		}
		return nil
	}

	colorHeader.Printf("  %-36s  %-16s  %-5s  %-8s  %-11s  %s\n", "ID", "Date", "Level", "Score", "Outcome", "Name")
	colorHeader.Printf("  %-36s  %-16s  %-5s  %-8s  %-11s  %s\n", "--", "----", "-----", "-----", "-------", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-16s  %-5d  %-8d  %-11s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"),
			r.FinalLevel, r.Score, r.Outcome, r.Name)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	colorBest.Printf("Runs: %d  Best: %d  Average: %.0f  Furthest level: %d  Game overs: %d\n",
		st.Runs, st.BestScore, st.AvgScore, st.BestLevel, st.GameOvers)
	return nil
}

// showRun prints one run in detail.
func showRun(ctx context.Context, w io.Writer, store *storage.Store, id string) error {
	r, err := store.Run(ctx, id)
	if err != nil {
		return err
	}

	name := r.Name
	if name == "" {
		name = "-"
	}
	colorTitle.Fprintf(w, "Run %s\n", r.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Date:       %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Levels:     %d to %d\n", r.StartLevel, r.FinalLevel)
	fmt.Fprintf(w, "  Score:      %d\n", r.Score)
	fmt.Fprintf(w, "  Lives left: %d\n", r.Lives)
	fmt.Fprintf(w, "  Outcome:    %s\n", r.Outcome)
	fmt.Fprintf(w, "  Qualified:  %t\n", r.Qualified)
	fmt.Fprintf(w, "  Name:       %s\n", name)
	return nil
}
