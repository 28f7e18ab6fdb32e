package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/registry"
	"github.com/vovakirdan/fifteen/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show best solves for a board",
	Long: `Display the 10 best solves for the specified board (default: fifteen).
Solves rank by fewest moves, then by shortest time.

Examples:
  fifteen scores
  fifteen scores eight
  fifteen scores fifteen --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded solve for the board")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "fifteen"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown board %q, run 'fifteen list' to see available boards", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening solves database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSolves(gameID); err != nil {
			return fmt.Errorf("clearing solves: %w", err)
		}
		fmt.Printf("Cleared solves for %s.\n", title)
		return nil
	}

	solves, err := store.TopSolves(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Printf("Best Solves - %s\n", title)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fifteen play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %s\n", "Rank", "Moves", "Time", "Grid", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %s\n", "----", "-----", "----", "----", "----")

	for i, s := range solves {
		grid := fmt.Sprintf("%dx%d", s.GridW, s.GridH)
		elapsed := (time.Duration(s.DurationSecs) * time.Second).String()
		fmt.Printf("  %-4d  %-6d  %-6s  %-5s  %s\n", i+1, s.Moves, elapsed, grid, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Solved %d times, best %d moves, average %.1f, fastest %s\n",
			stats.SolveCount, stats.BestMoves, stats.AvgMoves,
			time.Duration(stats.FastestSecs)*time.Second)
	}
	return nil
}
