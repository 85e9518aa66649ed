package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows the registered game variants with the best score recorded for each.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Best scores are a bonus; list works without a database.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllGamesStats()
		store.Close()
	}

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-16s  %s\n", idWidth, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-16s  %s\n", idWidth, "--", "-----", "----")
	for _, g := range games {
		best := "-"
		if s, ok := stats[g.ID]; ok && s.GamesCount > 0 {
			best = fmt.Sprintf("%d (%d games)", s.HighScore, s.GamesCount)
		}
		fmt.Printf("  %-*s  %-16s  %s\n", idWidth, g.ID, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'tetris play <id>' to play.")
}
