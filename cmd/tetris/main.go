// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list                 - List available game variants
//	tetris play <game>          - Play a game
//	tetris menu                 - Pick a game interactively
//	tetris scores <game>        - Show high scores for a game
//	tetris serve                - Serve games over SSH and the leaderboard over HTTP
//	tetris replay show <run>    - Show a stored replay
//	tetris replay verify <run>  - Re-simulate a stored replay
//	tetris replay export <run> <file> - Write a stored replay to a file
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.tetris/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A falling-block puzzle game for the terminal, playable locally or over SSH.

Available commands:
  list     - Show all game variants
  play     - Play a specific variant directly
  menu     - Interactive game picker menu
  scores   - View high scores
  serve    - Start the SSH server and HTTP leaderboard
  replay   - Inspect and verify recorded runs

Examples:
  tetris list
  tetris play tetris
  tetris play tetris_mini --difficulty hard
  tetris serve --ssh :2222 --http :8080
  tetris replay verify 0b7c...`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}
