package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagReplayFrames bool

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Inspect and verify recorded runs",
	Long: `Every finished run with a score is stored with a replay: its seed, its
config and the actions of each tick. Replays can be shown, exported to a
file and re-simulated to check that they reproduce the recorded score.

A run can be given as a run ID from 'tetris scores' or as a path to an
exported replay file.

Examples:
  tetris replay show 6f1c...
  tetris replay show 6f1c... --frames
  tetris replay verify 6f1c...
  tetris replay export 6f1c... run.replay
  tetris replay verify ./run.replay`,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <run-id|file>",
	Short: "Show a replay's metadata",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <run-id|file>",
	Short: "Re-simulate a replay and compare the result",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayExportCmd = &cobra.Command{
	Use:   "export <run-id> <file>",
	Short: "Write a stored replay to a file",
	Args:  cobra.ExactArgs(2),
	Run:   runReplayExport,
}

func init() {
	replayShowCmd.Flags().BoolVar(&flagReplayFrames, "frames", false, "Also list every recorded frame")

	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayExportCmd)
}

// loadReplayData returns the encoded replay for a run ID or file path.
func loadReplayData(ref string) ([]byte, error) {
	if strings.ContainsAny(ref, "/\\") || strings.HasSuffix(ref, ".replay") {
		return os.ReadFile(ref)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rec, err := store.Replay(ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("no replay stored for run %q", ref)
	}
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

func loadReplay(ref string) replay.Replay {
	data, err := loadReplayData(ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	r, err := replay.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return r
}

func runReplayShow(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])

	fmt.Printf("Run:       %s\n", r.RunID)
	fmt.Printf("Game:      %s\n", r.GameID)
	fmt.Printf("Recorded:  %s\n", r.RecordedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed:      %d\n", r.Seed)
	fmt.Printf("Board:     %dx%d\n", r.Config.Board.Width, r.Config.Board.Height)
	fmt.Printf("Gravity:   %dms base, -%dms per level, %dms min\n",
		r.Config.Gravity.BaseIntervalMs, r.Config.Gravity.LevelStepMs, r.Config.Gravity.MinIntervalMs)
	fmt.Printf("Duration:  %s (%d ticks at %d/s)\n", r.Duration().Round(10*time.Millisecond), r.Final.Ticks, r.TickRate)
	fmt.Printf("Input:     %d actions in %d frames\n", r.ActionCount(), len(r.Frames))
	fmt.Printf("Result:    score %d, %d lines\n", r.Final.Score, r.Final.Lines)

	if flagReplayFrames {
		fmt.Println()
		for _, f := range r.Frames {
			fmt.Printf("  %6d  %s\n", f.Tick, strings.Join(f.Actions, " "))
		}
	}
}

func runReplayVerify(_ *cobra.Command, args []string) {
	r := loadReplay(args[0])

	res, err := tetris.VerifyReplay(r)
	if errors.Is(err, replay.ErrMismatch) {
		fmt.Printf("MISMATCH: %v\n", err)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	state := "in progress"
	if res.GameOver {
		state = "game over"
	}
	fmt.Printf("OK: run %s reproduces score %d, %d lines, %d pieces (%s)\n",
		r.RunID, res.Score, res.Lines, res.Pieces, state)
}

func runReplayExport(_ *cobra.Command, args []string) {
	data, err := loadReplayData(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(data), args[1])
}
