package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("tetris", 700); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 700 {
		t.Errorf("Expected 700 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("tetris", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different game
	if _, err := store.SaveScore("tetris_mini", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].RunID != "" {
			t.Errorf("scores[%d] has run ID %q, want none", i, scores[i].RunID)
		}
	}

	miniScores, err := store.TopScores("tetris_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(miniScores) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(miniScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("tetris", (i+1)*100)
	}

	scores, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	for i := range 12 {
		store.SaveScore("tetris", i)
	}
	scores, err = store.TopScores("tetris", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("tetris", 100)
	store.SaveScore("tetris", 300)
	store.SaveScore("tetris", 200)

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		RunID:  "run-1",
		GameID: "tetris",
		Score:  1200,
		Lines:  12,
		Level:  1,
		Replay: []byte{0x28, 0xb5, 0x2f, 0xfd},
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	got := scores[0]
	if got.RunID != "run-1" || got.Score != 1200 || got.Lines != 12 || got.Level != 1 {
		t.Errorf("Unexpected score entry: %+v", got)
	}

	rec, err := store.Replay("run-1")
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if rec.GameID != "tetris" || !bytes.Equal(rec.Data, run.Replay) {
		t.Errorf("Unexpected replay record: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Replay has no creation time")
	}
}

func TestStoreSaveRunRejectsDuplicates(t *testing.T) {
	store := openTestStore(t)

	run := Run{RunID: "dup", GameID: "tetris", Score: 100, Replay: []byte("a")}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(run); err == nil {
		t.Fatal("Expected error saving the same run twice")
	}

	// The failed transaction must not leave a second score behind
	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 1 {
		t.Errorf("Expected 1 score after duplicate save, got %d", len(scores))
	}

	if _, err := store.SaveRun(Run{GameID: "tetris"}); err == nil {
		t.Error("Expected error for run without ID")
	}
}

func TestStoreSaveRunWithoutReplay(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{RunID: "bare", GameID: "tetris", Score: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.Replay("bare"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() error = %v, want ErrNotFound", err)
	}
}

func TestStoreSaveReplayReplaces(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveReplay("r", "tetris", []byte("first")); err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if err := store.SaveReplay("r", "tetris", []byte("second")); err != nil {
		t.Fatalf("SaveReplay() overwrite failed: %v", err)
	}

	rec, err := store.Replay("r")
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if string(rec.Data) != "second" {
		t.Errorf("Expected replaced data, got %q", rec.Data)
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() error = %v, want ErrNotFound", err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tetris", 100)
	store.SaveRun(Run{RunID: "a", GameID: "tetris", Score: 200, Replay: []byte("x")})
	store.SaveScore("tetris_mini", 300)

	// Clear only classic scores
	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("tetris", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(classic))
	}
	if _, err := store.Replay("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay should be gone after clear, got %v", err)
	}

	mini, _ := store.TopScores("tetris_mini", 10)
	if len(mini) != 1 {
		t.Errorf("Mini scores should not be affected by clearing classic")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("tetris")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty game: %+v", empty)
	}

	store.SaveRun(Run{RunID: "1", GameID: "tetris", Score: 100, Lines: 1})
	store.SaveRun(Run{RunID: "2", GameID: "tetris", Score: 300, Lines: 3})
	store.SaveRun(Run{RunID: "3", GameID: "tetris_mini", Score: 50})

	stats, err := store.GameStats("tetris")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.TotalLines != 4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played time")
	}

	all, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["tetris_mini"].HighScore != 50 {
		t.Errorf("Unexpected mini stats: %+v", all["tetris_mini"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tetris/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tetris", "scores.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
