package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// SnapshotCell is one cell of a snapshot grid.
type SnapshotCell struct {
	Occupied bool
	Color    core.Color
}

// Snapshot is a detached, read-only view of the engine for rendering.
// Grid is indexed [row][col] with row 0 at the bottom.
type Snapshot struct {
	Width  int
	Height int
	Grid   [][]SnapshotCell

	HasActive   bool
	Active      [4]Point
	ActiveKind  Kind
	ActiveColor core.Color
	Ghost       [4]Point

	Score        int
	Level        int
	Lines        int
	Pieces       int
	Paused       bool
	GameOver     bool
	FallInterval time.Duration
}

// Snapshot copies the current state. Mutating the result does not touch the engine.
func (e *Engine) Snapshot() Snapshot {
	w, h := e.board.Width(), e.board.Height()
	grid := make([][]SnapshotCell, h)
	for row := range grid {
		grid[row] = make([]SnapshotCell, w)
		for col := range grid[row] {
			occupied, color := e.board.At(col, row)
			grid[row][col] = SnapshotCell{Occupied: occupied, Color: color}
		}
	}

	s := Snapshot{
		Width:        w,
		Height:       h,
		Grid:         grid,
		Score:        e.score,
		Level:        e.Level(),
		Lines:        e.lines,
		Pieces:       e.pieces,
		Paused:       e.paused,
		GameOver:     e.gameOver,
		FallInterval: e.fallInterval,
	}
	if e.hasPiece {
		s.HasActive = true
		s.Active = e.piece.Cells()
		s.ActiveKind = e.piece.Kind
		s.ActiveColor = e.piece.Color
		s.Ghost, _ = e.Ghost()
	}
	return s
}

// Occupied reports whether (col, row) is a locked cell. Out-of-range
// coordinates are reported as empty.
func (s Snapshot) Occupied(col, row int) bool {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return false
	}
	return s.Grid[row][col].Occupied
}
