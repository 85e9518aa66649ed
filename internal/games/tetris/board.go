package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Point is a board coordinate. Row 0 is the bottom row and rows grow upward.
// Rows at or above the board height form the spawn buffer.
type Point struct {
	Col, Row int
}

// Add returns p shifted by the offset.
func (p Point) Add(o Offset) Point {
	return Point{Col: p.Col + o.DX, Row: p.Row + o.DY}
}

type cell struct {
	occupied bool
	color    core.Color
}

// Board is a fixed-size grid of locked cells. It never holds the active piece.
type Board struct {
	width  int
	height int
	cells  []cell // row-major, row 0 first
}

// NewBoard creates an empty width×height board.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tetris: invalid board size %dx%d", width, height))
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of visible rows.
func (b *Board) Height() int { return b.height }

// index maps an in-board coordinate to its slot. It is the only place
// that does bounds arithmetic and panics on anything outside the board.
func (b *Board) index(col, row int) int {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		panic(fmt.Sprintf("tetris: cell (%d,%d) outside %dx%d board", col, row, b.width, b.height))
	}
	return row*b.width + col
}

// IsCellFree reports whether a piece cell may occupy (col, row).
// Cells left, right or below the board are never free. Cells above the
// board are always free, which lets a piece spawn partly out of view.
func (b *Board) IsCellFree(col, row int) bool {
	if col < 0 || col >= b.width || row < 0 {
		return false
	}
	if row >= b.height {
		return true
	}
	return !b.cells[b.index(col, row)].occupied
}

// Occupy marks (col, row) as locked with the given color.
// Cells in the spawn buffer are dropped.
func (b *Board) Occupy(col, row int, color core.Color) {
	if row >= b.height {
		return
	}
	b.cells[b.index(col, row)] = cell{occupied: true, color: color}
}

// At returns the occupancy and color of an in-board cell.
func (b *Board) At(col, row int) (bool, core.Color) {
	c := b.cells[b.index(col, row)]
	return c.occupied, c.color
}

// RowIsFull reports whether every column of row is occupied.
func (b *Board) RowIsFull(row int) bool {
	start := b.index(0, row)
	for _, c := range b.cells[start : start+b.width] {
		if !c.occupied {
			return false
		}
	}
	return true
}

// ClearRowAndShiftDown removes row, moves every row above it down by one
// and empties the top row.
func (b *Board) ClearRowAndShiftDown(row int) {
	start := b.index(0, row)
	copy(b.cells[start:], b.cells[start+b.width:])
	top := b.index(0, b.height-1)
	clear(b.cells[top : top+b.width])
}

// ClearFullRows removes every full row and returns how many were removed.
// Rows are scanned bottom to top and a row index is re-tested after a
// shift, since the row that slid into it may be full as well.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for row := 0; row < b.height; {
		if b.RowIsFull(row) {
			b.ClearRowAndShiftDown(row)
			cleared++
			continue
		}
		row++
	}
	return cleared
}

// Reset empties every cell.
func (b *Board) Reset() {
	clear(b.cells)
}

// OccupiedCount returns the number of locked cells.
func (b *Board) OccupiedCount() int {
	n := 0
	for _, c := range b.cells {
		if c.occupied {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}
