package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is the falling piece under player and gravity control.
type Piece struct {
	Kind     Kind
	Rotation int
	Anchor   Point
	Color    core.Color
}

// Cells returns the absolute cells the piece covers.
func (p Piece) Cells() [4]Point {
	return CandidateCells(p.Kind, p.Rotation, p.Anchor)
}

// CandidateCells returns the cells kind would cover in rotation at anchor.
func CandidateCells(kind Kind, rotation int, anchor Point) [4]Point {
	var cells [4]Point
	for i, o := range Shape(kind, rotation) {
		cells[i] = anchor.Add(o)
	}
	return cells
}

// CanPlace reports whether all four candidate cells are free on the board.
func CanPlace(b *Board, kind Kind, rotation int, anchor Point) bool {
	for _, c := range CandidateCells(kind, rotation, anchor) {
		if !b.IsCellFree(c.Col, c.Row) {
			return false
		}
	}
	return true
}

// moved returns the piece shifted by (dx, dy) if the result fits.
func (p Piece) moved(b *Board, dx, dy int) (Piece, bool) {
	anchor := Point{Col: p.Anchor.Col + dx, Row: p.Anchor.Row + dy}
	if !CanPlace(b, p.Kind, p.Rotation, anchor) {
		return p, false
	}
	p.Anchor = anchor
	return p, true
}

// rotated returns the piece in its next rotation state if that fits at
// the same anchor. There are no kicks: a blocked rotation is discarded.
func (p Piece) rotated(b *Board) (Piece, bool) {
	next := (p.Rotation + 1) % Rotations
	if !CanPlace(b, p.Kind, next, p.Anchor) {
		return p, false
	}
	p.Rotation = next
	return p, true
}

// landing returns the piece dropped as far as it can fall.
func (p Piece) landing(b *Board) (Piece, int) {
	rows := 0
	for {
		next, ok := p.moved(b, 0, -1)
		if !ok {
			return p, rows
		}
		p = next
		rows++
	}
}
