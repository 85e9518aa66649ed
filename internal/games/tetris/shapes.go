// Package tetris implements the falling-block puzzle: a fixed shape catalogue,
// an occupancy board, one active piece under gravity and player control,
// row clearing, scoring and game over.
//
// The Engine is pure and single-threaded. Time is injected through Advance
// and randomness through a KindSource, so identical inputs always produce
// identical games. Game adapts the Engine to the terminal platform.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven piece shapes.
type Kind uint8

const (
	KindO Kind = iota
	KindI
	KindS
	KindZ
	KindL
	KindJ
	KindT

	kindCount = 7
)

// Rotations is the number of rotation states every kind owns.
const Rotations = 4

// Kinds lists every piece kind in catalogue order.
var Kinds = [kindCount]Kind{KindO, KindI, KindS, KindZ, KindL, KindJ, KindT}

var kindNames = [kindCount]string{"O", "I", "S", "Z", "L", "J", "T"}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind converts a single-letter name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Offset is a cell position relative to a piece anchor.
type Offset struct {
	DX, DY int
}

// catalogue holds four cells per rotation state. Positive DY points up.
// These states are not the standard rotation system: S and I repeat their
// first two states, O never changes, and L/J/Z use hand-tuned states.
var catalogue = [kindCount][Rotations][4]Offset{
	KindO: {
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
	},
	KindI: {
		{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
		{{0, 0}, {0, -1}, {0, 1}, {0, 2}},
		{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
		{{0, 0}, {0, -1}, {0, 1}, {0, 2}},
	},
	KindS: {
		{{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, -1}},
		{{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, -1}},
	},
	KindZ: {
		{{0, 0}, {-1, -1}, {0, -1}, {1, 0}},
		{{0, 0}, {-1, 1}, {-1, 0}, {0, -1}},
		{{0, 0}, {1, 1}, {0, 1}, {-1, 0}},
		{{0, 0}, {1, -1}, {1, 0}, {0, 1}},
	},
	KindL: {
		{{0, 0}, {-1, 0}, {1, 0}, {-1, -1}},
		{{0, 1}, {0, 0}, {0, -1}, {1, -1}},
		{{1, 1}, {-1, 0}, {0, 0}, {1, 0}},
		{{-1, 1}, {0, 1}, {0, 0}, {0, -1}},
	},
	KindJ: {
		{{0, 0}, {-1, 0}, {1, 0}, {1, -1}},
		{{0, 1}, {0, 0}, {0, -1}, {-1, -1}},
		{{-1, 1}, {1, 0}, {0, 0}, {-1, 0}},
		{{1, 1}, {0, 1}, {0, 0}, {0, -1}},
	},
	KindT: {
		{{0, 0}, {-1, 0}, {1, 0}, {0, -1}},
		{{0, 0}, {0, 1}, {0, -1}, {1, 0}},
		{{0, 0}, {-1, 0}, {1, 0}, {0, 1}},
		{{0, 0}, {0, 1}, {0, -1}, {-1, 0}},
	},
}

// kindColors is the fixed color tag of each kind.
var kindColors = [kindCount]core.Color{
	KindO: core.ColorRed,
	KindI: core.ColorYellow,
	KindS: core.ColorGreen,
	KindZ: core.ColorBlue,
	KindL: core.ColorOrange,
	KindJ: core.ColorPurple,
	KindT: core.ColorCyan,
}

// Shape returns the four offsets of kind in the given rotation state.
// Panics if kind or rotation is outside the catalogue.
func Shape(kind Kind, rotation int) [4]Offset {
	if int(kind) >= kindCount {
		panic(fmt.Sprintf("tetris: unknown piece kind %d", kind))
	}
	if rotation < 0 || rotation >= Rotations {
		panic(fmt.Sprintf("tetris: rotation %d out of range for %s", rotation, kind))
	}
	return catalogue[kind][rotation]
}

// ColorOf returns the color tag of a kind.
func ColorOf(kind Kind) core.Color {
	if int(kind) >= kindCount {
		panic(fmt.Sprintf("tetris: unknown piece kind %d", kind))
	}
	return kindColors[kind]
}

// topOffset returns the highest DY among the shape's offsets.
func topOffset(kind Kind, rotation int) int {
	shape := Shape(kind, rotation)
	top := shape[0].DY
	for _, o := range shape[1:] {
		top = max(top, o.DY)
	}
	return top
}
