package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Command is a player instruction. Quitting is the host's business and
// has no command.
type Command int

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdSoftDrop
	CmdHardDrop
	CmdRotate
	CmdTogglePause
	CmdRestart
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdSoftDrop:
		return "SoftDrop"
	case CmdHardDrop:
		return "HardDrop"
	case CmdRotate:
		return "Rotate"
	case CmdTogglePause:
		return "TogglePause"
	case CmdRestart:
		return "Restart"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Outcome describes what a command did.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // not applicable in the current state
	OutcomeMoved                    // piece moved or rotated
	OutcomeBlocked                  // collision; piece unchanged
	OutcomeLocked                   // piece locked into the board
	OutcomeToggled                  // pause flipped
	OutcomeRestarted                // new game started
)

// Settings configures an Engine.
type Settings struct {
	Width  int
	Height int

	// SpawnBuffer is how many rows above the board a new piece's top
	// cell may sit, at most config.MaxSpawnBuffer.
	SpawnBuffer int

	// PauseBlocksInput rejects movement while paused. When false only
	// gravity stops.
	PauseBlocksInput bool

	Policy Policy
}

// DefaultSettings returns a 10×20 board with the default policy.
func DefaultSettings() Settings {
	return Settings{
		Width:       10,
		Height:      20,
		SpawnBuffer: 1,
		Policy:      DefaultPolicy(),
	}
}

// Engine owns the board, the active piece, the score and the timers.
// It is not safe for concurrent use; the host drives it from one loop.
type Engine struct {
	settings Settings
	source   KindSource
	board    *Board

	piece    Piece
	hasPiece bool // false exactly when gameOver

	score    int
	lines    int
	pieces   int
	paused   bool
	gameOver bool

	fallInterval time.Duration
	sinceFall    time.Duration
}

// NewEngine creates an engine and spawns the first piece.
func NewEngine(settings Settings, source KindSource) *Engine {
	if source == nil {
		panic("tetris: nil kind source")
	}
	if settings.SpawnBuffer < 0 || settings.SpawnBuffer > config.MaxSpawnBuffer {
		panic(fmt.Sprintf("tetris: spawn buffer %d out of range", settings.SpawnBuffer))
	}
	e := &Engine{
		settings: settings,
		source:   source,
		board:    NewBoard(settings.Width, settings.Height),
	}
	e.fallInterval = settings.Policy.FallInterval(0)
	e.spawn()
	return e
}

// spawn draws the next piece and places it at the top center.
// If it does not fit, the game is over.
func (e *Engine) spawn() {
	kind, rotation := e.source.Next()
	anchor := Point{
		Col: e.board.Width() / 2,
		Row: e.board.Height() - 1 + e.settings.SpawnBuffer - topOffset(kind, rotation),
	}
	e.sinceFall = 0

	if !CanPlace(e.board, kind, rotation, anchor) {
		e.hasPiece = false
		e.gameOver = true
		return
	}

	e.piece = Piece{
		Kind:     kind,
		Rotation: rotation,
		Anchor:   anchor,
		Color:    ColorOf(kind),
	}
	e.hasPiece = true
}

// Advance feeds elapsed time to gravity. Once the accumulated time
// reaches the fall interval the piece drops one row, or locks if it
// cannot. At most one drop happens per call.
func (e *Engine) Advance(elapsed time.Duration) {
	if e.gameOver || e.paused || elapsed <= 0 {
		return
	}
	e.sinceFall += elapsed
	if e.sinceFall < e.fallInterval {
		return
	}
	e.sinceFall = 0
	if !e.shift(0, -1) {
		e.lock()
	}
}

// Apply runs a command and reports its outcome.
func (e *Engine) Apply(cmd Command) Outcome {
	switch cmd {
	case CmdMoveLeft:
		return e.MoveLeft()
	case CmdMoveRight:
		return e.MoveRight()
	case CmdSoftDrop:
		return e.SoftDrop()
	case CmdHardDrop:
		return e.HardDrop()
	case CmdRotate:
		return e.Rotate()
	case CmdTogglePause:
		return e.TogglePause()
	case CmdRestart:
		return e.Restart()
	default:
		panic(fmt.Sprintf("tetris: unknown command %d", int(cmd)))
	}
}

// MoveLeft shifts the piece one column left.
func (e *Engine) MoveLeft() Outcome {
	return e.move(-1, 0)
}

// MoveRight shifts the piece one column right.
func (e *Engine) MoveRight() Outcome {
	return e.move(1, 0)
}

// SoftDrop moves the piece down one row, locking it if it is resting.
func (e *Engine) SoftDrop() Outcome {
	if !e.controllable() {
		return OutcomeIgnored
	}
	if e.shift(0, -1) {
		return OutcomeMoved
	}
	e.lock()
	return OutcomeLocked
}

// HardDrop drops the piece as far as it goes and locks it.
func (e *Engine) HardDrop() Outcome {
	if !e.controllable() {
		return OutcomeIgnored
	}
	e.piece, _ = e.piece.landing(e.board)
	e.lock()
	return OutcomeLocked
}

// Rotate advances the piece to its next rotation state if it fits in place.
func (e *Engine) Rotate() Outcome {
	if !e.controllable() {
		return OutcomeIgnored
	}
	next, ok := e.piece.rotated(e.board)
	if !ok {
		return OutcomeBlocked
	}
	e.piece = next
	return OutcomeMoved
}

// TogglePause pauses or resumes gravity. The fall timer restarts either way.
func (e *Engine) TogglePause() Outcome {
	if e.gameOver {
		return OutcomeIgnored
	}
	e.paused = !e.paused
	e.sinceFall = 0
	return OutcomeToggled
}

// Restart clears the board and score and spawns a fresh piece.
// It is accepted in every state, including game over.
func (e *Engine) Restart() Outcome {
	e.board.Reset()
	e.score = 0
	e.lines = 0
	e.pieces = 0
	e.paused = false
	e.gameOver = false
	e.fallInterval = e.settings.Policy.FallInterval(0)
	e.spawn()
	return OutcomeRestarted
}

func (e *Engine) move(dx, dy int) Outcome {
	if !e.controllable() {
		return OutcomeIgnored
	}
	if !e.shift(dx, dy) {
		return OutcomeBlocked
	}
	return OutcomeMoved
}

// shift commits a move if the destination is free.
func (e *Engine) shift(dx, dy int) bool {
	next, ok := e.piece.moved(e.board, dx, dy)
	if ok {
		e.piece = next
	}
	return ok
}

func (e *Engine) controllable() bool {
	if e.gameOver {
		return false
	}
	return !e.paused || !e.settings.PauseBlocksInput
}

// lock writes the piece into the board, clears full rows, applies the
// policy and spawns the next piece. Cells still in the spawn buffer are lost.
func (e *Engine) lock() {
	for _, c := range e.piece.Cells() {
		if c.Row < e.board.Height() {
			e.board.Occupy(c.Col, c.Row, e.piece.Color)
		}
	}
	e.pieces++
	e.hasPiece = false

	if n := e.board.ClearFullRows(); n > 0 {
		e.lines += n
		e.score += e.settings.Policy.RowScore(n)
		e.fallInterval = e.settings.Policy.FallInterval(e.score)
	}

	e.spawn()
}

// Active returns the falling piece; ok is false after game over.
func (e *Engine) Active() (piece Piece, ok bool) {
	return e.piece, e.hasPiece
}

// Ghost returns the cells the active piece would occupy after a hard drop.
func (e *Engine) Ghost() ([4]Point, bool) {
	if !e.hasPiece {
		return [4]Point{}, false
	}
	landed, _ := e.piece.landing(e.board)
	return landed.Cells(), true
}

// Board returns the engine's board. Callers must treat it as read-only;
// use Snapshot for a detached copy.
func (e *Engine) Board() *Board { return e.board }

// Settings returns the engine configuration.
func (e *Engine) Settings() Settings { return e.settings }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the number of rows cleared this game.
func (e *Engine) Lines() int { return e.lines }

// Pieces returns the number of pieces locked this game.
func (e *Engine) Pieces() int { return e.pieces }

// Level returns the current speed level.
func (e *Engine) Level() int { return e.settings.Policy.Level(e.score) }

// Paused reports whether gravity is paused.
func (e *Engine) Paused() bool { return e.paused }

// GameOver reports whether the last spawn failed.
func (e *Engine) GameOver() bool { return e.gameOver }

// FallInterval returns the current gravity interval.
func (e *Engine) FallInterval() time.Duration { return e.fallInterval }
