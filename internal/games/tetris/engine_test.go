package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestEngine(kinds ...Kind) *Engine {
	return NewEngine(DefaultSettings(), KindSequence(kinds...))
}

func activePiece(t *testing.T, e *Engine) Piece {
	t.Helper()
	p, ok := e.Active()
	require.True(t, ok, "no active piece")
	return p
}

func TestNewEnginePanicsOnBadInput(t *testing.T) {
	assert.Panics(t, func() { NewEngine(DefaultSettings(), nil) })

	s := DefaultSettings()
	s.SpawnBuffer = -1
	assert.Panics(t, func() { NewEngine(s, KindSequence(KindI)) })

	s = DefaultSettings()
	s.SpawnBuffer = 4
	assert.Panics(t, func() { NewEngine(s, KindSequence(KindI)) })

	s = DefaultSettings()
	s.Width = 0
	assert.Panics(t, func() { NewEngine(s, KindSequence(KindI)) })
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		name   string
		spawn  Spawn
		anchor Point
	}{
		{"I flat", Spawn{KindI, 0}, Point{5, 20}},
		{"I upright", Spawn{KindI, 1}, Point{5, 18}},
		{"O", Spawn{KindO, 0}, Point{5, 20}},
		{"T pointing up", Spawn{KindT, 2}, Point{5, 19}},
		{"L", Spawn{KindL, 2}, Point{5, 19}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultSettings(), NewSequenceSource(tt.spawn))
			p := activePiece(t, e)
			assert.Equal(t, tt.spawn.Kind, p.Kind)
			assert.Equal(t, tt.spawn.Rotation, p.Rotation)
			assert.Equal(t, tt.anchor, p.Anchor)
			assert.Equal(t, ColorOf(tt.spawn.Kind), p.Color)

			top := p.Cells()[0].Row
			for _, c := range p.Cells() {
				top = max(top, c.Row)
			}
			assert.Equal(t, 20, top, "highest cell sits in the one-row spawn buffer")
		})
	}
}

// The anchor is injected to put the flat I on columns 3-6 of row 19.
// Spawning would place it on columns 4-7 of row 20, in the buffer.
func TestEndToEndFlatIDropsToFloor(t *testing.T) {
	e := newTestEngine(KindI)
	e.piece = Piece{Kind: KindI, Rotation: 0, Anchor: Point{4, 19}, Color: ColorOf(KindI)}

	for i := range 19 {
		require.Equal(t, OutcomeMoved, e.SoftDrop(), "soft drop %d", i+1)
	}
	assert.Equal(t, Point{4, 0}, activePiece(t, e).Anchor)
	assert.Zero(t, e.Board().OccupiedCount())

	assert.Equal(t, OutcomeLocked, e.SoftDrop())

	for col := range 10 {
		occupied, _ := e.Board().At(col, 0)
		assert.Equal(t, col >= 3 && col <= 6, occupied, "column %d", col)
	}
	assert.Equal(t, 4, e.Board().OccupiedCount())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Lines())
	assert.Equal(t, 1, e.Pieces())
	assert.False(t, e.GameOver())
}

// The anchor is injected to put the flat I on columns 3-6 of row 19.
// Spawning would place it on columns 4-7 of row 20, in the buffer.
func TestEndToEndGravityOnly(t *testing.T) {
	e := newTestEngine(KindI)
	e.piece = Piece{Kind: KindI, Rotation: 0, Anchor: Point{4, 19}, Color: ColorOf(KindI)}
	interval := e.FallInterval()

	for range 19 {
		e.Advance(interval)
	}
	assert.Equal(t, Point{4, 0}, activePiece(t, e).Anchor)

	e.Advance(interval)
	assert.Equal(t, 4, e.Board().OccupiedCount())
	assert.Equal(t, 1, e.Pieces())
	assert.Zero(t, e.Score())
}

func TestGravityAccumulates(t *testing.T) {
	e := newTestEngine(KindI)
	start := activePiece(t, e).Anchor

	e.Advance(300 * time.Millisecond)
	e.Advance(299 * time.Millisecond)
	assert.Equal(t, start, activePiece(t, e).Anchor)

	e.Advance(time.Millisecond)
	assert.Equal(t, start.Row-1, activePiece(t, e).Anchor.Row)

	e.Advance(0)
	e.Advance(-time.Second)
	assert.Equal(t, start.Row-1, activePiece(t, e).Anchor.Row)
}

func TestGravityDropsAtMostOncePerAdvance(t *testing.T) {
	e := newTestEngine(KindI)
	start := activePiece(t, e).Anchor

	e.Advance(time.Minute)
	assert.Equal(t, start.Row-1, activePiece(t, e).Anchor.Row)

	// The accumulator restarts from zero after a drop.
	e.Advance(e.FallInterval() - time.Millisecond)
	assert.Equal(t, start.Row-1, activePiece(t, e).Anchor.Row)
}

func TestMoveRejectionLeavesPieceUnchanged(t *testing.T) {
	e := newTestEngine(KindI)

	for range 4 {
		require.Equal(t, OutcomeMoved, e.MoveLeft())
	}
	atWall := activePiece(t, e)
	assert.Equal(t, 1, atWall.Anchor.Col)

	assert.Equal(t, OutcomeBlocked, e.MoveLeft())
	assert.Equal(t, atWall, activePiece(t, e))

	for range 6 {
		require.Equal(t, OutcomeMoved, e.MoveRight())
	}
	atWall = activePiece(t, e)
	assert.Equal(t, OutcomeBlocked, e.MoveRight())
	assert.Equal(t, atWall, activePiece(t, e))
}

func TestRotateRejectionLeavesPieceUnchanged(t *testing.T) {
	e := newTestEngine(KindI)
	e.piece = Piece{Kind: KindI, Rotation: 0, Anchor: Point{4, 0}, Color: ColorOf(KindI)}
	before := activePiece(t, e)

	// Upright I needs a cell below the floor. No kick is attempted.
	assert.Equal(t, OutcomeBlocked, e.Rotate())
	assert.Equal(t, before, activePiece(t, e))
}

func TestRotateBlockedByLockedCell(t *testing.T) {
	e := newTestEngine(KindT)
	e.piece = Piece{Kind: KindT, Rotation: 0, Anchor: Point{4, 5}, Color: ColorOf(KindT)}
	e.Board().Occupy(4, 6, core.ColorGray) // T rotation 1 needs (4,6)
	before := activePiece(t, e)

	assert.Equal(t, OutcomeBlocked, e.Rotate())
	assert.Equal(t, before, activePiece(t, e))
}

func TestRotateCyclesThroughFourStates(t *testing.T) {
	e := newTestEngine(KindT)
	e.piece = Piece{Kind: KindT, Rotation: 0, Anchor: Point{4, 10}, Color: ColorOf(KindT)}

	for want := 1; want <= 4; want++ {
		require.Equal(t, OutcomeMoved, e.Rotate())
		assert.Equal(t, want%Rotations, activePiece(t, e).Rotation)
		assert.Equal(t, Point{4, 10}, activePiece(t, e).Anchor)
	}
}

func TestHardDropLocksAtGhost(t *testing.T) {
	e := newTestEngine(KindO, KindT)
	ghost, ok := e.Ghost()
	require.True(t, ok)
	before := e.Snapshot()
	assert.Equal(t, ghost, before.Ghost)

	assert.Equal(t, OutcomeLocked, e.HardDrop())

	assert.Equal(t, 4, e.Board().OccupiedCount())
	for _, c := range ghost {
		occupied, color := e.Board().At(c.Col, c.Row)
		assert.True(t, occupied, "cell %v", c)
		assert.Equal(t, ColorOf(KindO), color)
	}
	assert.Equal(t, KindT, activePiece(t, e).Kind)
}

func TestLockConservesCells(t *testing.T) {
	e := newTestEngine(KindS)
	e.piece = Piece{Kind: KindS, Rotation: 0, Anchor: Point{3, 1}, Color: ColorOf(KindS)}
	cells := e.piece.Cells()

	require.Equal(t, OutcomeLocked, e.SoftDrop())

	assert.Equal(t, 4, e.Board().OccupiedCount())
	for _, c := range cells {
		occupied, _ := e.Board().At(c.Col, c.Row)
		assert.True(t, occupied, "cell %v", c)
	}
}

func TestMultiRowClearScoresFlatPerRow(t *testing.T) {
	e := newTestEngine(KindO)
	fillRow(e.Board(), 0, 0)
	fillRow(e.Board(), 1, 0)
	e.piece = Piece{Kind: KindI, Rotation: 1, Anchor: Point{0, 10}, Color: ColorOf(KindI)}

	require.Equal(t, OutcomeLocked, e.HardDrop())

	assert.Equal(t, 200, e.Score())
	assert.Equal(t, 2, e.Lines())
	assert.Equal(t, 0, e.Level())
	assert.Equal(t, 600*time.Millisecond, e.FallInterval())

	// The two I cells above the cleared rows slid down by two.
	assert.Equal(t, 2, e.Board().OccupiedCount())
	for row := range 2 {
		occupied, color := e.Board().At(0, row)
		assert.True(t, occupied)
		assert.Equal(t, ColorOf(KindI), color)
	}
}

func TestLevelUpShortensFallInterval(t *testing.T) {
	e := newTestEngine(KindO)
	e.score = 900
	fillRow(e.Board(), 0, 0)
	e.piece = Piece{Kind: KindI, Rotation: 1, Anchor: Point{0, 10}, Color: ColorOf(KindI)}

	e.HardDrop()

	assert.Equal(t, 1000, e.Score())
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 550*time.Millisecond, e.FallInterval())
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	fillRow(e.Board(), 19, 9)

	// The flat I cannot leave the spawn buffer, so it locks there and
	// its cells are dropped. The O that follows needs row 19.
	require.Equal(t, OutcomeLocked, e.SoftDrop())
	assert.Equal(t, 9, e.Board().OccupiedCount())

	assert.True(t, e.GameOver())
	_, ok := e.Active()
	assert.False(t, ok)
	_, ok = e.Ghost()
	assert.False(t, ok)

	snap := e.Snapshot()
	assert.True(t, snap.GameOver)
	assert.False(t, snap.HasActive)
}

func TestGameOverAcceptsOnlyRestart(t *testing.T) {
	e := newTestEngine(KindI, KindO)
	fillRow(e.Board(), 19, 9)
	e.SoftDrop()
	require.True(t, e.GameOver())

	for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdSoftDrop, CmdHardDrop, CmdRotate, CmdTogglePause} {
		assert.Equal(t, OutcomeIgnored, e.Apply(cmd), cmd.String())
	}
	e.Advance(time.Minute)
	assert.True(t, e.GameOver())
	assert.False(t, e.Paused())

	assert.Equal(t, OutcomeRestarted, e.Apply(CmdRestart))
	assert.False(t, e.GameOver())
	assert.Zero(t, e.Board().OccupiedCount())
	assert.Zero(t, e.Score())
	assert.Zero(t, e.Pieces())
	activePiece(t, e)
}

func TestRestartMidGame(t *testing.T) {
	e := newTestEngine(KindO)
	e.score = 2500
	e.lines = 25
	e.HardDrop()
	e.TogglePause()
	require.True(t, e.Paused())

	assert.Equal(t, OutcomeRestarted, e.Restart())

	assert.Zero(t, e.Score())
	assert.Zero(t, e.Lines())
	assert.Zero(t, e.Pieces())
	assert.False(t, e.Paused())
	assert.Zero(t, e.Board().OccupiedCount())
	assert.Equal(t, 600*time.Millisecond, e.FallInterval())
	assert.Equal(t, Point{5, 20}, activePiece(t, e).Anchor)
}

func TestPauseStopsGravityOnly(t *testing.T) {
	e := newTestEngine(KindI)
	start := activePiece(t, e).Anchor

	assert.Equal(t, OutcomeToggled, e.TogglePause())
	assert.True(t, e.Paused())

	e.Advance(time.Minute)
	assert.Equal(t, start, activePiece(t, e).Anchor)

	assert.Equal(t, OutcomeMoved, e.MoveLeft())
	assert.Equal(t, OutcomeMoved, e.Rotate())

	assert.Equal(t, OutcomeToggled, e.TogglePause())
	assert.False(t, e.Paused())
}

func TestPauseBlocksInputSetting(t *testing.T) {
	s := DefaultSettings()
	s.PauseBlocksInput = true
	e := NewEngine(s, KindSequence(KindT))
	e.TogglePause()
	before := activePiece(t, e)

	for _, cmd := range []Command{CmdMoveLeft, CmdMoveRight, CmdSoftDrop, CmdHardDrop, CmdRotate} {
		assert.Equal(t, OutcomeIgnored, e.Apply(cmd), cmd.String())
	}
	assert.Equal(t, before, activePiece(t, e))

	assert.Equal(t, OutcomeToggled, e.TogglePause())
	assert.Equal(t, OutcomeMoved, e.MoveLeft())
}

func TestTogglePauseResetsFallTimer(t *testing.T) {
	e := newTestEngine(KindI)
	start := activePiece(t, e).Anchor

	e.Advance(500 * time.Millisecond)
	e.TogglePause()
	e.TogglePause()
	e.Advance(500 * time.Millisecond)
	assert.Equal(t, start, activePiece(t, e).Anchor)

	e.Advance(100 * time.Millisecond)
	assert.Equal(t, start.Row-1, activePiece(t, e).Anchor.Row)
}

func TestSpawnResetsFallTimer(t *testing.T) {
	e := newTestEngine(KindO, KindI)
	e.Advance(500 * time.Millisecond)
	e.HardDrop()

	next := activePiece(t, e)
	e.Advance(500 * time.Millisecond)
	assert.Equal(t, next, activePiece(t, e))
}

func TestApplyUnknownCommandPanics(t *testing.T) {
	e := newTestEngine(KindI)
	assert.Panics(t, func() { e.Apply(Command(42)) })
	assert.Equal(t, "Command(42)", Command(42).String())
}

type step struct {
	advance time.Duration
	cmd     Command
}

func runScript(e *Engine, script []step) {
	for _, s := range script {
		e.Advance(s.advance)
		e.Apply(s.cmd)
	}
}

func TestDeterministicUnderFixedSource(t *testing.T) {
	script := []step{
		{100 * time.Millisecond, CmdMoveLeft},
		{700 * time.Millisecond, CmdRotate},
		{0, CmdHardDrop},
		{650 * time.Millisecond, CmdMoveRight},
		{0, CmdMoveRight},
		{0, CmdHardDrop},
		{600 * time.Millisecond, CmdSoftDrop},
		{0, CmdRotate},
		{0, CmdHardDrop},
	}
	for range 5 {
		script = append(script, script[:9]...)
	}

	t.Run("sequence", func(t *testing.T) {
		kinds := []Kind{KindT, KindL, KindI, KindZ, KindJ, KindS, KindO}
		a := newTestEngine(kinds...)
		b := newTestEngine(kinds...)
		runScript(a, script)
		runScript(b, script)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
	})

	t.Run("seeded random", func(t *testing.T) {
		a := NewEngine(DefaultSettings(), NewRandomSource(1234))
		b := NewEngine(DefaultSettings(), NewRandomSource(1234))
		runScript(a, script)
		runScript(b, script)
		assert.Equal(t, a.Snapshot(), b.Snapshot())
		assert.Positive(t, a.Pieces())
	})
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(KindO)
	e.HardDrop()

	snap := e.Snapshot()
	require.True(t, snap.Occupied(5, 0))
	snap.Grid[0][5].Occupied = false
	snap.Grid[3][3].Occupied = true

	occupied, _ := e.Board().At(5, 0)
	assert.True(t, occupied)
	occupied, _ = e.Board().At(3, 3)
	assert.False(t, occupied)

	assert.False(t, snap.Occupied(-1, 0))
	assert.False(t, snap.Occupied(0, 20))
}

func TestSnapshotContents(t *testing.T) {
	e := newTestEngine(KindJ)
	snap := e.Snapshot()

	assert.Equal(t, 10, snap.Width)
	assert.Equal(t, 20, snap.Height)
	require.Len(t, snap.Grid, 20)
	assert.Len(t, snap.Grid[0], 10)
	assert.True(t, snap.HasActive)
	assert.Equal(t, KindJ, snap.ActiveKind)
	assert.Equal(t, ColorOf(KindJ), snap.ActiveColor)
	assert.Equal(t, activePiece(t, e).Cells(), snap.Active)
	for _, c := range snap.Ghost {
		assert.Less(t, c.Row, 2, "ghost rests on the floor")
	}
	assert.Equal(t, 600*time.Millisecond, snap.FallInterval)
}
