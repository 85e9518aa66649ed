package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// Game IDs.
const (
	IDClassic = "tetris"
	IDMini    = "tetris_mini"
)

// Package-level variables for config/difficulty, set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML config file used by Reset. Empty means search the default locations.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// DifficultyPreset returns the currently selected preset.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// variant describes a registered flavour of the game.
type variant struct {
	id    string
	title string
	board *config.BoardConfig // nil keeps the configured board
}

var (
	classic = variant{id: IDClassic, title: "Tetris"}
	mini    = variant{id: IDMini, title: "Tetris (Mini)", board: &config.BoardConfig{Width: 8, Height: 16}}
)

// Game adapts the Engine to the terminal platform: fixed ticks in,
// screen buffer out, with every run recorded for replay.
type Game struct {
	variant variant
	preset  *config.DifficultyPreset // overrides the package preset when set
	cfg     config.TetrisConfig
	cfgErr  error

	engine   *Engine
	source   *RandomSource
	seeds    *rand.Rand // seeds for runs after a restart
	recorder *replay.Recorder
	finished *replay.Replay // run replaced by a restart during the last Step

	tickRate int
	tickDur  time.Duration

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic 10x20 game.
func New() *Game {
	return &Game{variant: classic}
}

// NewMini creates an 8x16 game for small terminals.
func NewMini() *Game {
	return &Game{variant: mini}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDMini, func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.variant.id }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.title }

// Reset loads the configuration and starts a new run seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tc, err := config.LoadTetris(configPath)
	if err != nil {
		tc = config.DefaultTetrisConfig()
	}
	g.cfgErr = err
	preset := difficultyPreset
	if g.preset != nil {
		preset = *g.preset
	}
	config.ApplyTetrisPreset(&tc, preset)
	if g.variant.board != nil {
		tc.Board = *g.variant.board
	}
	g.ResetWithConfig(cfg, tc)
}

// SetPreset selects the difficulty for this game only, taking effect on
// the next Reset. SSH sessions use it since they share the process.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = &p
}

// ResetWithConfig starts a new run with an explicit game configuration.
func (g *Game) ResetWithConfig(cfg core.RuntimeConfig, tc config.TetrisConfig) {
	g.cfg = tc
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultTickRate
	}
	g.tickDur = time.Second / time.Duration(g.tickRate)
	g.seeds = rand.New(rand.NewSource(cfg.Seed))
	g.source = NewRandomSource(cfg.Seed)
	g.engine = NewEngine(SettingsFromConfig(tc), g.source)
	g.recorder = replay.NewRecorder(g.ID(), cfg.Seed, g.tickRate, tc)
	g.finished = nil
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// ConfigError returns the error from the last config load, if the game
// fell back to defaults because of it.
func (g *Game) ConfigError() error { return g.cfgErr }

// Config returns the configuration of the current run.
func (g *Game) Config() config.TetrisConfig { return g.cfg }

// SettingsFromConfig converts a YAML config into engine settings.
func SettingsFromConfig(tc config.TetrisConfig) Settings {
	return Settings{
		Width:            tc.Board.Width,
		Height:           tc.Board.Height,
		SpawnBuffer:      tc.Spawn.Buffer,
		PauseBlocksInput: tc.Controls.PauseBlocksInput,
		Policy: Policy{
			PointsPerRow:  tc.Scoring.PointsPerRow,
			ScorePerLevel: tc.Gravity.ScorePerLevel,
			BaseInterval:  time.Duration(tc.Gravity.BaseIntervalMs) * time.Millisecond,
			LevelStep:     time.Duration(tc.Gravity.LevelStepMs) * time.Millisecond,
			MinInterval:   time.Duration(tc.Gravity.MinIntervalMs) * time.Millisecond,
		},
	}
}

// Resize updates the screen size without touching the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minScreenSize()
	g.tooSmall = w < minW || h < minH
}

// Step advances gravity by one tick, then applies the frame's actions in order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.finished = nil
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.recorder.Tick()
	g.engine.Advance(g.tickDur)

	var res core.StepResult
	before := g.engine.Lines()
	for _, a := range in.Actions() {
		if a == core.ActionRestart {
			res.LinesCleared += g.engine.Lines() - before
			if g.engine.GameOver() {
				st, r := g.State(), g.Replay()
				res.Finished, g.finished = &st, &r
			}
			g.restart()
			before = 0
			res.Restarted = true
			continue
		}
		if _, ok := commandFor(a); !ok {
			continue
		}
		g.recorder.Record(a)
		applyAction(g.engine, a)
	}
	res.LinesCleared += g.engine.Lines() - before
	res.State = g.State()
	return res
}

// restart begins a new run on a fresh seed. A run that was over is kept
// for FinishedReplay until the next Step.
func (g *Game) restart() {
	seed := g.seeds.Int63()
	g.source.Reseed(seed)
	g.engine.Restart()
	g.recorder = replay.NewRecorder(g.ID(), seed, g.tickRate, g.cfg)
}

// commandFor maps a platform action to an engine command.
func commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft, true
	case core.ActionRight:
		return CmdMoveRight, true
	case core.ActionDown:
		return CmdSoftDrop, true
	case core.ActionDrop:
		return CmdHardDrop, true
	case core.ActionRotate:
		return CmdRotate, true
	case core.ActionPause:
		return CmdTogglePause, true
	case core.ActionRestart:
		return CmdRestart, true
	default:
		return 0, false
	}
}

func applyAction(e *Engine, a core.Action) Outcome {
	cmd, ok := commandFor(a)
	if !ok {
		return OutcomeIgnored
	}
	return e.Apply(cmd)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		Level:    g.engine.Level(),
		GameOver: g.engine.GameOver(),
		Paused:   g.engine.Paused() || g.tooSmall,
	}
}

// Snapshot returns the engine snapshot for the current run.
func (g *Game) Snapshot() Snapshot { return g.engine.Snapshot() }

// RunID identifies the current run.
func (g *Game) RunID() string { return g.recorder.RunID() }

// Replay returns the recording of the current run so far.
func (g *Game) Replay() replay.Replay {
	return g.recorder.Snapshot(g.engine.Score(), g.engine.Lines())
}

// FinishedReplay returns the recording of the run that the last Step
// ended and restarted, if any.
func (g *Game) FinishedReplay() (replay.Replay, bool) {
	if g.finished == nil {
		return replay.Replay{}, false
	}
	return *g.finished, true
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Move | ↑: Rotate | ↓: Soft drop | Space: Drop | P: Pause | R: Restart | Q: Quit"
}
