// Package replay records the input of a game run and stores it in a
// compact form. A run is fully determined by its seed, its config and the
// actions applied at each tick, so those are all a replay keeps.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Version is the current replay format version.
const Version = 1

// ErrMismatch is returned when re-simulating a replay does not reproduce
// its recorded result.
var ErrMismatch = errors.New("replay: result mismatch")

// Replay is one recorded run.
type Replay struct {
	Version    int                 `yaml:"version"`
	RunID      string              `yaml:"run_id"`
	GameID     string              `yaml:"game_id"`
	Seed       int64               `yaml:"seed"`
	TickRate   int                 `yaml:"tick_rate"`
	Config     config.TetrisConfig `yaml:"config"`
	RecordedAt time.Time           `yaml:"recorded_at"`
	Frames     []Frame             `yaml:"frames"`
	Final      Final               `yaml:"final"`
}

// Frame holds the actions applied during one tick. Tick 0 holds actions
// applied right after a restart, before any gravity.
type Frame struct {
	Tick    uint64   `yaml:"tick"`
	Actions []string `yaml:"actions,flow"`
}

// Final is the result the run ended with.
type Final struct {
	Score int    `yaml:"score"`
	Lines int    `yaml:"lines"`
	Ticks uint64 `yaml:"ticks"`
}

// Input converts the frame back into platform actions.
func (f Frame) Input() (core.InputFrame, error) {
	in := core.NewInputFrame()
	for _, name := range f.Actions {
		a, ok := core.ParseAction(name)
		if !ok {
			return in, fmt.Errorf("replay: tick %d: unknown action %q", f.Tick, name)
		}
		in.Set(a)
	}
	return in, nil
}

// Recorder collects the frames of one run.
type Recorder struct {
	r    Replay
	tick uint64
}

// NewRecorder starts recording a run with a fresh run ID.
func NewRecorder(gameID string, seed int64, tickRate int, cfg config.TetrisConfig) *Recorder {
	return &Recorder{
		r: Replay{
			Version:    Version,
			RunID:      uuid.NewString(),
			GameID:     gameID,
			Seed:       seed,
			TickRate:   tickRate,
			Config:     cfg,
			RecordedAt: time.Now().UTC(),
		},
	}
}

// RunID returns the ID of the run being recorded.
func (rec *Recorder) RunID() string { return rec.r.RunID }

// Ticks returns the number of ticks recorded so far.
func (rec *Recorder) Ticks() uint64 { return rec.tick }

// Tick marks the start of the next simulation tick.
func (rec *Recorder) Tick() { rec.tick++ }

// Record appends an action to the current tick. ActionNone is ignored.
func (rec *Recorder) Record(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if n := len(rec.r.Frames); n > 0 && rec.r.Frames[n-1].Tick == rec.tick {
		rec.r.Frames[n-1].Actions = append(rec.r.Frames[n-1].Actions, a.String())
		return
	}
	rec.r.Frames = append(rec.r.Frames, Frame{Tick: rec.tick, Actions: []string{a.String()}})
}

// Snapshot returns a copy of the recording with the given result attached.
func (rec *Recorder) Snapshot(score, lines int) Replay {
	out := rec.r
	out.Frames = make([]Frame, len(rec.r.Frames))
	for i, f := range rec.r.Frames {
		out.Frames[i] = Frame{Tick: f.Tick, Actions: append([]string(nil), f.Actions...)}
	}
	out.Final = Final{Score: score, Lines: lines, Ticks: rec.tick}
	return out
}

// ActionCount returns the total number of recorded actions.
func (r Replay) ActionCount() int {
	n := 0
	for _, f := range r.Frames {
		n += len(f.Actions)
	}
	return n
}

// Duration returns the run length in game time.
func (r Replay) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Final.Ticks) * time.Second / time.Duration(r.TickRate)
}

// Validate checks that the replay can be re-simulated.
func (r Replay) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("replay: unsupported version %d", r.Version)
	}
	if r.TickRate <= 0 {
		return fmt.Errorf("replay: invalid tick rate %d", r.TickRate)
	}
	var last uint64
	for i, f := range r.Frames {
		if i > 0 && f.Tick <= last {
			return fmt.Errorf("replay: frame %d out of order (tick %d after %d)", i, f.Tick, last)
		}
		if f.Tick > r.Final.Ticks {
			return fmt.Errorf("replay: frame at tick %d past end %d", f.Tick, r.Final.Ticks)
		}
		last = f.Tick
	}
	return r.Config.Validate()
}
