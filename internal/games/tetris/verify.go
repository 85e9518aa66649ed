package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// ReplayResult is the state a replay ends in when re-simulated.
type ReplayResult struct {
	Score    int
	Lines    int
	Pieces   int
	GameOver bool
}

// Simulate re-runs a replay on a fresh engine and returns where it ends.
// It does not compare against the recorded result; see VerifyReplay.
func Simulate(r replay.Replay) (ReplayResult, error) {
	if err := r.Validate(); err != nil {
		return ReplayResult{}, err
	}

	e := NewEngine(SettingsFromConfig(r.Config), NewRandomSource(r.Seed))
	dt := time.Second / time.Duration(r.TickRate)

	frames := r.Frames
	apply := func(tick uint64) error {
		if len(frames) == 0 || frames[0].Tick != tick {
			return nil
		}
		in, err := frames[0].Input()
		if err != nil {
			return err
		}
		for _, a := range in.Actions() {
			applyAction(e, a)
		}
		frames = frames[1:]
		return nil
	}

	if err := apply(0); err != nil {
		return ReplayResult{}, err
	}
	for tick := uint64(1); tick <= r.Final.Ticks; tick++ {
		e.Advance(dt)
		if err := apply(tick); err != nil {
			return ReplayResult{}, err
		}
	}

	return ReplayResult{
		Score:    e.Score(),
		Lines:    e.Lines(),
		Pieces:   e.Pieces(),
		GameOver: e.GameOver(),
	}, nil
}

// VerifyReplay re-simulates a replay and checks that it reproduces the
// recorded score and line count. A mismatch wraps replay.ErrMismatch.
func VerifyReplay(r replay.Replay) (ReplayResult, error) {
	res, err := Simulate(r)
	if err != nil {
		return res, err
	}
	if res.Score != r.Final.Score || res.Lines != r.Final.Lines {
		return res, fmt.Errorf("%w: run %s got score %d lines %d, recorded score %d lines %d",
			replay.ErrMismatch, r.RunID, res.Score, res.Lines, r.Final.Score, r.Final.Lines)
	}
	return res, nil
}
