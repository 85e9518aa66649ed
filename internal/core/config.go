package core

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Simulation ticks per second
	Seed     int64 // Piece source seed; 0 asks the platform to pick one
}

// DefaultConfig returns an 80x24 config at the default tick rate and seed 0.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
	}
}

// WithDefaults fills in a missing tick rate, and a zero seed from newSeed.
func (c RuntimeConfig) WithDefaults(newSeed func() int64) RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Seed == 0 && newSeed != nil {
		c.Seed = newSeed()
	}
	return c
}

// GameState is the part of a game's state the platform acts on.
type GameState struct {
	Score    int
	Lines    int // Rows cleared this run
	Level    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State        GameState
	LinesCleared int  // Rows cleared during this tick
	Restarted    bool // A restart happened during this tick

	// Finished is the final state of a run that was already over when a
	// restart in this tick replaced it.
	Finished *GameState
}
