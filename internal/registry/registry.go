// Package registry maps game IDs to factories. Game packages register
// their variants from init(), so the CLI, the SSH menu and the HTTP API
// can list and create games without importing them directly.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what the platform drives: fixed ticks in, a screen out.
// Implementations hold no terminal state and never block.
type Game interface {
	// ID is the stable key used on the command line and in the score DB.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick, applying the frame's
	// actions in order.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the game clears itself.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizable is implemented by games that track the terminal size after Reset.
// The platform calls Resize instead of resetting the game on window changes.
type Resizable interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a game under id. It panics on an empty or duplicate id,
// both of which are programming errors in an init().
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
