// Package tui runs games in the terminal with Bubble Tea: the tick loop,
// key bindings, menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TickMsg drives one Step of the running game.
type TickMsg time.Time

// tickCmd schedules the next TickMsg one tick period from now.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
