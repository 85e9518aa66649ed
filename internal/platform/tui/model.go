package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/metrics"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Recorder is implemented by games that keep a replay of the current run.
type Recorder interface {
	Replay() replay.Replay
}

// FinishedRecorder is implemented by games that keep the recording of a
// run that ended and was restarted within one tick.
type FinishedRecorder interface {
	FinishedReplay() (replay.Replay, bool)
}

// Model is the Bubble Tea model that runs one game.
// Standalone models quit on Q; embedded ones (SSH sessions) can also go
// back to the menu with B/Esc while paused or after game over.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	metrics    *metrics.Metrics
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been saved
}

// NewModel creates a standalone model for the given game.
func NewModel(game registry.Game, store *storage.Store, m *metrics.Metrics, cfg core.RuntimeConfig) Model {
	model := newGameModel(game, store, m, cfg)
	model.standalone = true
	return model
}

func newGameModel(game registry.Game, store *storage.Store, m *metrics.Metrics, cfg core.RuntimeConfig) Model {
	cfg = cfg.WithDefaults(func() int64 { return time.Now().UnixNano() })

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		metrics:    m,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.metrics.GameStarted(m.game.ID())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if !m.standalone && m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack &&
		(m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Finished != nil && !m.scoreSaved {
		var r *replay.Replay
		if fr, ok := m.game.(FinishedRecorder); ok {
			if rep, ok := fr.FinishedReplay(); ok {
				r = &rep
			}
		}
		m.finishRun(*result.Finished, r)
	}
	if result.Restarted {
		m.scoreSaved = false
		m.metrics.GameStarted(m.game.ID())
	}
	m.metrics.LinesCleared(m.game.ID(), result.LinesCleared)

	if m.gameState.GameOver && !m.scoreSaved {
		var r *replay.Replay
		if rec, ok := m.game.(Recorder); ok {
			rep := rec.Replay()
			r = &rep
		}
		m.finishRun(m.gameState, r)
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun records a game over. Without a replay only the score is
// kept. Saving is best effort; the game goes on.
func (m *Model) finishRun(st core.GameState, r *replay.Replay) {
	id := m.game.ID()
	m.metrics.GameFinished(id, st.Score)

	if m.store == nil || st.Score <= 0 {
		return
	}

	if r == nil {
		//nolint:errcheck // Best-effort save
		m.store.SaveScore(id, st.Score)
		return
	}

	run := storage.Run{
		RunID:  r.RunID,
		GameID: id,
		Score:  st.Score,
		Lines:  st.Lines,
		Level:  st.Level,
	}
	if data, err := replay.Encode(*r); err == nil {
		run.Replay = data
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(run)
}

// saveScreenshot writes the current screen as plain text under ~/.tetris/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone Bubble Tea program for the game.
func Run(game registry.Game, store *storage.Store, m *metrics.Metrics, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, m, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
