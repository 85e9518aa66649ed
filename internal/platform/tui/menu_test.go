package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func menuKey(m MenuModel, msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(MenuModel), cmd
}

func TestMenuShowsStoredStats(t *testing.T) {
	store := testStore(t)
	_, err := store.SaveScore(tetris.IDClassic, 500)
	require.NoError(t, err)
	_, err = store.SaveScore(tetris.IDClassic, 200)
	require.NoError(t, err)

	m := NewMenuModel(store, testRuntime())
	require.Len(t, m.items, 2)
	assert.Equal(t, MenuItem{GameID: tetris.IDClassic, Title: "Tetris", HighScore: 500, Played: 2}, m.items[0])
	assert.Equal(t, MenuItem{GameID: tetris.IDMini, Title: "Tetris (Mini)"}, m.items[1])
	assert.Contains(t, m.View(), "best 500, 2 played")
}

func TestMenuCursorWraps(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)
	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.cursor)

	m, _ = menuKey(m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := menuKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, tetris.IDMini, m.Selected().GameID)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m, _ := menuKey(NewMenuModel(nil, testRuntime()), tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.WantsScoreboard())
	assert.Nil(t, m.Selected())

	m, _ = menuKey(NewMenuModel(nil, testRuntime()), runeKey("q"))
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestMenuTracksWindowSize(t *testing.T) {
	next, _ := NewMenuModel(nil, testRuntime()).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	assert.Equal(t, 120, cfg.ScreenW)
	assert.Equal(t, 40, cfg.ScreenH)
}
