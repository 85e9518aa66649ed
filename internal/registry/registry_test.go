package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct{ id, title string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return g.title }
func (g stubGame) Reset(core.RuntimeConfig) {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen) {}
func (g stubGame) State() core.GameState { return core.GameState{} }

func stub(id, title string) Factory {
	return func() Game { return stubGame{id: id, title: title} }
}

func TestRegisterListCreate(t *testing.T) {
	Register("zz_test_b", stub("zz_test_b", "B"))
	Register("zz_test_a", stub("zz_test_a", "A"))

	assert.True(t, Exists("zz_test_a"))
	assert.False(t, Exists("zz_test_missing"))

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	assert.IsNonDecreasing(t, ids)
	assert.Contains(t, List(), GameInfo{ID: "zz_test_a", Title: "A"})

	g, err := Create("zz_test_b")
	require.NoError(t, err)
	assert.Equal(t, "B", g.Title())

	_, err = Create("zz_test_missing")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestRegisterPanics(t *testing.T) {
	Register("zz_test_dup", stub("zz_test_dup", "Dup"))

	assert.Panics(t, func() { Register("zz_test_dup", stub("zz_test_dup", "Dup")) })
	assert.Panics(t, func() { Register("", stub("", "Empty")) })
	assert.Panics(t, func() { Register("zz_test_nil", nil) })
}
