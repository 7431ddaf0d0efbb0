package corridors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/mcts"
)

func testConfig() mcts.Config {
	return mcts.Config{
		ExplorationC: 1.4142135,
		Seed:         11,
		SimIncrement: 10,
		UseRollout:   true,
	}
}

func TestEnsureSimulationsGrowsRoot(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, s.EnsureSimulations(35))
	assert.EqualValues(t, 35, s.engine.Root().Visits())

	// Already satisfied: no-op, visit count unchanged.
	require.NoError(t, s.EnsureSimulations(10))
	assert.EqualValues(t, 35, s.engine.Root().Visits())
}

func TestEnsureSimulationsCapsAtMaxSimulations(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSimulations = 20
	s, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, s.EnsureSimulations(1000))
	assert.EqualValues(t, 20, s.engine.Root().Visits())
}

func TestCommitRejectsIllegalMove(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	err = s.Commit("*(4,4)")
	assert.Error(t, err)
}

func TestCommitRejectsUnparseableMove(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	err = s.Commit("not a move")
	assert.Error(t, err)
}

func TestCommitPromotesLegalMove(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, s.EnsureSimulations(30))
	best, err := s.BestAction()
	require.NoError(t, err)

	require.NoError(t, s.Commit(board.ActionText(best.Move)))
	assert.EqualValues(t, best.Visits, s.engine.Root().Visits())
}

func TestResetDiscardsTree(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, s.EnsureSimulations(20))
	s.Reset()
	assert.EqualValues(t, 0, s.engine.Root().Visits())
	assert.False(t, s.IsTerminal())
}

func TestDisplayRendersCurrentPosition(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)
	assert.Contains(t, s.Display(), "walls: hero=10 villain=10")
}
