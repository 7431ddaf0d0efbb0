package mcts

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridors/engine/board"
)

func uctConfig(seed uint64) Config {
	return Config{
		ExplorationC: 1.4142135,
		Seed:         seed,
		SimIncrement: 10,
		UseRollout:   true,
	}
}

func TestRunSimulationGrowsRootVisits(t *testing.T) {
	e, err := New(board.Initial(), uctConfig(42))
	require.NoError(t, err)

	const n = 25
	for i := 0; i < n; i++ {
		require.NoError(t, e.RunSimulation())
	}
	assert.Equal(t, uint32(n), e.Root().Visits())
}

func TestRunSimulationNoOpOnTerminalRoot(t *testing.T) {
	terminal := board.Board{Hero: board.Pos{X: 4, Y: board.Size}, Villain: board.Pos{X: 0, Y: 4}}
	e, err := New(terminal, uctConfig(1))
	require.NoError(t, err)

	require.NoError(t, e.RunSimulation())
	assert.Equal(t, uint32(0), e.Root().Visits())

	ranked, err := e.RankedActions()
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankedActionsExpandsUnexpandedRoot(t *testing.T) {
	e, err := New(board.Initial(), uctConfig(7))
	require.NoError(t, err)

	ranked, err := e.RankedActions()
	require.NoError(t, err)
	assert.Len(t, ranked, 131)
	assert.True(t, e.Root().IsExpanded())
}

func TestDeterministicReplay(t *testing.T) {
	run := func(seed uint64) []RankedAction {
		e, err := New(board.Initial(), uctConfig(seed))
		require.NoError(t, err)
		for i := 0; i < 200; i++ {
			require.NoError(t, e.RunSimulation())
		}
		ranked, err := e.RankedActions()
		require.NoError(t, err)
		return ranked
	}

	a := run(42)
	b := run(42)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Move, b[i].Move)
		assert.Equal(t, a[i].Visits, b[i].Visits)
	}
}

func TestPromoteReusesSubtree(t *testing.T) {
	e, err := New(board.Initial(), uctConfig(3))
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		require.NoError(t, e.RunSimulation())
	}

	best, err := e.BestAction()
	require.NoError(t, err)
	visitsBefore := best.Visits

	ok := e.Promote(best.Move)
	require.True(t, ok)
	assert.Equal(t, visitsBefore, e.Root().Visits())
	assert.Nil(t, e.Root().parent)
}

func TestPromoteRejectsUnmatchedMove(t *testing.T) {
	e, err := New(board.Initial(), uctConfig(3))
	require.NoError(t, err)
	ok := e.Promote(board.Move{Kind: board.Step, X: 4, Y: 4})
	assert.False(t, ok)
}

func TestUnvisitedChildPreferredUnderUCT(t *testing.T) {
	e, err := New(board.Initial(), uctConfig(9))
	require.NoError(t, err)
	require.NoError(t, e.expand(e.Root()))

	root := e.Root()
	root.n = 5
	root.children[0].n = 1
	root.children[0].w = 0

	picked := e.selectChild(root)
	assert.Same(t, root.children[1], picked, "an unvisited child must score +Inf under UCT")
}

func TestConfigValidation(t *testing.T) {
	_, err := New(board.Initial(), Config{SimIncrement: 0})
	assert.Error(t, err)

	_, err = New(board.Initial(), Config{SimIncrement: 1, UseProbs: true})
	assert.Error(t, err)

	_, err = New(board.Initial(), Config{SimIncrement: 1, MinSimulations: 10, MaxSimulations: 1})
	assert.Error(t, err)
}

func TestConfigValidationAggregatesAllViolations(t *testing.T) {
	err := Config{
		SimIncrement:   0,                // violates sim_increment must be > 0
		MinSimulations: 10,
		MaxSimulations: 1,                // violates min_simulations <= max_simulations
		UseProbs:       true,             // violates use_probs requires an Evaluator
		RootNoiseFrac:  2,                // violates root_noise_frac must be in [0,1]
	}.Validate()
	require.Error(t, err)

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "Validate must return a *multierror.Error so callers can inspect every violation")
	assert.GreaterOrEqual(t, len(merr.Errors), 4, "every simultaneous violation (five here, counting root_noise_alpha) must be aggregated, not just the first")
}
