package neural_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/eval/neural"
	"github.com/corridors/engine/mcts"
)

// TestEvaluatorDrivesPUCTSearch wires a neural.Evaluator into
// mcts.Config.Evaluator with UseProbs set, exercising the
// use_probs/UsePUCT path end to end rather than only unit-testing the
// forward pass in isolation.
func TestEvaluatorDrivesPUCTSearch(t *testing.T) {
	nn, err := neural.New(neural.DefaultConfig(), 0)
	require.NoError(t, err)
	defer nn.Close()

	e, err := mcts.New(board.Initial(), mcts.Config{
		ExplorationC: 1.0,
		Seed:         13,
		SimIncrement: 10,
		UsePUCT:      true,
		UseProbs:     true,
		Evaluator:    nn,
	})
	require.NoError(t, err)

	const n = 30
	for i := 0; i < n; i++ {
		require.NoError(t, e.RunSimulation())
	}
	assert.EqualValues(t, n, e.Root().Visits())

	ranked, err := e.RankedActions()
	require.NoError(t, err)
	assert.Len(t, ranked, 131)

	var total float32
	for _, c := range e.Root().Children() {
		total += c.Prior()
	}
	assert.InDelta(t, 1.0, total, 1e-3, "root priors from the evaluator must sum to 1")
}
