package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/mcts"
)

func TestTreeRendersRootAndChildren(t *testing.T) {
	e, err := mcts.New(board.Initial(), mcts.Config{
		ExplorationC: 1.4142135,
		Seed:         5,
		SimIncrement: 10,
		UseRollout:   true,
	})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, e.RunSimulation())
	}

	dot, err := Tree(e.Root(), TreeOptions{MaxDepth: 1})
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "root")
}

func TestBoardPNGEncodesNonEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	err := BoardPNG(&buf, board.Initial(), BoardOptions{})
	require.NoError(t, err)
	assert.True(t, buf.Len() > 0)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}
