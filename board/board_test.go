package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialOpeningCatalog(t *testing.T) {
	b := Initial()
	moves := b.LegalMoves()
	require.Len(t, moves, 131)

	pawnMoves := moves[:3]
	assert.Equal(t, "*(3,0)", ActionText(pawnMoves[0]))
	assert.Equal(t, "*(5,0)", ActionText(pawnMoves[1]))
	assert.Equal(t, "*(4,1)", ActionText(pawnMoves[2]))

	var walls int
	for _, m := range moves {
		if m.Kind != Step {
			walls++
		}
	}
	assert.Equal(t, 128, walls)
}

func TestApplyIsPure(t *testing.T) {
	b := Initial()
	snapshot := b
	_ = b.Apply(Move{Kind: Step, X: 4, Y: 1})
	assert.Equal(t, snapshot, b, "Apply must not mutate the receiver")
}

func TestApplySwapsPerspective(t *testing.T) {
	b := Initial()
	next := b.Apply(Move{Kind: Step, X: 4, Y: 1})

	// The mover's pawn (now Villain in the new frame) sits at the cell it
	// stepped to, mirrored across the midline.
	assert.Equal(t, Pos{X: 4, Y: Size - 1}, next.Villain)
	// The opponent (now Hero) keeps its absolute position mirrored too.
	assert.Equal(t, Pos{X: 4, Y: 0}, next.Hero)
}

func TestTerminalDetection(t *testing.T) {
	b := Board{Hero: Pos{X: 4, Y: Size}, Villain: Pos{X: 0, Y: 4}}
	require.True(t, b.IsTerminal())
	assert.Equal(t, float32(1), b.TerminalValue())

	b2 := Board{Hero: Pos{X: 4, Y: 4}, Villain: Pos{X: 0, Y: 0}}
	require.True(t, b2.IsTerminal())
	assert.Equal(t, float32(-1), b2.TerminalValue())
}

func TestTerminalValuePanicsWhenNotTerminal(t *testing.T) {
	b := Initial()
	assert.Panics(t, func() { b.TerminalValue() })
}

func TestMoveNotationRoundTrips(t *testing.T) {
	for _, m := range Initial().LegalMoves() {
		text := ActionText(m)
		parsed, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "*", "*(9,0)", "H(8,0)", "X(0,0)", "*(0,0,0)", "*(-1,0)"} {
		_, err := Parse(s)
		assert.Error(t, err, s)
	}
}

func TestWallTrapRejection(t *testing.T) {
	b := Initial()
	b = b.Apply(mustParse(t, "H(0,0)"))
	b = b.Apply(mustParse(t, "H(2,0)"))
	b = b.Apply(mustParse(t, "*(4,1)"))
	b = b.Apply(mustParse(t, "*(4,7)"))

	for _, m := range b.LegalMoves() {
		if m.Kind == Step {
			continue
		}
		trial := b.Apply(m)
		// the trial board is perspective-swapped; both pawns (whichever
		// labels they now hold) must still have a path to their own goal.
		assert.True(t, trial.pathExists(trial.Hero, Size))
		assert.True(t, trial.pathExists(trial.Villain, 0))
	}
}

func TestWallOverlapAndCrossingRejected(t *testing.T) {
	// A wall cannot overlap an existing same-orientation wall, or cross a
	// perpendicular wall at the same intersection.
	f := Initial()
	f.HWalls = setBit(f.HWalls, 3, 3)
	assert.False(t, f.wallLegal(WallH, 2, 3))
	assert.False(t, f.wallLegal(WallH, 4, 3))
	assert.False(t, f.wallLegal(WallH, 3, 3))
	assert.False(t, f.wallLegal(WallV, 3, 3))
	assert.True(t, f.wallLegal(WallV, 5, 5))
}

func mustParse(t *testing.T, s string) Move {
	t.Helper()
	m, err := Parse(s)
	require.NoError(t, err)
	return m
}
