package board

import "github.com/chewxy/math32"

// heuristicK tunes how sharply the heuristic saturates toward +-1 as the
// path-length differential grows.
const heuristicK float32 = 0.5

// HeuristicValue scores a non-terminal position from the current Hero's
// perspective using the shortest-path differential to each pawn's goal
// row, squashed into (-1, 1) with tanh.
func (b Board) HeuristicValue() float32 {
	dHero := b.shortestDistance(b.Hero, Size)
	dVillain := b.shortestDistance(b.Villain, 0)
	return math32.Tanh(heuristicK * float32(dVillain-dHero))
}
