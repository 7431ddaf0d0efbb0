package neural

import "github.com/corridors/engine/board"

// FeatureSize is the length of the encoded board feature vector: Hero and
// Villain coordinates (4), remaining wall counts (2), and the two 8x8 wall
// bitboards unpacked to one float per intersection (128).
const FeatureSize = 4 + 2 + 2*64

// ActionSpace is the size of the fixed output action space this graph's
// policy head predicts over: 81 pawn-step destinations plus 64 horizontal
// and 64 vertical wall intersections, mirroring the teacher's fixed
// per-game ActionSpace (game.State.ActionSpace()) rather than growing with
// however many moves happen to be legal in a given position.
const ActionSpace = 81 + 64 + 64

// Encode flattens a board position into a fixed-length feature vector.
func Encode(pos board.Board) []float32 {
	f := make([]float32, 0, FeatureSize)
	f = append(f,
		float32(pos.Hero.X), float32(pos.Hero.Y),
		float32(pos.Villain.X), float32(pos.Villain.Y),
		float32(pos.HeroWalls), float32(pos.VillainWalls),
	)
	for y := int8(0); y < board.WallLatticeSize; y++ {
		for x := int8(0); x < board.WallLatticeSize; x++ {
			f = append(f, bitFeature(pos.HWalls, x, y))
		}
	}
	for y := int8(0); y < board.WallLatticeSize; y++ {
		for x := int8(0); x < board.WallLatticeSize; x++ {
			f = append(f, bitFeature(pos.VWalls, x, y))
		}
	}
	return f
}

func bitFeature(bb uint64, x, y int8) float32 {
	idx := uint(y)*board.WallLatticeSize + uint(x)
	if bb&(1<<idx) != 0 {
		return 1
	}
	return 0
}

// MoveIndex maps a move to its slot in the fixed ActionSpace output layer.
func MoveIndex(m board.Move) int {
	switch m.Kind {
	case board.Step:
		return int(m.Y)*(board.Size+1) + int(m.X)
	case board.WallH:
		return 81 + int(m.Y)*board.WallLatticeSize + int(m.X)
	case board.WallV:
		return 81 + 64 + int(m.Y)*board.WallLatticeSize + int(m.X)
	}
	panic("neural: unknown move kind")
}
