package board

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/corridors/engine/corerr"
)

// Kind tags which of the three move variants a Move encodes.
type Kind uint8

const (
	Step Kind = iota
	WallH
	WallV
)

// Move is a tagged variant: a pawn step to (X,Y), or a wall placed at the
// (X,Y) intersection of the 8x8 interior lattice.
type Move struct {
	Kind Kind
	X, Y int8
}

// ActionText renders m in canonical notation: "*(x,y)", "H(x,y)", "V(x,y)".
func ActionText(m Move) string {
	var token byte
	switch m.Kind {
	case Step:
		token = '*'
	case WallH:
		token = 'H'
	case WallV:
		token = 'V'
	default:
		panic(errors.Wrap(corerr.ErrPreconditionViolation, "board: ActionText called with an unknown move kind"))
	}
	return fmt.Sprintf("%c(%d,%d)", token, m.X, m.Y)
}

var actionPattern = regexp.MustCompile(`^([*HV])\((\d+),(\d+)\)$`)

// Parse maps canonical move text back to a Move. Any string not matching
// one of the three canonical forms fails with InvalidMove.
func Parse(s string) (Move, error) {
	match := actionPattern.FindStringSubmatch(s)
	if match == nil {
		return Move{}, errors.Wrapf(corerr.ErrInvalidMove, "unparseable move text %q", s)
	}
	x, err := strconv.Atoi(match[2])
	if err != nil {
		return Move{}, errors.Wrapf(corerr.ErrInvalidMove, "bad x coordinate in %q", s)
	}
	y, err := strconv.Atoi(match[3])
	if err != nil {
		return Move{}, errors.Wrapf(corerr.ErrInvalidMove, "bad y coordinate in %q", s)
	}

	var kind Kind
	var maxCoord int
	switch match[1] {
	case "*":
		kind = Step
		maxCoord = Size
	case "H":
		kind = WallH
		maxCoord = WallLatticeSize - 1
	case "V":
		kind = WallV
		maxCoord = WallLatticeSize - 1
	}
	if x < 0 || x > maxCoord || y < 0 || y > maxCoord {
		return Move{}, errors.Wrapf(corerr.ErrInvalidMove, "coordinate out of range in %q", s)
	}
	return Move{Kind: kind, X: int8(x), Y: int8(y)}, nil
}

// LegalMoves enumerates every legal move for the side to move, in a fixed
// deterministic order: pawn steps first (per stepOrder), then horizontal
// wall placements (row-major over the 8x8 lattice), then vertical wall
// placements (row-major). Returns nil at a terminal position.
func (b Board) LegalMoves() []Move {
	if b.IsTerminal() {
		return nil
	}

	var moves []Move
	moves = append(moves, b.legalSteps()...)
	moves = append(moves, b.legalWalls(WallH)...)
	moves = append(moves, b.legalWalls(WallV)...)
	return moves
}

func perpendiculars(d direction) []direction {
	if d.dy == 0 {
		return []direction{{0, 1}, {0, -1}}
	}
	return []direction{{-1, 0}, {1, 0}}
}

func (b Board) legalSteps() []Move {
	var moves []Move
	for _, d := range stepOrder {
		target := Pos{X: b.Hero.X + d.dx, Y: b.Hero.Y + d.dy}
		if !inBounds(target) || b.blockedBetween(b.Hero, target) {
			continue
		}

		if target != b.Villain {
			moves = append(moves, Move{Kind: Step, X: target.X, Y: target.Y})
			continue
		}

		// Opponent occupies the forward cell: try the straight jump first.
		beyond := Pos{X: target.X + d.dx, Y: target.Y + d.dy}
		if inBounds(beyond) && !b.blockedBetween(target, beyond) {
			moves = append(moves, Move{Kind: Step, X: beyond.X, Y: beyond.Y})
			continue
		}

		// Jump blocked: fall back to the two diagonal side-steps.
		for _, perp := range perpendiculars(d) {
			diag := Pos{X: target.X + perp.dx, Y: target.Y + perp.dy}
			if diag == b.Hero || !inBounds(diag) || b.blockedBetween(target, diag) {
				continue
			}
			moves = append(moves, Move{Kind: Step, X: diag.X, Y: diag.Y})
		}
	}
	return moves
}

func (b Board) legalWalls(kind Kind) []Move {
	if b.HeroWalls <= 0 {
		return nil
	}

	var moves []Move
	for y := int8(0); y < WallLatticeSize; y++ {
		for x := int8(0); x < WallLatticeSize; x++ {
			if b.wallLegal(kind, x, y) {
				moves = append(moves, Move{Kind: kind, X: x, Y: y})
			}
		}
	}
	return moves
}

func (b Board) wallLegal(kind Kind, x, y int8) bool {
	switch kind {
	case WallH:
		if hasBit(b.HWalls, x, y) || hasBit(b.HWalls, x-1, y) || hasBit(b.HWalls, x+1, y) {
			return false // overlaps an existing horizontal wall
		}
		if hasBit(b.VWalls, x, y) {
			return false // crosses a vertical wall at the same intersection
		}
	case WallV:
		if hasBit(b.VWalls, x, y) || hasBit(b.VWalls, x, y-1) || hasBit(b.VWalls, x, y+1) {
			return false // overlaps an existing vertical wall
		}
		if hasBit(b.HWalls, x, y) {
			return false // crosses a horizontal wall at the same intersection
		}
	}

	next := b
	switch kind {
	case WallH:
		next.HWalls = setBit(b.HWalls, x, y)
	case WallV:
		next.VWalls = setBit(b.VWalls, x, y)
	}
	return next.pathExists(next.Hero, Size) && next.pathExists(next.Villain, 0)
}

// Apply returns the board after m, with perspective swapped to the
// opponent. The receiver is unchanged. Applying an illegal move is a
// precondition violation left undefined by this method; callers must only
// apply moves returned by LegalMoves.
func (b Board) Apply(m Move) Board {
	next := b
	switch m.Kind {
	case Step:
		next.Hero = Pos{X: m.X, Y: m.Y}
	case WallH:
		next.HWalls = setBit(b.HWalls, m.X, m.Y)
		next.HeroWalls--
	case WallV:
		next.VWalls = setBit(b.VWalls, m.X, m.Y)
		next.HeroWalls--
	}

	return Board{
		Hero:         mirrorPos(next.Villain),
		Villain:      mirrorPos(next.Hero),
		HeroWalls:    next.VillainWalls,
		VillainWalls: next.HeroWalls,
		HWalls:       mirrorWalls(next.HWalls),
		VWalls:       mirrorWalls(next.VWalls),
	}
}
