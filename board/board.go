// Package board implements the Corridors (Quoridor) position model: a 9x9
// pawn race with placeable wall obstacles. A Board is a value type; every
// mutation returns a new Board rather than modifying the receiver.
package board

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/corridors/engine/corerr"
)

// Size is the largest cell coordinate on the pawn grid, which is Size+1
// cells wide and high.
const Size = 8 // max coordinate index (grid runs 0..Size inclusive, i.e. 9 cells)

// WallLatticeSize is the width and height of the 8x8 lattice of wall
// intersections.
const WallLatticeSize = 8

// startingWalls is the number of walls each player holds at the start of a
// game.
const startingWalls = 10

// Pos is a cell coordinate on the 9x9 pawn grid.
type Pos struct {
	X, Y int8
}

// Board is a Corridors position, always expressed from the side-to-move's
// perspective: Hero is whoever moves next and always aims for row 8; Villain
// always aims for row 0. Applying a move swaps which physical player is
// labelled Hero (see Apply).
type Board struct {
	Hero, Villain           Pos
	HeroWalls, VillainWalls int8
	HWalls, VWalls          uint64 // 8x8 bitboards, bit index = y*8+x
}

// Initial returns the Corridors starting position.
func Initial() Board {
	return Board{
		Hero:         Pos{X: 4, Y: 0},
		Villain:      Pos{X: 4, Y: Size},
		HeroWalls:    startingWalls,
		VillainWalls: startingWalls,
	}
}

// direction is a pawn-step offset.
type direction struct{ dx, dy int8 }

// stepOrder is the canonical enumeration order for pawn steps: west, east,
// forward (toward the hero's goal row), backward. This fixed order is what
// makes LegalMoves deterministic for pawn moves.
var stepOrder = []direction{
	{-1, 0}, // west
	{1, 0},  // east
	{0, 1},  // forward (north, toward row 8)
	{0, -1}, // backward (south)
}

func inBounds(p Pos) bool {
	return p.X >= 0 && p.X <= Size && p.Y >= 0 && p.Y <= Size
}

func wallInBounds(x, y int8) bool {
	return x >= 0 && x < WallLatticeSize && y >= 0 && y < WallLatticeSize
}

func bitIndex(x, y int8) uint {
	return uint(y)*WallLatticeSize + uint(x)
}

func hasBit(bb uint64, x, y int8) bool {
	if !wallInBounds(x, y) {
		return false
	}
	return bb&(1<<bitIndex(x, y)) != 0
}

func setBit(bb uint64, x, y int8) uint64 {
	return bb | (1 << bitIndex(x, y))
}

// blockedVertical reports whether a horizontal wall blocks movement between
// cell (x,y) and (x,y+1) (dy must be +1 or -1; the lower row is used).
func (b Board) blockedVertical(x, lowY int8) bool {
	return hasBit(b.HWalls, x, lowY) || hasBit(b.HWalls, x-1, lowY)
}

// blockedHorizontal reports whether a vertical wall blocks movement between
// cell (lowX,y) and (lowX+1,y).
func (b Board) blockedHorizontal(lowX, y int8) bool {
	return hasBit(b.VWalls, lowX, y) || hasBit(b.VWalls, lowX, y-1)
}

// blockedBetween reports whether any wall blocks straight-line movement
// between two orthogonally adjacent in-bounds cells.
func (b Board) blockedBetween(from, to Pos) bool {
	switch {
	case to.X == from.X && to.Y == from.Y+1:
		return b.blockedVertical(from.X, from.Y)
	case to.X == from.X && to.Y == from.Y-1:
		return b.blockedVertical(from.X, to.Y)
	case to.Y == from.Y && to.X == from.X+1:
		return b.blockedHorizontal(from.X, from.Y)
	case to.Y == from.Y && to.X == from.X-1:
		return b.blockedHorizontal(to.X, from.Y)
	}
	return true // not orthogonally adjacent
}

// mirrorPos flips a pawn cell across the board's horizontal midline.
func mirrorPos(p Pos) Pos {
	return Pos{X: p.X, Y: Size - p.Y}
}

// mirrorWalls flips an 8x8 wall bitboard vertically. Bit index y*8+x packs
// each row into one byte, so vertical mirroring is exactly a byte reversal.
func mirrorWalls(bb uint64) uint64 {
	return bits.ReverseBytes64(bb)
}

// IsTerminal reports whether the current position has a winner.
func (b Board) IsTerminal() bool {
	return b.Hero.Y == Size || b.Villain.Y == 0
}

// TerminalValue returns the game result from the current Hero's
// perspective. Calling it on a non-terminal board is a precondition
// violation; callers must check IsTerminal first.
func (b Board) TerminalValue() float32 {
	if b.Hero.Y == Size {
		return 1
	}
	if b.Villain.Y == 0 {
		return -1
	}
	panic(errors.Wrap(corerr.ErrPreconditionViolation, "board: TerminalValue called on non-terminal board"))
}
