// Package mcts implements the generic Monte Carlo Tree Search engine: tree
// growth with a pluggable selection policy (UCT or PUCT) and pluggable leaf
// evaluation (random rollout or heuristic/provider), operating over
// board.Board. The tree is single-owner: each Node's children slice is the
// sole reference to its subtree, so tearing down a subtree (on root
// promotion) is just dropping the slice and letting the garbage collector
// reclaim it — ordinary pointers replace the teacher's arena-of-indices and
// freelist, per the design note that this engine must pick single-owner
// discipline over shared ownership.
package mcts

import (
	"github.com/pkg/errors"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/corerr"
)

// Node is one node of the search tree.
type Node struct {
	parent   *Node
	move     board.Move
	hasMove  bool // false only at the root, which has no producing move
	position board.Board

	n     uint32
	w     float64
	prior float32

	expanded bool
	children []*Node
}

func newNode(parent *Node, move board.Move, hasMove bool, pos board.Board, prior float32) *Node {
	return &Node{
		parent:   parent,
		move:     move,
		hasMove:  hasMove,
		position: pos,
		prior:    prior,
	}
}

// HasMove reports whether this node has a producing move, i.e. whether it
// is anything other than a tree root.
func (nd *Node) HasMove() bool { return nd.hasMove }

// Move returns the move that produced this node. Calling it on the root is
// a precondition violation.
func (nd *Node) Move() board.Move {
	if !nd.hasMove {
		panic(errors.Wrap(corerr.ErrPreconditionViolation, "mcts: root node has no producing move"))
	}
	return nd.move
}

// Board returns the position at this node.
func (nd *Node) Board() board.Board { return nd.position }

// Visits returns n, the number of times this node has been recorded into.
func (nd *Node) Visits() uint32 { return nd.n }

// AverageValue returns w/n from this node's own side-to-move perspective.
// It is 0 for an unvisited node; callers that care about the distinction
// must check Visits() first.
func (nd *Node) AverageValue() float64 {
	if nd.n == 0 {
		return 0
	}
	return nd.w / float64(nd.n)
}

// Prior returns the prior probability assigned to this node at expansion.
func (nd *Node) Prior() float32 { return nd.prior }

// IsExpanded reports whether the engine has expanded this node.
func (nd *Node) IsExpanded() bool { return nd.expanded }

// IsTerminal reports whether this node's position has a winner.
func (nd *Node) IsTerminal() bool { return nd.position.IsTerminal() }

// Children returns the node's children in expansion order (fixed, one per
// legal move, never mutated except by root promotion).
func (nd *Node) Children() []*Node { return nd.children }

// Record implements spec section 4.2's record(value): increment n by one
// and add value to w.
func (nd *Node) Record(value float64) {
	nd.n++
	nd.w += value
}

// findChild returns the child produced by m, or nil if none matches.
func (nd *Node) findChild(m board.Move) *Node {
	for _, c := range nd.children {
		if c.hasMove && c.move == m {
			return c
		}
	}
	return nil
}
