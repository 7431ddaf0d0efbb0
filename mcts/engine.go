package mcts

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/eval"
)

// Engine drives one search tree: selection, expansion, evaluation, and
// backpropagation, over a single-owner root. Everything here is
// single-threaded and cooperative (spec section 5) — there is no internal
// parallelism, unlike the teacher's goroutine-per-CPU worker pool in
// mcts/search.go, which this engine intentionally does not carry forward.
type Engine struct {
	cfg      Config
	root     *Node
	rand     *rand.Rand
	noiseSrc rand.Source // dedicated stream for root Dirichlet noise
}

// New constructs an Engine over the given starting position. Construction
// fails immediately on a contradictory configuration (spec section 6).
func New(pos board.Board, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		rand:     rand.New(rand.NewSource(cfg.Seed)),
		noiseSrc: rand.NewSource(cfg.Seed ^ 0x9E3779B97F4A7C15),
	}
	e.root = newNode(nil, board.Move{}, false, pos, 1)
	e.cfg.logf("mcts: engine constructed, seed=%d use_puct=%v use_probs=%v", cfg.Seed, cfg.UsePUCT, cfg.UseProbs)
	return e, nil
}

// Root returns the current root node.
func (e *Engine) Root() *Node { return e.root }

// Reset replaces the root with a fresh position, discarding the entire
// tree (spec section 4.4's reset operation).
func (e *Engine) Reset(pos board.Board) {
	e.cfg.logf("mcts: reset, discarding tree of %d root visits", e.root.Visits())
	e.root = newNode(nil, board.Move{}, false, pos, 1)
}

// RunSimulation executes one full select-expand-evaluate-backpropagate
// cycle (spec section 4.3). It is a no-op returning nil when the root is
// already terminal.
func (e *Engine) RunSimulation() error {
	if e.root.IsTerminal() {
		return nil
	}

	path := []*Node{e.root}
	cur := e.root
	for cur.expanded && !cur.IsTerminal() {
		child := e.selectChild(cur)
		path = append(path, child)
		cur = child
	}

	var leafValue float32
	if cur.IsTerminal() {
		leafValue = cur.position.TerminalValue()
	} else {
		if err := e.expand(cur); err != nil {
			return err
		}
		leafValue = e.evaluateLeaf(cur)
	}

	e.backpropagate(path, leafValue)
	e.cfg.logf("mcts: simulation complete, depth=%d leaf_value=%.4f root_visits=%d", len(path), leafValue, e.root.n)
	return nil
}

// expand materializes cur's children, one per legal move, in enumeration
// order (spec section 4.2). Idempotent: a second call on an already
// expanded node is a no-op.
func (e *Engine) expand(cur *Node) error {
	if cur.expanded {
		return nil
	}
	cur.expanded = true

	moves := cur.position.LegalMoves()
	if len(moves) == 0 {
		return nil
	}

	priors, err := e.priorsFor(cur, moves)
	if err != nil {
		return err
	}
	e.cfg.logf("mcts: expanding node into %d children", len(moves))

	cur.children = make([]*Node, len(moves))
	for i, m := range moves {
		childPos := cur.position.Apply(m)
		child := newNode(cur, m, true, childPos, priors[i])
		if e.cfg.EvalChildren {
			child.n = 1
			child.w = float64(childPos.HeuristicValue())
		}
		cur.children[i] = child
	}
	return nil
}

func (e *Engine) priorsFor(cur *Node, moves []board.Move) ([]float32, error) {
	var priors []float32
	if e.cfg.UseProbs {
		if e.cfg.Evaluator == nil {
			return nil, errMissingEvaluator("use_probs is set but no Evaluator was configured")
		}
		p, _, _, err := e.cfg.Evaluator.Infer(cur.position, moves)
		if err != nil {
			return nil, err
		}
		priors = p
	} else {
		priors = eval.Uniform(moves)
	}

	if cur.parent == nil && e.cfg.RootNoiseFrac > 0 && e.cfg.UsePUCT && e.cfg.UseProbs {
		priors = e.mixRootNoise(priors)
		e.cfg.logf("mcts: mixed root noise, alpha=%.3f frac=%.3f", e.cfg.RootNoiseAlpha, e.cfg.RootNoiseFrac)
	}
	return priors, nil
}

// mixRootNoise blends Dirichlet-distributed exploration noise into the
// root's child priors, built the way the teacher's tree.go builds its
// dirichletSample, but drawn from this engine's own seeded RNG so
// determinism (spec section 8, property 7) is preserved for a fixed seed.
func (e *Engine) mixRootNoise(priors []float32) []float32 {
	alpha := make([]float64, len(priors))
	for i := range alpha {
		alpha[i] = e.cfg.RootNoiseAlpha
	}
	dist := distmv.NewDirichlet(alpha, e.noiseSrc)
	noise := dist.Rand(nil)

	frac := e.cfg.RootNoiseFrac
	out := make([]float32, len(priors))
	for i, p := range priors {
		out[i] = float32((1-frac)*float64(p) + frac*noise[i])
	}
	return out
}

// evaluateLeaf produces a scalar value from the leaf's own side-to-move
// perspective (spec section 4.3 step 3).
func (e *Engine) evaluateLeaf(leaf *Node) float32 {
	if e.cfg.UseRollout {
		return e.rollout(leaf.position)
	}
	if e.cfg.Evaluator != nil {
		if _, v, has, err := e.cfg.Evaluator.Infer(leaf.position, nil); err == nil && has {
			return v
		}
	}
	return leaf.position.HeuristicValue()
}

// rollout plays uniformly-random legal moves from a copy of pos until
// terminal, then returns the terminal value from pos's own perspective by
// flipping sign once per move played (spec section 4.3 step 3). It never
// allocates tree nodes.
func (e *Engine) rollout(pos board.Board) float32 {
	cur := pos
	sign := float32(1)
	for !cur.IsTerminal() {
		moves := cur.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[e.rand.Intn(len(moves))]
		cur = cur.Apply(m)
		sign = -sign
	}
	return cur.TerminalValue() * sign
}

// backpropagate walks path from leaf to root, recording value at the leaf
// and flipping sign at every step up (spec section 4.3 step 4).
func (e *Engine) backpropagate(path []*Node, value float32) {
	v := float64(value)
	for i := len(path) - 1; i >= 0; i-- {
		path[i].Record(v)
		v = -v
	}
}

// RankedAction is one entry of a ranked-actions query.
type RankedAction struct {
	Move   board.Move
	Visits uint32
	Equity float64 // from the root's own side-to-move perspective
}

// RankedActions expands the root if needed and returns its children
// ordered per spec section 4.3: by visit count descending when
// DecideUsingVisits, else by equity (from the root's perspective)
// descending. Ties are broken by child-list order.
func (e *Engine) RankedActions() ([]RankedAction, error) {
	if !e.root.expanded {
		if err := e.expand(e.root); err != nil {
			return nil, err
		}
	}

	actions := make([]RankedAction, len(e.root.children))
	for i, c := range e.root.children {
		actions[i] = RankedAction{
			Move:   c.move,
			Visits: c.n,
			Equity: -c.AverageValue(),
		}
	}

	idx := make([]int, len(actions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := actions[idx[i]], actions[idx[j]]
		if e.cfg.DecideUsingVisits {
			return a.Visits > b.Visits
		}
		return a.Equity > b.Equity
	})

	ranked := make([]RankedAction, len(actions))
	for i, id := range idx {
		ranked[i] = actions[id]
	}
	return ranked, nil
}

// BestAction returns the first element of RankedActions.
func (e *Engine) BestAction() (RankedAction, error) {
	ranked, err := e.RankedActions()
	if err != nil {
		return RankedAction{}, err
	}
	if len(ranked) == 0 {
		return RankedAction{}, nil
	}
	return ranked[0], nil
}

// Promote finds the root's child produced by m, expanding the root first
// if necessary, and makes it the new root — discarding every sibling
// subtree (spec section 4.2's root promotion). Returns false if m does not
// match any root child.
func (e *Engine) Promote(m board.Move) bool {
	if !e.root.expanded {
		if err := e.expand(e.root); err != nil {
			return false
		}
	}
	child := e.root.findChild(m)
	if child == nil {
		e.cfg.logf("mcts: promote rejected, %s matches no root child", board.ActionText(m))
		return false
	}
	child.parent = nil
	e.root = child
	e.cfg.logf("mcts: promoted %s, reused %d visits", board.ActionText(m), child.n)
	return true
}
