package mcts

import "github.com/chewxy/math32"

// selectChild implements spec section 4.3's selection formula: pick the
// child maximizing a score, where each child's own average equity is
// negated because perspective swaps on every move (a child's q is from the
// child's side-to-move, which is the parent's opponent). Ties are broken
// by child-list order via strict greater-than.
func (e *Engine) selectChild(parent *Node) *Node {
	N := float32(parent.n)

	var best *Node
	bestScore := math32.Inf(-1)

	for _, child := range parent.children {
		score := e.score(N, child)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func (e *Engine) score(parentVisits float32, child *Node) float32 {
	q := float32(child.AverageValue())

	if e.cfg.UsePUCT {
		return -q + e.cfg.ExplorationC*child.prior*math32.Sqrt(parentVisits)/(1+float32(child.n))
	}

	if child.n == 0 {
		return math32.Inf(1)
	}
	return -q + e.cfg.ExplorationC*math32.Sqrt(math32.Log(parentVisits)/float32(child.n))
}
