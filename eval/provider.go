// Package eval defines the external evaluation-provider hook (spec section
// 6) and the uniform-prior fallback. The engine consumes probabilities
// and scalar evaluations through this interface but never trains one: the
// hook is for plugging in an already-trained policy/value source, not for
// learning one (see eval/neural for an inference-only adapter).
package eval

import "github.com/corridors/engine/board"

// Provider supplies a prior distribution over a board's legal moves and
// optionally a scalar value estimate for the position. The recommended
// shape from spec section 9's open question: a distribution over
// board.LegalMoves() in the same enumeration order, summing to 1, plus an
// optional value. HasValue is false when the provider only scores moves,
// in which case the engine falls back to rollout or heuristic evaluation.
type Provider interface {
	Infer(pos board.Board, moves []board.Move) (priors []float32, value float32, hasValue bool, err error)
}

// Uniform returns priors of 1/len(moves) for every move and no value
// estimate — the engine's default when use_probs is false.
func Uniform(moves []board.Move) []float32 {
	if len(moves) == 0 {
		return nil
	}
	p := make([]float32, len(moves))
	share := float32(1) / float32(len(moves))
	for i := range p {
		p[i] = share
	}
	return p
}
