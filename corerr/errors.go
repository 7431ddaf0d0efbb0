// Package corerr defines the error kinds shared across the engine, keyed by
// what they signal rather than by where they are raised (spec section 7).
// It has no dependencies of its own so every layer — board, mcts, eval, and
// the session facade — can wrap one of these sentinels with
// github.com/pkg/errors without an import cycle.
package corerr

import "errors"

var (
	// ErrInvalidMove signals unparseable or illegal move text handed to the
	// session facade.
	ErrInvalidMove = errors.New("invalid move")

	// ErrMissingEvaluator signals that a configuration option requires an
	// external evaluation provider that was not supplied.
	ErrMissingEvaluator = errors.New("missing evaluator")

	// ErrInvalidConfiguration signals contradictory or out-of-range
	// construction options.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrPreconditionViolation signals an operation attempted on an object
	// in a state that does not support it (a programming error, not a user
	// error).
	ErrPreconditionViolation = errors.New("precondition violation")
)
