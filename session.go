// Package corridors is the Session façade (spec section 4.4): the one
// entry point a driver program needs, wrapping an mcts.Engine and a
// board.Board so callers never touch either package directly. It owns
// exactly one search tree at a time and exposes the operations a UI or
// CLI loop drives: grow the tree, read off a ranked decision, commit a
// move, or reset to a fresh game.
package corridors

import (
	"log"

	"github.com/pkg/errors"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/corerr"
	"github.com/corridors/engine/mcts"
)

// Session owns one search over one evolving Corridors game.
type Session struct {
	cfg    mcts.Config
	engine *mcts.Engine

	// Logger receives facade-level trace lines (commit/reset/ensure_simulations)
	// when non-nil; nil disables tracing entirely, the same nil-safe
	// convention mcts.Config.Logger uses. Defaults to cfg.Logger so a single
	// logger wired at construction covers both the engine and the facade.
	Logger *log.Logger
}

// New constructs a Session starting from the Corridors opening position.
// Construction fails immediately on a contradictory cfg (spec section 6).
func New(cfg mcts.Config) (*Session, error) {
	return NewFrom(board.Initial(), cfg)
}

// NewFrom constructs a Session starting from an arbitrary position, for
// driver programs that resume a game in progress.
func NewFrom(pos board.Board, cfg mcts.Config) (*Session, error) {
	e, err := mcts.New(pos, cfg)
	if err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, engine: e, Logger: cfg.Logger}, nil
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

// EnsureSimulations grows the current tree until its root has recorded at
// least n simulations, running in cfg.SimIncrement-sized batches and
// respecting cfg.MaxSimulations as a hard ceiling (0 means unbounded). A
// terminal root is a no-op, matching mcts.Engine.RunSimulation. Calling
// it with n already satisfied by the root's visit count is also a no-op.
func (s *Session) EnsureSimulations(n int) error {
	root := s.engine.Root()
	if root.IsTerminal() {
		s.logf("corridors: ensure_simulations(%d) no-op, root is terminal", n)
		return nil
	}

	target := n
	if s.cfg.MaxSimulations > 0 && target > s.cfg.MaxSimulations {
		target = s.cfg.MaxSimulations
	}

	for int(root.Visits()) < target {
		batch := s.cfg.SimIncrement
		if remaining := target - int(root.Visits()); batch > remaining {
			batch = remaining
		}
		for i := 0; i < batch; i++ {
			if err := s.engine.RunSimulation(); err != nil {
				return err
			}
			if root.IsTerminal() {
				s.logf("corridors: ensure_simulations(%d) stopped early, root became terminal after %d visits", n, root.Visits())
				return nil
			}
		}
	}
	s.logf("corridors: ensure_simulations(%d) complete, root has %d visits", n, root.Visits())
	return nil
}

// RankedActions returns the root's children ordered per spec section 4.3,
// expanding the root first if no simulation has run yet.
func (s *Session) RankedActions() ([]mcts.RankedAction, error) {
	return s.engine.RankedActions()
}

// BestAction returns the top entry of RankedActions.
func (s *Session) BestAction() (mcts.RankedAction, error) {
	return s.engine.BestAction()
}

// Commit parses moveText, verifies it matches one of the root's children,
// and promotes that child to be the new root (spec section 4.2's root
// promotion), discarding every sibling subtree. An unparseable or
// currently-illegal move fails with corerr.ErrInvalidMove and leaves the
// session unchanged.
func (s *Session) Commit(moveText string) error {
	m, err := board.Parse(moveText)
	if err != nil {
		s.logf("corridors: commit rejected, %q does not parse: %v", moveText, err)
		return err
	}
	if !s.engine.Promote(m) {
		s.logf("corridors: commit rejected, %q is not legal in the current position", moveText)
		return errors.Wrapf(corerr.ErrInvalidMove, "move %q is not legal in the current position", moveText)
	}
	s.logf("corridors: committed %q", moveText)
	return nil
}

// Display renders the current root position as a stable ASCII grid.
func (s *Session) Display() string {
	return s.engine.Root().Board().Format()
}

// Reset discards the current tree and starts a fresh game from the
// Corridors opening position.
func (s *Session) Reset() {
	s.logf("corridors: reset to opening position")
	s.engine.Reset(board.Initial())
}

// ResetTo discards the current tree and starts from an arbitrary position.
func (s *Session) ResetTo(pos board.Board) {
	s.logf("corridors: reset to supplied position")
	s.engine.Reset(pos)
}

// Position returns the current root position.
func (s *Session) Position() board.Board {
	return s.engine.Root().Board()
}

// IsTerminal reports whether the current position has a winner.
func (s *Session) IsTerminal() bool {
	return s.engine.Root().IsTerminal()
}
