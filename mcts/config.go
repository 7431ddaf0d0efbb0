package mcts

import (
	"log"

	"github.com/hashicorp/go-multierror"

	"github.com/corridors/engine/eval"
)

// Config configures an Engine. Passed once at construction and never
// mutated thereafter (spec section 6).
type Config struct {
	// ExplorationC is the exploration constant in the selection formula.
	// Typical: sqrt(2) for UCT, a small value such as sqrt(0.025) for PUCT.
	ExplorationC float32

	// Seed seeds the internal RNG. Identical seed plus identical operation
	// sequence must yield identical trees (spec section 8, property 7).
	Seed uint64

	MinSimulations int
	MaxSimulations int
	SimIncrement   int

	UseRollout        bool
	UsePUCT           bool
	EvalChildren      bool
	UseProbs          bool
	DecideUsingVisits bool

	// Evaluator supplies priors (when UseProbs) and/or a value estimate
	// (when UseRollout is false) in place of the built-in heuristic. Must
	// be non-nil when UseProbs is set.
	Evaluator eval.Provider

	// RootNoiseAlpha and RootNoiseFrac add Dirichlet exploration noise to
	// the root's child priors, a documented extension beyond the option
	// set spec.md originally lists (see SPEC_FULL.md section 3). Zero
	// RootNoiseFrac disables the feature entirely. Only meaningful when
	// UsePUCT and UseProbs are both set.
	RootNoiseAlpha float64
	RootNoiseFrac  float64

	// Logger receives internal trace lines when non-nil; nil disables
	// tracing entirely (the teacher's arena.go wires a *log.Logger the
	// same way).
	Logger *log.Logger
}

// Validate reports every configuration problem at once via
// go-multierror, matching spec section 6's "construction with
// contradictory options fails immediately" and section 7's
// InvalidConfiguration error kind.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.ExplorationC < 0 {
		errs = multierror.Append(errs, errConfig("exploration_c must be >= 0"))
	}
	if c.SimIncrement <= 0 {
		errs = multierror.Append(errs, errConfig("sim_increment must be > 0"))
	}
	if c.MinSimulations < 0 || c.MaxSimulations < 0 {
		errs = multierror.Append(errs, errConfig("simulation bounds must be >= 0"))
	}
	if c.MaxSimulations > 0 && c.MinSimulations > c.MaxSimulations {
		errs = multierror.Append(errs, errConfig("min_simulations must be <= max_simulations"))
	}
	if c.UseProbs && c.Evaluator == nil {
		errs = multierror.Append(errs, errConfig("use_probs requires an Evaluator"))
	}
	if c.RootNoiseFrac < 0 || c.RootNoiseFrac > 1 {
		errs = multierror.Append(errs, errConfig("root_noise_frac must be in [0,1]"))
	}
	if c.RootNoiseFrac > 0 && c.RootNoiseAlpha <= 0 {
		errs = multierror.Append(errs, errConfig("root_noise_alpha must be > 0 when root_noise_frac is set"))
	}

	return errs.ErrorOrNil()
}

func (c Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
