package neural

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/eval"
)

// Evaluator must satisfy eval.Provider to be wired into mcts.Config.Evaluator.
var _ eval.Provider = (*Evaluator)(nil)

// Evaluator is an eval.Provider backed by a small pre-built gorgonia
// forward-inference graph: one hidden tanh layer feeding a value head and
// a fixed-size policy head. It never trains (see the package doc); New
// initializes every weight randomly from the caller's seed and does not
// accept caller-supplied weights, the "forward only" mode the teacher's
// dual.Config.FwdOnly flag names.
type Evaluator struct {
	mu      sync.Mutex
	cfg     Config
	g       *gorgonia.ExprGraph
	x       *gorgonia.Node
	policy  *gorgonia.Node
	value   *gorgonia.Node
	machine *gorgonia.TapeMachine
}

// New builds the inference graph, with every weight deterministically
// initialized from seed so that two Evaluators built from the same seed
// score a position identically.
func New(cfg Config, seed uint64) (*Evaluator, error) {
	if !cfg.IsValid() {
		return nil, errors.New("neural: invalid config")
	}

	g := gorgonia.NewGraph()
	x := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(1, cfg.FeatureSize), gorgonia.WithName("x"))

	init := seededInit(rand.New(rand.NewSource(seed)))
	wIn := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(cfg.FeatureSize, cfg.Hidden), gorgonia.WithName("wIn"), gorgonia.WithInit(init))
	bIn := gorgonia.NewVector(g, tensor.Float32, gorgonia.WithShape(cfg.Hidden), gorgonia.WithName("bIn"), gorgonia.WithInit(gorgonia.Zeroes()))

	h0, err := gorgonia.Mul(x, wIn)
	if err != nil {
		return nil, errors.Wrap(err, "neural: building hidden layer")
	}
	h1, err := gorgonia.BroadcastAdd(h0, bIn, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "neural: adding hidden bias")
	}
	hAct, err := gorgonia.Tanh(h1)
	if err != nil {
		return nil, errors.Wrap(err, "neural: hidden activation")
	}

	wPolicy := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(cfg.Hidden, cfg.ActionSpace), gorgonia.WithName("wPolicy"), gorgonia.WithInit(init))
	bPolicy := gorgonia.NewVector(g, tensor.Float32, gorgonia.WithShape(cfg.ActionSpace), gorgonia.WithName("bPolicy"), gorgonia.WithInit(gorgonia.Zeroes()))
	p0, err := gorgonia.Mul(hAct, wPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "neural: building policy head")
	}
	policy, err := gorgonia.BroadcastAdd(p0, bPolicy, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "neural: adding policy bias")
	}

	wValue := gorgonia.NewMatrix(g, tensor.Float32, gorgonia.WithShape(cfg.Hidden, 1), gorgonia.WithName("wValue"), gorgonia.WithInit(init))
	bValue := gorgonia.NewVector(g, tensor.Float32, gorgonia.WithShape(1), gorgonia.WithName("bValue"), gorgonia.WithInit(gorgonia.Zeroes()))
	v0, err := gorgonia.Mul(hAct, wValue)
	if err != nil {
		return nil, errors.Wrap(err, "neural: building value head")
	}
	v1, err := gorgonia.BroadcastAdd(v0, bValue, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "neural: adding value bias")
	}
	value, err := gorgonia.Tanh(v1)
	if err != nil {
		return nil, errors.Wrap(err, "neural: value activation")
	}

	return &Evaluator{
		cfg:     cfg,
		g:       g,
		x:       x,
		policy:  policy,
		value:   value,
		machine: gorgonia.NewTapeMachine(g),
	}, nil
}

// seededInit returns a gorgonia weight initializer drawing from rng instead
// of the package-global randomness gorgonia.GlorotN otherwise uses, so two
// Evaluators built from the same seed hold identical weights (mirroring
// mcts.Engine's own seeded-RNG determinism guarantee, spec section 8
// property 7, extended here to network initialization).
func seededInit(rng *rand.Rand) gorgonia.InitWFn {
	return func(dt tensor.Dtype, s ...int) interface{} {
		size := 1
		for _, d := range s {
			size *= d
		}
		backing := make([]float32, size)
		for i := range backing {
			backing[i] = float32(rng.NormFloat64()) * 0.1
		}
		return backing
	}
}

// Close releases the tape machine's resources.
func (e *Evaluator) Close() error {
	return e.machine.Close()
}

// Infer implements eval.Provider: it runs one forward pass, then
// renormalizes the policy head's logits restricted to the given legal
// moves into a distribution summing to 1.
func (e *Evaluator) Infer(pos board.Board, moves []board.Move) ([]float32, float32, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	feat := Encode(pos)
	input := tensor.New(tensor.WithShape(1, e.cfg.FeatureSize), tensor.WithBacking(feat))
	if err := gorgonia.Let(e.x, input); err != nil {
		return nil, 0, false, errors.Wrap(err, "neural: feeding input")
	}

	e.machine.Reset()
	if err := e.machine.RunAll(); err != nil {
		return nil, 0, false, errors.Wrap(err, "neural: forward pass")
	}

	value := e.value.Value().Data().([]float32)[0]

	if moves == nil {
		return nil, value, true, nil
	}

	logits := e.policy.Value().Data().([]float32)
	priors := softmaxOver(logits, moves)
	return priors, value, true, nil
}

func softmaxOver(logits []float32, moves []board.Move) []float32 {
	picked := make([]float32, len(moves))
	maxLogit := float32(math.Inf(-1))
	for i, m := range moves {
		l := logits[MoveIndex(m)]
		picked[i] = l
		if l > maxLogit {
			maxLogit = l
		}
	}

	var sum float32
	for i, l := range picked {
		e := float32(math.Exp(float64(l - maxLogit)))
		picked[i] = e
		sum += e
	}
	if sum == 0 {
		return eval.Uniform(moves)
	}
	for i := range picked {
		picked[i] /= sum
	}
	return picked
}
