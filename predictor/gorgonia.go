package predictor

import (
	"fmt"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Gorgonia is a small forward-inference-only reference network: a single
// dense tanh trunk feeding a linear policy head (one logit per action) and a
// tanh value head (bounded to [-1, 1], matching the Evaluation.Value
// contract). It exists so the self-play runner has a learned-looking
// predictor to exercise without requiring a training pipeline or an ONNX
// runtime (see the predictor Non-goal in SPEC_FULL.md).
//
// Weights are initialized once at construction and never updated; this
// predictor is useful for exercising the MCTS/predictor wiring end to end,
// not for producing a strong player.
type Gorgonia struct {
	conf Config

	g   *G.ExprGraph
	vm  G.VM
	in  *G.Node
	pol *G.Node
	val *G.Node
}

// NewGorgonia builds the graph described by conf and allocates its weights
// with the Glorot-normal initializer the teacher's dualnet package uses for
// its own layers.
func NewGorgonia(conf Config) (*Gorgonia, error) {
	if !conf.IsValid() {
		return nil, errors.New("predictor: invalid Config")
	}

	g := G.NewGraph()

	in := G.NewMatrix(g, tensor.Float32, G.WithShape(1, conf.InputSize), G.WithName("input"), G.WithInit(G.Zeroes()))

	w1 := G.NewMatrix(g, tensor.Float32, G.WithShape(conf.InputSize, conf.Hidden), G.WithName("w1"), G.WithInit(G.GlorotN(1.0)))
	b1 := G.NewVector(g, tensor.Float32, G.WithShape(conf.Hidden), G.WithName("b1"), G.WithInit(G.Zeroes()))

	trunk, err := G.Mul(in, w1)
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building trunk matmul")
	}
	trunk, err = G.BroadcastAdd(trunk, b1, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building trunk bias add")
	}
	trunk, err = G.Tanh(trunk)
	if err != nil {
		return nil, errors.Wrap(err, "predictor: applying trunk activation")
	}

	wp := G.NewMatrix(g, tensor.Float32, G.WithShape(conf.Hidden, conf.ActionSpace), G.WithName("wp"), G.WithInit(G.GlorotN(1.0)))
	bp := G.NewVector(g, tensor.Float32, G.WithShape(conf.ActionSpace), G.WithName("bp"), G.WithInit(G.Zeroes()))
	pol, err := G.Mul(trunk, wp)
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building policy matmul")
	}
	pol, err = G.BroadcastAdd(pol, bp, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building policy bias add")
	}

	wv := G.NewMatrix(g, tensor.Float32, G.WithShape(conf.Hidden, 1), G.WithName("wv"), G.WithInit(G.GlorotN(1.0)))
	bv := G.NewVector(g, tensor.Float32, G.WithShape(1), G.WithName("bv"), G.WithInit(G.Zeroes()))
	val, err := G.Mul(trunk, wv)
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building value matmul")
	}
	val, err = G.BroadcastAdd(val, bv, nil, []byte{0})
	if err != nil {
		return nil, errors.Wrap(err, "predictor: building value bias add")
	}
	val, err = G.Tanh(val)
	if err != nil {
		return nil, errors.Wrap(err, "predictor: applying value activation")
	}

	vm := G.NewTapeMachine(g, G.BindDualValues(w1, b1, wp, bp, wv, bv))

	return &Gorgonia{conf: conf, g: g, vm: vm, in: in, pol: pol, val: val}, nil
}

func (p *Gorgonia) Predict(input []float32) ([]float32, float32, error) {
	if len(input) != p.conf.InputSize {
		return nil, 0, fmt.Errorf("predictor: expected %d inputs, got %d", p.conf.InputSize, len(input))
	}

	t := tensor.New(tensor.WithShape(1, p.conf.InputSize), tensor.WithBacking(input))
	if err := G.Let(p.in, t); err != nil {
		return nil, 0, errors.Wrap(err, "predictor: binding input")
	}

	p.vm.Reset()
	if err := p.vm.RunAll(); err != nil {
		return nil, 0, errors.Wrap(err, "predictor: running forward pass")
	}

	policy := p.pol.Value().Data().([]float32)
	value := p.val.Value().Data().([]float32)[0]

	out := make([]float32, len(policy))
	copy(out, policy)
	return out, value, nil
}

func (p *Gorgonia) Close() error {
	return p.vm.Close()
}
