package player

import (
	"golang.org/x/exp/rand"

	"github.com/corvidian/alphastep/encode"
	"github.com/corvidian/alphastep/game"
	m "github.com/corvidian/alphastep/mcts"
	"github.com/corvidian/alphastep/predictor"
)

// MCTSPlayer wraps an mcts.Mcts as a Player, always reporting its
// Evaluation so the self-play sample sink can use it as a training target.
// Construct one with NewClassic (rollout evaluator, UCB1, random
// progressive expansion) or NewNeuralNetwork (predictor-backed evaluator,
// PUCT, complete expansion) rather than building the Config by hand.
type MCTSPlayer[G game.State[G, A, C], A game.Action, C any] struct {
	search *m.Mcts[G, A, C]
	name   string
}

// NewClassic builds the "classic" MCTS preset: no trained predictor, just
// random rollouts for leaf evaluation and progressive (one-at-a-time)
// expansion, matching the original engine's ClassicMctsPlayer.
func NewClassic[G game.State[G, A, C], A game.Action, C any](simulations int, seed uint64) *MCTSPlayer[G, A, C] {
	r := rand.New(rand.NewSource(seed))
	search := m.New(m.Config[G, A, C]{
		Simulations: simulations,
		Scorer:      m.NewUCB1Scorer[A](),
		Expander:    m.RandomExpander[A]{Rand: r},
		Evaluator:   m.RolloutEvaluator[G, A, C]{Rand: r},
		Temperature: m.ConstantTemperature(0),
		Rand:        r,
	})
	return &MCTSPlayer[G, A, C]{search: search, name: "MCTS - Classic"}
}

// NewNeuralNetwork builds the predictor-backed preset: a trained (or, for
// this engine, a fixed-weight reference) predictor evaluates every leaf in
// one shot, PUCT scores children by their learned prior, and every legal
// action gets a child the first time a node is visited. Chain
// WithDirichletNoise/WithTemperatureSchedule to configure self-play
// exploration, mirroring the original engine's
// `NeuralNetworkMctsPlayer::new(...).with_dirichlet_noise(...).with_temperature_schedule(...)`.
func NewNeuralNetwork[G game.State[G, A, C], A game.Action, C any](
	simulations int,
	seed uint64,
	p predictor.Predictor,
	stateEnc encode.StateEncoder[G],
	actionEnc encode.ActionEncoder[A],
) *MCTSPlayer[G, A, C] {
	r := rand.New(rand.NewSource(seed))
	search := m.New(m.Config[G, A, C]{
		Simulations: simulations,
		Scorer:      m.NewPUCTScorer[A](),
		Expander:    m.CompleteExpander[A]{},
		Evaluator: m.PredictorEvaluator[G, A, C]{
			Predictor: p,
			StateEnc:  stateEnc,
			ActionEnc: actionEnc,
		},
		Rand: r,
	})
	return &MCTSPlayer[G, A, C]{search: search, name: "MCTS - Neural Network"}
}

// WithDirichletNoise mixes noise into the root's prior on every search,
// for self-play exploration. Not meant for competitive play.
func (p *MCTSPlayer[G, A, C]) WithDirichletNoise(noise m.DirichletNoise) *MCTSPlayer[G, A, C] {
	p.search.Noise = &noise
	return p
}

// WithTemperatureSchedule controls how sharply the final move is sampled
// from visit counts as the game progresses.
func (p *MCTSPlayer[G, A, C]) WithTemperatureSchedule(schedule m.TemperatureSchedule) *MCTSPlayer[G, A, C] {
	p.search.Temperature = schedule
	return p
}

func (p *MCTSPlayer[G, A, C]) Name() string { return p.name }

func (p *MCTSPlayer[G, A, C]) ChooseAction(g G, turn game.Turn, turnNumber uint32) Choice[A] {
	result, err := p.search.Search(g, turn, turnNumber)
	if err != nil {
		panic(err)
	}
	evaluation := m.Evaluation[A]{Policy: result.Policy, Value: result.Value}
	return Choice[A]{Action: result.Action, Evaluation: &evaluation}
}
