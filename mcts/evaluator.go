package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/corvidian/alphastep/encode"
	"github.com/corvidian/alphastep/game"
	"github.com/corvidian/alphastep/predictor"
)

const epsilon = 1.1920929e-7 // float32 machine epsilon, matches f32::EPSILON

// Evaluator turns a leaf position into a policy over its legal actions and a
// scalar value, both from the perspective of turn (the side to move at g).
type Evaluator[G game.State[G, A, C], A game.Action, C any] interface {
	Evaluate(g G, legal []A, turn game.Turn) (Evaluation[A], error)
}

// outcomeValue is the scalar value of a terminal Outcome, from the
// perspective of the side the outcome is itself relative to.
func outcomeValue(o game.Outcome) float32 {
	switch o {
	case game.Win:
		return 1
	case game.Loss:
		return -1
	default:
		return 0
	}
}

// RolloutEvaluator evaluates a leaf by playing a uniformly random game to
// completion and reporting the result, with a uniform prior over legal
// actions. It needs no trained predictor, so it backs the "classic" MCTS
// preset (see player.NewClassic).
type RolloutEvaluator[G game.State[G, A, C], A game.Action, C any] struct {
	Rand *rand.Rand
}

func (e RolloutEvaluator[G, A, C]) Evaluate(g G, legal []A, turn game.Turn) (Evaluation[A], error) {
	prior := float32(1) / float32(len(legal))
	policy := make([]PolicyItem[A], len(legal))
	for i, a := range legal {
		policy[i] = PolicyItem[A]{Action: a, Prior: prior}
	}

	rollout := g.Clone()
	curLegal := legal
	flips := 0
	for {
		outcome := rollout.Outcome()
		if outcome != game.InProgress {
			value := outcomeValue(outcome)
			if flips%2 != 0 {
				value = -value
			}
			return Evaluation[A]{Policy: policy, Value: value}, nil
		}
		action := curLegal[e.Rand.Intn(len(curLegal))]
		if rollout.Apply(action) {
			rollout.EndTurn()
			flips++
		}
		curLegal = rollout.LegalActions()
	}
}

// PredictorEvaluator evaluates a leaf with a trained predictor: the state
// encoder feeds it a tensor, and its raw policy logits are restricted to
// legal actions and renormalized, the way the original neural network
// evaluator does (sum of exp(logit) over legal actions only, floored at
// machine epsilon to avoid a division by zero on a fully-zero row). It
// panics if the predictor returns a logit vector whose length is not the
// action encoder's ActionCount, a NaN value, or a NaN logit for a legal
// action.
type PredictorEvaluator[G game.State[G, A, C], A game.Action, C any] struct {
	Predictor predictor.Predictor
	StateEnc  encode.StateEncoder[G]
	ActionEnc encode.ActionEncoder[A]
}

func (e PredictorEvaluator[G, A, C]) Evaluate(g G, legal []A, turn game.Turn) (Evaluation[A], error) {
	input := e.StateEnc.Encode(g)
	logits, value, err := e.Predictor.Predict(input)
	if err != nil {
		return Evaluation[A]{}, err
	}
	if len(logits) != e.ActionEnc.ActionCount() {
		panic(fmt.Sprintf("mcts: predictor returned %d policy logits, want %d", len(logits), e.ActionEnc.ActionCount()))
	}
	if math32.IsNaN(value) {
		panic("mcts: predictor returned a NaN value")
	}

	policy := make([]PolicyItem[A], len(legal))
	var total float32
	for i, a := range legal {
		logit := logits[e.ActionEnc.Encode(a)]
		if math32.IsNaN(logit) {
			panic(fmt.Sprintf("mcts: predictor returned a NaN logit for action %v", a))
		}
		w := math32.Exp(logit)
		policy[i] = PolicyItem[A]{Action: a, Prior: w}
		total += w
	}
	total = math32.Max(total, epsilon)
	for i := range policy {
		policy[i].Prior /= total
	}

	return Evaluation[A]{Policy: policy, Value: value}, nil
}
