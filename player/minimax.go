package player

import (
	"github.com/chewxy/math32"

	"github.com/corvidian/alphastep/game"
)

// MinimaxPlayer is a plain alpha-beta searcher, useful as a strong,
// deterministic-ish baseline opponent to sanity-check the MCTS players
// against. It never produces an Evaluation.
type MinimaxPlayer[G game.State[G, A, C], A game.Action, C any] struct {
	Depth int
}

func NewMinimaxPlayer[G game.State[G, A, C], A game.Action, C any](depth int) *MinimaxPlayer[G, A, C] {
	return &MinimaxPlayer[G, A, C]{Depth: depth}
}

func (p *MinimaxPlayer[G, A, C]) Name() string { return "Minimax with Alpha-Beta Pruning" }

// objective tracks whose side the current minimax level is maximizing for:
// Maximize at the root (the side to move when ChooseAction was called), and
// flipped every time a ply actually ends the turn.
type objective bool

const (
	maximize objective = true
	minimize objective = false
)

func (o objective) flip() objective { return !o }

func (o objective) sign() float32 {
	if o == maximize {
		return 1
	}
	return -1
}

func (p *MinimaxPlayer[G, A, C]) ChooseAction(g G, turn game.Turn, turnNumber uint32) Choice[A] {
	root := g.Clone()
	_, action := p.minimax(root, p.Depth, maximize, math32.Inf(-1), math32.Inf(1))
	return Choice[A]{Action: action}
}

func (p *MinimaxPlayer[G, A, C]) minimax(g G, depth int, obj objective, alpha, beta float32) (float32, A) {
	var zero A

	outcome := g.Outcome()
	if depth == 0 || outcome != game.InProgress {
		switch outcome {
		case game.Win:
			return obj.sign(), zero
		case game.Loss:
			return -obj.sign(), zero
		default:
			return 0, zero
		}
	}

	var bestValue float32
	if obj == maximize {
		bestValue = math32.Inf(-1)
	} else {
		bestValue = math32.Inf(1)
	}
	var bestAction A
	haveBest := false

	checkpoint := g.CreateCheckpoint()
	for _, action := range g.LegalActions() {
		turnEnded := g.Apply(action)
		nextObj := obj
		if turnEnded {
			g.EndTurn()
			nextObj = obj.flip()
		}

		value, _ := p.minimax(g, depth-1, nextObj, alpha, beta)
		g.RestoreCheckpoint(checkpoint)

		if obj == maximize {
			if value > bestValue || !haveBest {
				bestValue, bestAction, haveBest = value, action, true
			}
			alpha = math32.Max(alpha, bestValue)
		} else {
			if value < bestValue || !haveBest {
				bestValue, bestAction, haveBest = value, action, true
			}
			beta = math32.Min(beta, bestValue)
		}

		if beta <= alpha {
			break
		}
	}

	return bestValue, bestAction
}
