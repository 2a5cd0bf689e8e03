package player

import (
	"golang.org/x/exp/rand"

	"github.com/corvidian/alphastep/game"
)

// RandomPlayer picks uniformly among the legal actions. It never produces
// an Evaluation.
type RandomPlayer[G game.State[G, A, C], A game.Action, C any] struct {
	Rand *rand.Rand
}

// NewRandomPlayer seeds a RandomPlayer from seed.
func NewRandomPlayer[G game.State[G, A, C], A game.Action, C any](seed uint64) *RandomPlayer[G, A, C] {
	return &RandomPlayer[G, A, C]{Rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer[G, A, C]) Name() string { return "Random" }

func (p *RandomPlayer[G, A, C]) ChooseAction(g G, turn game.Turn, turnNumber uint32) Choice[A] {
	actions := g.LegalActions()
	if len(actions) == 0 {
		panic("player: ChooseAction called with no legal actions available")
	}
	return Choice[A]{Action: actions[p.Rand.Intn(len(actions))]}
}
