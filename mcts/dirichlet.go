package mcts

import (
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// DirichletNoise configures root exploration noise: the root's prior over
// its legal actions is mixed with a Dirichlet(alpha) sample, weighted by
// epsilon, before the first simulation descends past it. This is the same
// mechanism the teacher's MCTS.New sets up (alpha fixed per action slot,
// drawn via gonum's distmv.Dirichlet seeded from x/exp/rand), except that
// here a fresh draw is mixed in each time a search expands its root, and
// only at the root, per AlphaZero's self-play exploration scheme: once per
// search with CompleteExpander, once per newly expanded root child with
// RandomExpander.
type DirichletNoise struct {
	Alpha   float64
	Epsilon float32
}

// DefaultDirichletNoise matches the original self-play CLI's
// DirichletNoise{alpha: 0.3, epsilon: 0.25}.
func DefaultDirichletNoise() DirichletNoise {
	return DirichletNoise{Alpha: 0.3, Epsilon: 0.25}
}

// sample draws one noise value per action slot. r seeds a fresh gonum
// distmv.Dirichlet source for this draw, the same way the teacher's
// MCTS.New seeds one from time.Now().UnixNano(); here the seed instead
// comes from the search's own *rand.Rand, so a whole self-play run stays
// reproducible from one top-level seed.
func (d DirichletNoise) sample(n int, r *distrand.Rand) []float64 {
	alpha := make([]float64, n)
	for i := range alpha {
		alpha[i] = d.Alpha
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(r.Uint64()))
	return dist.Rand(nil)
}

// mixDirichletNoise mixes noise into the root policy's priors, in place:
// prior = (1-epsilon)*prior + epsilon*noise. Applied to the evaluator's raw
// policy before expansion, so every child created from it (whether all at
// once by CompleteExpander or one at a time by RandomExpander) inherits a
// noised prior. A standalone generic function, since Go methods cannot
// carry their own type parameters.
func mixDirichletNoise[A comparable](d DirichletNoise, policy []PolicyItem[A], r *distrand.Rand) {
	noise := d.sample(len(policy), r)
	for i := range policy {
		policy[i].Prior = (1-d.Epsilon)*policy[i].Prior + d.Epsilon*float32(noise[i])
	}
}
