// Package mcts implements the engine's search: a single-threaded,
// arena-indexed Monte Carlo tree search generalized over any game
// implementing game.State. A fresh Tree is built for each Search call; a
// simulation selects down to a leaf by scoring children with a Scorer,
// evaluates the leaf with an Evaluator, expands it with an Expander, and
// backpropagates the resulting value up the path it took.
//
// The teacher's mcts package ran many simulations concurrently across a
// worker pool, guarding its arena with locks (see its searchState and
// Node.lock). This package never does: the spec calls for a single
// simulation loop per Search call, so the arena, the Scorer/Expander calls,
// and the one long-lived game value being mutated along each simulation's
// path carry no synchronization at all.
package mcts

import (
	"errors"

	"github.com/chewxy/math32"
	"golang.org/x/exp/rand"

	"github.com/corvidian/alphastep/game"
)

var errNoLegalActions = errors.New("mcts: Search called on a position with no legal actions")

var errNoSimulations = errors.New("mcts: Search called with a non-positive simulation count")

// Config bundles an Mcts's pluggable strategies and its simulation budget.
// Scorer/Expander/Evaluator correspond directly to the scorer, evaluator and
// expander components of the design; Noise and Temperature are optional
// (Noise nil disables root exploration noise; the zero Temperature is
// always-deterministic argmax selection).
type Config[G game.State[G, A, C], A game.Action, C any] struct {
	Simulations int
	Scorer      Scorer[A]
	Expander    Expander[A]
	Evaluator   Evaluator[G, A, C]
	Noise       *DirichletNoise
	Temperature TemperatureSchedule
	Rand        *rand.Rand
}

// Mcts drives one family of searches sharing a Config. It holds no
// per-search state; Search builds a fresh Tree every call.
type Mcts[G game.State[G, A, C], A game.Action, C any] struct {
	Config[G, A, C]
}

// New builds an Mcts from conf. conf.Rand must be non-nil; callers seed it
// themselves so a whole self-play run can be made reproducible from one
// top-level seed.
func New[G game.State[G, A, C], A game.Action, C any](conf Config[G, A, C]) *Mcts[G, A, C] {
	return &Mcts[G, A, C]{Config: conf}
}

// SearchResult is what one Search call reports: the action chosen by
// temperature-sampling the root's visit counts, the full visit-count
// distribution over the root's children (used as the training policy
// target), and the root's mean backpropagated value.
type SearchResult[A game.Action] struct {
	Action A
	Policy []PolicyItem[A]
	Value  float32
}

// Search runs m.Simulations simulations from g (left unmodified on return,
// modulo the O(1) checkpoint/restore cycling) and reports the chosen
// action. turn is the side to move at g; turnNumber is the ply count so far
// in the surrounding game, used to look up the temperature. Search returns
// an error, and no result, when g has no legal actions or when
// m.Simulations is not positive.
func (m *Mcts[G, A, C]) Search(g G, turn game.Turn, turnNumber uint32) (SearchResult[A], error) {
	legal := g.LegalActions()
	if len(legal) == 0 {
		return SearchResult[A]{}, errNoLegalActions
	}
	if m.Simulations <= 0 {
		return SearchResult[A]{}, errNoSimulations
	}

	tree := newTree[G, A, C](turn, legal)
	checkpoint := g.CreateCheckpoint()

	for i := 0; i < m.Simulations; i++ {
		leaf := m.selectLeaf(tree, g)
		value, err := m.expandAndEvaluate(tree, leaf, g)
		if err != nil {
			g.RestoreCheckpoint(checkpoint)
			return SearchResult[A]{}, err
		}
		m.backpropagate(tree, leaf, value)
		g.RestoreCheckpoint(checkpoint)
	}

	return m.finalResult(tree, turnNumber)
}

// selectLeaf walks from the root down through selection candidates,
// applying each chosen child's action to g as it goes, and returns the
// index it bottoms out at (either a true leaf awaiting expansion, or a
// terminal node).
func (m *Mcts[G, A, C]) selectLeaf(tree *Tree[G, A, C], g G) index {
	cur := tree.Root()
	for tree.node(cur).IsSelectionCandidate() {
		children := tree.node(cur).children
		best := children[0]
		bestScore := math32.Inf(-1)
		parentVisits := tree.node(cur).Visits
		parentTurn := tree.node(cur).turn
		for _, c := range children {
			score := m.Scorer.Score(parentVisits, parentTurn, tree.node(c))
			if score > bestScore {
				bestScore = score
				best = c
			}
		}

		action, _ := tree.node(best).Action()
		if g.Apply(action) {
			g.EndTurn()
		}
		cur = best
	}
	return cur
}

// expandAndEvaluate evaluates g (as mutated by selectLeaf, so it reflects
// leaf's position) and, if the position is not terminal, expands some or
// all of leaf's remaining unexplored actions into new children. It returns
// the value to backpropagate, from leaf's own perspective.
func (m *Mcts[G, A, C]) expandAndEvaluate(tree *Tree[G, A, C], leaf index, g G) (float32, error) {
	if outcome := g.Outcome(); outcome != game.InProgress {
		return outcomeValue(outcome), nil
	}

	if tree.node(leaf).UnexploredActions == nil {
		tree.node(leaf).UnexploredActions = g.LegalActions()
	}
	turn := tree.node(leaf).turn
	unexplored := tree.node(leaf).UnexploredActions

	eval, err := m.Evaluator.Evaluate(g, unexplored, turn)
	if err != nil {
		return 0, err
	}

	if m.Noise != nil && leaf == tree.Root() && len(eval.Policy) >= 2 {
		mixDirichletNoise(*m.Noise, eval.Policy, m.Rand)
	}

	// Expand may call tree.addChild, which can append-reallocate the arena's
	// backing slice; no *Node pointer obtained before this call may be read
	// or written afterward. leaf itself stays valid since it is an index,
	// not a pointer.
	checkpoint := g.CreateCheckpoint()
	remaining := m.Expander.Expand(unexplored, eval.Policy, func(action A, prior float32) {
		childTurn := turn
		if g.Apply(action) {
			g.EndTurn()
			childTurn = turn.Advance()
		}
		g.RestoreCheckpoint(checkpoint)
		tree.addChild(leaf, action, childTurn, nil, prior)
	})
	tree.node(leaf).UnexploredActions = remaining

	return eval.Value, nil
}

// backpropagate adds value to every node on the path from leaf to the root.
// value starts out from the perspective of the side to move at leaf; at each
// step up, it is negated only if the node being updated has a different
// turn than the node one step closer to leaf, since Apply allows multi-step
// plies (turnComplete false) where a child shares its parent's turn and no
// sign flip is warranted.
func (m *Mcts[G, A, C]) backpropagate(tree *Tree[G, A, C], leaf index, value float32) {
	path := tree.path(leaf)
	childTurn := tree.node(leaf).turn
	for i := len(path) - 1; i >= 0; i-- {
		n := tree.node(path[i])
		if n.turn != childTurn {
			value = -value
		}
		n.Visits++
		n.TotalValue += value
		childTurn = n.turn
	}
}

// finalResult reads off the root's visit-count policy and samples the final
// action according to the configured temperature schedule.
func (m *Mcts[G, A, C]) finalResult(tree *Tree[G, A, C], turnNumber uint32) (SearchResult[A], error) {
	root := tree.RootNode()
	children := root.Children()

	visits := make([]uint32, len(children))
	policy := make([]PolicyItem[A], len(children))
	var totalVisits float32
	for i, c := range children {
		v := tree.node(c).Visits
		visits[i] = v
		totalVisits += float32(v)
	}
	for i, c := range children {
		action, _ := tree.node(c).Action()
		var prior float32
		if totalVisits > 0 {
			prior = float32(visits[i]) / totalVisits
		}
		policy[i] = PolicyItem[A]{Action: action, Prior: prior}
	}

	temperature := m.Temperature.GetTemperature(turnNumber)
	chosen := sampleByVisits(visits, temperature, m.Rand.Float32())
	action, _ := tree.node(children[chosen]).Action()

	return SearchResult[A]{
		Action: action,
		Policy: policy,
		Value:  root.exploitation(),
	}, nil
}
