package mcts

import "golang.org/x/exp/rand"

// Expander decides, for a leaf being expanded, which of its remaining
// (unexplored) actions get turned into child nodes this visit. It never
// touches the arena or the game directly: for each action it chooses to
// expand, it calls newChild once with that action's prior (looked up from
// the evaluator's policy) and gets back the updated remaining slice.
type Expander[A comparable] interface {
	Expand(remaining []A, policy []PolicyItem[A], newChild func(action A, prior float32)) []A
}

func priorFor[A comparable](policy []PolicyItem[A], action A) float32 {
	for _, item := range policy {
		if item.Action == action {
			return item.Prior
		}
	}
	return 0
}

// CompleteExpander expands every remaining action in one visit, matching
// the teacher's habit of materializing a node's full child set up front
// (mcts/search.go's expandAndBackward does the same for every legal move).
// This is the right choice when the evaluator already gives a confident
// policy, e.g. a trained predictor.
type CompleteExpander[A comparable] struct{}

func (CompleteExpander[A]) Expand(remaining []A, policy []PolicyItem[A], newChild func(A, float32)) []A {
	for _, action := range remaining {
		newChild(action, priorFor(policy, action))
	}
	return remaining[:0]
}

// RandomExpander expands exactly one remaining action per visit, chosen
// uniformly at random, and leaves the rest unexplored for a future visit.
// This progressive-widening behavior is the right choice when the
// evaluator's policy is cheap but noisy, e.g. rollouts, since it avoids
// spending a full rollout budget on moves that may never be revisited.
type RandomExpander[A comparable] struct {
	Rand *rand.Rand
}

func (e RandomExpander[A]) Expand(remaining []A, policy []PolicyItem[A], newChild func(A, float32)) []A {
	if len(remaining) == 0 {
		return remaining
	}
	i := e.Rand.Intn(len(remaining))
	action := remaining[i]
	newChild(action, priorFor(policy, action))

	last := len(remaining) - 1
	remaining[i] = remaining[last]
	return remaining[:last]
}
