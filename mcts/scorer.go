package mcts

import (
	"github.com/chewxy/math32"

	"github.com/corvidian/alphastep/game"
)

// Scorer ranks a parent's children during Select. Score is always computed
// from the parent's point of view: child.exploitation() is reported from
// the perspective of the side to move AT the child, which is the same side
// as parentTurn only when the ply leading to the child never handed over
// the move (a multi-step ply); every Scorer folds that sign correction in
// via child.exploitationFrom(parentTurn) rather than assuming strict
// alternation.
type Scorer[A comparable] interface {
	Score(parentVisits uint32, parentTurn game.Turn, child *Node[A]) float32
}

// UCB1Scorer is the classic multi-armed-bandit score, used by the
// rollout-backed "classic" MCTS preset (no learned prior).
type UCB1Scorer[A comparable] struct {
	// C is the exploration constant. The textbook value is sqrt(2).
	C float32
}

// NewUCB1Scorer returns a UCB1Scorer with the textbook exploration
// constant.
func NewUCB1Scorer[A comparable]() UCB1Scorer[A] {
	return UCB1Scorer[A]{C: math32.Sqrt(2)}
}

func (s UCB1Scorer[A]) Score(parentVisits uint32, parentTurn game.Turn, child *Node[A]) float32 {
	if child.Visits == 0 {
		return math32.Inf(1)
	}
	exploitation := child.exploitationFrom(parentTurn)
	exploration := s.C * math32.Sqrt(math32.Log(float32(parentVisits))/float32(child.Visits))
	return exploitation + exploration
}

// PUCTScorer is the AlphaZero-style score, weighting exploration by the
// learned prior instead of treating every child as equally worth probing.
type PUCTScorer[A comparable] struct {
	// C is c_puct. The teacher's dualnet/config.go default is 1.0.
	C float32
}

// NewPUCTScorer returns a PUCTScorer with the teacher's default c_puct.
func NewPUCTScorer[A comparable]() PUCTScorer[A] {
	return PUCTScorer[A]{C: 1.0}
}

func (s PUCTScorer[A]) Score(parentVisits uint32, parentTurn game.Turn, child *Node[A]) float32 {
	exploitation := child.exploitationFrom(parentTurn)
	exploration := s.C * child.Prior * math32.Sqrt(float32(parentVisits)) / (1 + float32(child.Visits))
	return exploitation + exploration
}
