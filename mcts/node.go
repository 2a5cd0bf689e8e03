package mcts

import "github.com/corvidian/alphastep/game"

// PolicyItem pairs an action with a prior weight. The weight is a
// non-negative score; whether it is a normalized probability or a raw
// visit-count weight depends on where it came from (see Evaluation and
// Mcts.Search's final action selection).
type PolicyItem[A game.Action] struct {
	Action A
	Prior  float32
}

// Evaluation is what a leaf evaluator reports for a position: a policy over
// legal actions and a scalar value. Value is from the perspective of the
// side to move at the evaluated position, in [-1, 1].
type Evaluation[A game.Action] struct {
	Policy []PolicyItem[A]
	Value  float32
}

// Node is one arena-allocated entry in a Tree. A node is a selection
// candidate (Select may descend through it) iff it has children and no
// unexplored actions remain.
type Node[A game.Action] struct {
	action  A
	hasMove bool // false only at the root, where there is no incoming action

	turn     game.Turn
	parent   index
	children []index

	// UnexploredActions holds actions not yet expanded into children; it is
	// drained by the random expander one at a time, or cleared in one shot
	// by the complete expander.
	UnexploredActions []A

	Visits     uint32
	TotalValue float32
	Prior      float32
}

func newNode[A game.Action](parent index, turn game.Turn, unexplored []A, prior float32) Node[A] {
	return Node[A]{
		parent:            parent,
		turn:              turn,
		UnexploredActions: unexplored,
		Prior:             prior,
	}
}

// Action returns the action that led from the parent to this node, and
// whether one exists (it does not at the root).
func (n *Node[A]) Action() (A, bool) {
	return n.action, n.hasMove
}

func (n *Node[A]) setAction(a A) {
	n.action = a
	n.hasMove = true
}

// Turn is the side to move at this node.
func (n *Node[A]) Turn() game.Turn { return n.turn }

// Children returns the arena indices of this node's children.
func (n *Node[A]) Children() []index { return n.children }

// IsSelectionCandidate reports whether Select may descend through this
// node: it must have children, and no unexplored actions left.
func (n *Node[A]) IsSelectionCandidate() bool {
	return len(n.children) > 0 && len(n.UnexploredActions) == 0
}

// IsLeaf reports whether this node has never been expanded.
func (n *Node[A]) IsLeaf() bool {
	return len(n.children) == 0
}

// exploitation is the mean backpropagated value at this node, from the
// perspective of the side to move AT this node.
func (n *Node[A]) exploitation() float32 {
	if n.Visits == 0 {
		return 0
	}
	return n.TotalValue / float32(n.Visits)
}

// exploitationFrom reports this node's exploitation value from the
// perspective of a party to move at parentTurn: unchanged if parentTurn
// matches this node's own turn (a multi-step ply that never handed the move
// to the other side), negated otherwise, which is the common case for a
// game that alternates every ply. Used by Scorer implementations, which
// only ever see a child and its parent's turn, never the parent node
// itself.
func (n *Node[A]) exploitationFrom(parentTurn game.Turn) float32 {
	e := n.exploitation()
	if n.turn != parentTurn {
		return -e
	}
	return e
}
