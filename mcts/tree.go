package mcts

import (
	"github.com/corvidian/alphastep/game"
)

// Tree is the arena backing one MCTS search. Unlike the teacher's MCTS type,
// which guarded a shared arena with a sync.RWMutex for a goroutine pool, Tree
// is single-threaded end to end (see the package doc in search.go) and so
// carries no locking at all: one Search call owns the arena outright for its
// whole duration.
type Tree[G game.State[G, A, C], A game.Action, C any] struct {
	nodes []Node[A]
	root  index
}

// newTree allocates a fresh arena with just a root node, to be expanded by
// the first simulation.
func newTree[G game.State[G, A, C], A game.Action, C any](turn game.Turn, legal []A) *Tree[G, A, C] {
	t := &Tree[G, A, C]{
		nodes: make([]Node[A], 0, 64),
	}
	t.root = t.alloc(newNode[A](noIndex, turn, append([]A(nil), legal...), 1))
	return t
}

// alloc appends n to the arena and returns its index. The arena only grows
// for the lifetime of a Tree; a fresh Tree is built for each Search call, so
// there is no freelist to manage (contrast the teacher's MCTS.alloc/free).
func (t *Tree[G, A, C]) alloc(n Node[A]) index {
	t.nodes = append(t.nodes, n)
	return index(len(t.nodes) - 1)
}

func (t *Tree[G, A, C]) node(i index) *Node[A] {
	return &t.nodes[i]
}

// Root returns the arena index of the search root.
func (t *Tree[G, A, C]) Root() index { return t.root }

// RootNode returns the root node.
func (t *Tree[G, A, C]) RootNode() *Node[A] { return t.node(t.root) }

// addChild allocates a new child of parent reached by playing action, and
// wires it into parent.children. turn is the side to move at the child.
func (t *Tree[G, A, C]) addChild(parent index, action A, turn game.Turn, unexplored []A, prior float32) index {
	child := t.alloc(newNode[A](parent, turn, unexplored, prior))
	t.node(child).setAction(action)
	p := t.node(parent)
	p.children = append(p.children, child)
	return child
}

// path walks from the root down to n, returning the chain of indices
// root-to-n inclusive. Used by backpropagation.
func (t *Tree[G, A, C]) path(n index) []index {
	var rev []index
	for cur := n; cur.isValid(); cur = t.node(cur).parent {
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
