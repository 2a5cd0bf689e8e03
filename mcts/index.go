package mcts

// index addresses a Node within a Tree's arena. It plays the same role the
// teacher's Naughty type played in its concurrent arena: a small integer
// handle instead of a pointer, so the arena can grow by appending without
// invalidating existing handles.
type index int32

// noIndex is the sentinel for "no such node" (the root's parent, an
// unset child slot).
const noIndex index = -1

func (i index) isValid() bool { return i >= 0 }
