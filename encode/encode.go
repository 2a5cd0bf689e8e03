// Package encode defines the two encoder capabilities the predictor-backed
// evaluator and the self-play sample sink rely on: turning a game state into
// a dense tensor, and turning an action into (and back out of) a stable
// integer id.
package encode

import "github.com/corvidian/alphastep/game"

// StateEncoder maps a game state to a dense float32 tensor suitable for
// feeding a predictor. Shape is the tensor's dimensions; the flattened
// length returned by Encode must equal the product of Shape.
type StateEncoder[S any] interface {
	Shape() []int
	Encode(state S) []float32
}

// ActionEncoder bijectively maps a game's actions to integer ids in
// [0, ActionCount()). Decode(Encode(a)) must be the identity on legal
// actions.
type ActionEncoder[A game.Action] interface {
	ActionCount() int
	Encode(action A) int
	Decode(id int) A
}
