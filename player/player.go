// Package player implements the three kinds of opponent the self-play
// runner can pit against each other or against itself: a uniformly random
// mover, a classic alpha-beta minimax searcher, and an MCTS-backed player
// (either the rollout-driven "classic" preset or a trained-predictor
// preset).
package player

import (
	"github.com/corvidian/alphastep/game"
	"github.com/corvidian/alphastep/mcts"
)

// Choice is what a Player reports for one turn: the action it picked, and
// optionally the Evaluation it searched with (nil for players, like
// RandomPlayer and MinimaxPlayer, that never produce a policy/value
// estimate). The self-play sample sink needs the Evaluation to build
// training samples; observers that only care about the chosen move can
// ignore it.
type Choice[A game.Action] struct {
	Action     A
	Evaluation *mcts.Evaluation[A]
}

// Player chooses an action for the side to move at g. turn identifies which
// absolute side (PlayerOne/PlayerTwo) is choosing, for players whose
// internal bookkeeping needs it; turnNumber is the ply count so far in the
// surrounding game, which temperature-scheduled players need.
type Player[G game.State[G, A, C], A game.Action, C any] interface {
	Name() string
	ChooseAction(g G, turn game.Turn, turnNumber uint32) Choice[A]
}
