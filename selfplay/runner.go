// Package selfplay drives games to completion between two Players,
// emitting a stream of RunnerEvents an observer can turn into statistics,
// human-readable output, or training samples (see sample.go).
package selfplay

import (
	"github.com/corvidian/alphastep/game"
	"github.com/corvidian/alphastep/mcts"
	"github.com/corvidian/alphastep/player"
)

// RunnerEventKind tags what a RunnerEvent carries. Every kind except
// RunnerStarted/RunnerFinished carries a Context.
type RunnerEventKind uint8

const (
	RunnerStarted RunnerEventKind = iota
	GameStarted
	TurnStarted
	PositionEvaluated
	ActionApplied
	TurnFinished
	GameFinished
	RunnerFinished
)

func (k RunnerEventKind) String() string {
	switch k {
	case RunnerStarted:
		return "RunnerStarted"
	case GameStarted:
		return "GameStarted"
	case TurnStarted:
		return "TurnStarted"
	case PositionEvaluated:
		return "PositionEvaluated"
	case ActionApplied:
		return "ActionApplied"
	case TurnFinished:
		return "TurnFinished"
	case GameFinished:
		return "GameFinished"
	case RunnerFinished:
		return "RunnerFinished"
	default:
		return "UNKNOWN"
	}
}

// RunnerEventContext is the position the event occurred at: which game in
// the run, a snapshot of the game itself, and whose turn it is/was.
type RunnerEventContext[G any] struct {
	GameNumber uint32
	Game       G
	TurnNumber uint32
	Turn       game.Turn
}

// RunnerEvent is one step of the run. Only the fields relevant to Kind are
// populated: Evaluation for PositionEvaluated, Action for ActionApplied,
// Outcome for GameFinished. Context is nil only for RunnerStarted/
// RunnerFinished.
type RunnerEvent[G any, A game.Action] struct {
	Kind       RunnerEventKind
	Context    *RunnerEventContext[G]
	Evaluation *mcts.Evaluation[A]
	Action     A
	Outcome    game.Outcome
}

// Sink receives the event stream a Runner produces.
type Sink[G any, A game.Action] interface {
	Emit(event RunnerEvent[G, A])
}

// Runner plays Games complete games between Player1 (always the
// game.PlayerOne side) and Player2 (always game.PlayerTwo), reporting every
// step to Sink. PlayerOne moves first in even-numbered games and PlayerTwo
// in odd-numbered ones, so neither player has a persistent first-move
// advantage over a run.
type Runner[G game.State[G, A, C], A game.Action, C any] struct {
	Games    uint32
	MaxTurns *uint32

	Player1 player.Player[G, A, C]
	Player2 player.Player[G, A, C]

	Sink Sink[G, A]

	// NewGame constructs a fresh starting position for each game. Go's
	// generics have no way to require "G has a zero-arg constructor", so the
	// caller supplies one directly, e.g. func() *tictactoe.TicTacToe {
	// return tictactoe.New() }.
	NewGame func() G
}

// WithMaxTurns forces a Draw once turnNumber exceeds max, guarding against
// games that never terminate on their own.
func (r *Runner[G, A, C]) WithMaxTurns(max uint32) *Runner[G, A, C] {
	r.MaxTurns = &max
	return r
}

// Run plays every game in the run, in order.
func (r *Runner[G, A, C]) Run() {
	r.Sink.Emit(RunnerEvent[G, A]{Kind: RunnerStarted})

	for gameNumber := uint32(0); gameNumber < r.Games; gameNumber++ {
		r.runOne(gameNumber)
	}

	r.Sink.Emit(RunnerEvent[G, A]{Kind: RunnerFinished})
}

func (r *Runner[G, A, C]) runOne(gameNumber uint32) {
	g := r.NewGame()
	turnNumber := uint32(0)
	turn := game.PlayerOne
	if gameNumber%2 != 0 {
		turn = game.PlayerTwo
	}

	ctx := func() *RunnerEventContext[G] {
		return &RunnerEventContext[G]{GameNumber: gameNumber, Game: g.Clone(), TurnNumber: turnNumber, Turn: turn}
	}

	r.Sink.Emit(RunnerEvent[G, A]{Kind: GameStarted, Context: ctx()})
	r.Sink.Emit(RunnerEvent[G, A]{Kind: TurnStarted, Context: ctx()})

	for {
		p := r.Player1
		if turn == game.PlayerTwo {
			p = r.Player2
		}
		choice := p.ChooseAction(g, turn, turnNumber)

		if choice.Evaluation != nil {
			r.Sink.Emit(RunnerEvent[G, A]{Kind: PositionEvaluated, Context: ctx(), Evaluation: choice.Evaluation})
		}

		turnComplete := g.Apply(choice.Action)
		r.Sink.Emit(RunnerEvent[G, A]{Kind: ActionApplied, Context: ctx(), Action: choice.Action})

		if r.MaxTurns != nil && turnNumber > *r.MaxTurns {
			r.Sink.Emit(RunnerEvent[G, A]{Kind: GameFinished, Context: ctx(), Outcome: game.Draw})
			return
		}

		if outcome := g.Outcome(); outcome != game.InProgress {
			r.Sink.Emit(RunnerEvent[G, A]{Kind: GameFinished, Context: ctx(), Outcome: outcome})
			return
		}

		if turnComplete {
			r.Sink.Emit(RunnerEvent[G, A]{Kind: TurnFinished, Context: ctx()})

			g.EndTurn()
			turn = turn.Advance()
			turnNumber++

			r.Sink.Emit(RunnerEvent[G, A]{Kind: TurnStarted, Context: ctx()})
		}
	}
}
