package selfplay

import (
	"fmt"
	"io"

	"github.com/corvidian/alphastep/game"
)

// NullSink discards every event. Useful as a Runner.Sink, or as a MultiSink
// entry, when a run's events need no observer.
type NullSink[G any, A game.Action] struct{}

func (NullSink[G, A]) Emit(RunnerEvent[G, A]) {}

// StatisticsSink tallies wins for Player1 and Player2 across a run. A GameFinished
// event's Outcome is reported relative to the side to move at the terminal
// position (event.Context.Turn), so a Win for PlayerTwo counts as a
// Player2Wins, and a Loss for PlayerTwo counts as a Player1Wins.
type StatisticsSink[G any, A game.Action] struct {
	Player1Wins uint64
	Player2Wins uint64
	Draws       uint64
}

func NewStatisticsSink[G any, A game.Action]() *StatisticsSink[G, A] {
	return &StatisticsSink[G, A]{}
}

func (s *StatisticsSink[G, A]) Emit(event RunnerEvent[G, A]) {
	if event.Kind != GameFinished {
		return
	}
	switch {
	case event.Outcome == game.Win && event.Context.Turn == game.PlayerOne:
		s.Player1Wins++
	case event.Outcome == game.Win && event.Context.Turn == game.PlayerTwo:
		s.Player2Wins++
	case event.Outcome == game.Loss && event.Context.Turn == game.PlayerOne:
		s.Player2Wins++
	case event.Outcome == game.Loss && event.Context.Turn == game.PlayerTwo:
		s.Player1Wins++
	case event.Outcome == game.Draw:
		s.Draws++
	}
}

// StdoutSink renders a human-readable transcript of a run to w, matching the
// original engine's console self-play output.
type StdoutSink[G interface{ Display(game.Turn) string }, A game.Action] struct {
	W io.Writer
}

func NewStdoutSink[G interface{ Display(game.Turn) string }, A game.Action](w io.Writer) *StdoutSink[G, A] {
	return &StdoutSink[G, A]{W: w}
}

func (s *StdoutSink[G, A]) Emit(event RunnerEvent[G, A]) {
	switch event.Kind {
	case GameStarted:
		fmt.Fprintf(s.W, "=== Game #%d ===\n\n", event.Context.GameNumber+1)
	case TurnStarted:
		fmt.Fprintf(s.W, "--- Turn #%d ---\n\n", event.Context.TurnNumber+1)
	case ActionApplied:
		fmt.Fprintf(s.W, "%s %s\n\n", event.Context.Turn, event.Action)
		fmt.Fprintf(s.W, "%s\n", event.Context.Game.Display(event.Context.Turn))
	case GameFinished:
		fmt.Fprintf(s.W, "%s\n", event.Outcome.Display(event.Context.Turn))
	}
}

// MultiSink fans a single event stream out to every sink in order, so a
// Runner can feed both a SampleSink and a StatisticsSink (or StdoutSink) in
// the same run.
type MultiSink[G any, A game.Action] []Sink[G, A]

func (m MultiSink[G, A]) Emit(event RunnerEvent[G, A]) {
	for _, sink := range m {
		sink.Emit(event)
	}
}
