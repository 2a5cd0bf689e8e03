package selfplay

import (
	"encoding/json"
	"io"

	"github.com/corvidian/alphastep/encode"
	"github.com/corvidian/alphastep/game"
)

// Sample is one training example: a board encoding, the search policy over
// the action space (zero for actions that were never visited), and the
// value target for the side to move at that state.
type Sample struct {
	State  []float32 `json:"state"`
	Policy []float32 `json:"policy"`
	Value  float32   `json:"value"`
}

// SampleConsumer receives completed Samples. An NDJSON file writer
// (NewJSONSampleConsumer) is the usual choice.
type SampleConsumer interface {
	Consume(sample Sample)
}

// pendingSample is a PositionEvaluated capture awaiting its value, which
// isn't known until the game it belongs to finishes. Turn records the side
// to move at the moment this sample was captured, which is how its value is
// resolved: see SampleSink.Emit's handling of GameFinished below.
type pendingSample struct {
	state  []float32
	policy []float32
	turn   game.Turn
}

// SampleSink turns a Runner's event stream into training Samples, deferring
// to its embedded SampleConsumer to do something with the finished samples
// (write them to a file, buffer them in memory, ...).
//
// Every pendingSample remembers the turn active when it was captured, and
// GameFinished resolves each sample's value against its own captured turn
// rather than applying one value to the whole game's buffer. This is a
// deliberate departure from how the original engine's sample sinks label a
// game's samples: there, one value is computed once from the terminal
// position's outcome and turn, then stamped onto every buffered sample for
// that game regardless of which turn captured it. The two schemes give the
// same label only to samples captured on the terminal position's side; in a
// game where the turn passes on every ply, such as tic-tac-toe, the samples
// captured on the other side's turn get the opposite sign here.
type SampleSink[G game.State[G, A, C], A game.Action, C any] struct {
	StateEncoder  encode.StateEncoder[G]
	ActionEncoder encode.ActionEncoder[A]
	UseSymmetries bool
	Consumer      SampleConsumer

	pending []pendingSample
}

func NewSampleSink[G game.State[G, A, C], A game.Action, C any](
	stateEnc encode.StateEncoder[G],
	actionEnc encode.ActionEncoder[A],
	useSymmetries bool,
	consumer SampleConsumer,
) *SampleSink[G, A, C] {
	return &SampleSink[G, A, C]{
		StateEncoder:  stateEnc,
		ActionEncoder: actionEnc,
		UseSymmetries: useSymmetries,
		Consumer:      consumer,
	}
}

func (s *SampleSink[G, A, C]) Emit(event RunnerEvent[G, A]) {
	switch event.Kind {
	case GameStarted:
		s.pending = s.pending[:0]

	case PositionEvaluated:
		s.capture(event)

	case GameFinished:
		s.flush(event)
	}
}

func (s *SampleSink[G, A, C]) capture(event RunnerEvent[G, A]) {
	g := event.Context.Game
	turn := event.Context.Turn

	symmetries := 1
	symmetric, ok := any(g).(game.Symmetric[A, G])
	if ok && s.UseSymmetries {
		symmetries = symmetric.Symmetries()
	}

	for i := 0; i < symmetries; i++ {
		view := g
		policySource := event.Evaluation.Policy
		if i > 0 {
			view = symmetric.Transform(i)
		}

		policy := make([]float32, s.ActionEncoder.ActionCount())
		for _, item := range policySource {
			action := item.Action
			if i > 0 {
				action = symmetric.TransformAction(action, i)
			}
			policy[s.ActionEncoder.Encode(action)] = item.Prior
		}

		s.pending = append(s.pending, pendingSample{
			state:  s.StateEncoder.Encode(view),
			policy: policy,
			turn:   turn,
		})
	}
}

func (s *SampleSink[G, A, C]) flush(event RunnerEvent[G, A]) {
	terminalTurn := event.Context.Turn
	outcome := event.Outcome

	for _, p := range s.pending {
		value := valueFor(outcome, terminalTurn, p.turn)
		s.Consumer.Consume(Sample{State: p.state, Policy: p.policy, Value: value})
	}
	s.pending = s.pending[:0]
}

// valueFor resolves outcome, which is relative to terminalTurn, into the
// value target for a sample captured while it was perspectiveTurn's move: if
// the two turns match it carries over unchanged, otherwise it flips (a win
// for one side is a loss for the other; a draw is unaffected).
func valueFor(outcome game.Outcome, terminalTurn, perspectiveTurn game.Turn) float32 {
	v := outcomeValue(outcome)
	if terminalTurn != perspectiveTurn {
		v = -v
	}
	return v
}

func outcomeValue(o game.Outcome) float32 {
	switch o {
	case game.Win:
		return 1
	case game.Loss:
		return -1
	default:
		return 0
	}
}

// JSONSampleConsumer writes one JSON object per line (NDJSON), matching the
// original engine's file-backed sample sink.
type JSONSampleConsumer struct {
	enc *json.Encoder
	err error
}

func NewJSONSampleConsumer(w io.Writer) *JSONSampleConsumer {
	return &JSONSampleConsumer{enc: json.NewEncoder(w)}
}

func (c *JSONSampleConsumer) Consume(sample Sample) {
	if c.err != nil {
		return
	}
	c.err = c.enc.Encode(sample)
}

// Err returns the first error encountered while writing, if any.
func (c *JSONSampleConsumer) Err() error {
	return c.err
}
