package selfplay

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidian/alphastep/game"
	"github.com/corvidian/alphastep/games/tictactoe"
	"github.com/corvidian/alphastep/mcts"
)

type bufferingConsumer struct {
	samples []Sample
}

func (c *bufferingConsumer) Consume(sample Sample) {
	c.samples = append(c.samples, sample)
}

func evaluatedEvent(g *tictactoe.TicTacToe, turn game.Turn, policy []mcts.PolicyItem[tictactoe.Action]) RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action] {
	eval := mcts.Evaluation[tictactoe.Action]{Policy: policy, Value: 0}
	return RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:       PositionEvaluated,
		Context:    &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: turn},
		Evaluation: &eval,
	}
}

func TestSampleSink_OneSamplePerPositionEvaluated(t *testing.T) {
	consumer := &bufferingConsumer{}
	sink := NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
		tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, false, consumer,
	)

	g := tictactoe.New()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	sink.Emit(evaluatedEvent(g, game.PlayerOne, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 0}, Prior: 1}}))
	sink.Emit(evaluatedEvent(g, game.PlayerTwo, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 1}, Prior: 1}}))
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:    GameFinished,
		Context: &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: game.PlayerTwo},
		Outcome: game.Win,
	})

	require.Len(t, consumer.samples, 2)
}

func TestSampleSink_PerPlyValueMatchesCapturingTurn(t *testing.T) {
	consumer := &bufferingConsumer{}
	sink := NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
		tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, false, consumer,
	)

	g := tictactoe.New()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	// Captured while PlayerOne was to move...
	sink.Emit(evaluatedEvent(g, game.PlayerOne, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 0}, Prior: 1}}))
	// ...and while PlayerTwo was to move.
	sink.Emit(evaluatedEvent(g, game.PlayerTwo, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 1}, Prior: 1}}))

	// The game ends with PlayerTwo to move and a Win for PlayerTwo.
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:    GameFinished,
		Context: &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: game.PlayerTwo},
		Outcome: game.Win,
	})

	require.Len(t, consumer.samples, 2)
	// The sample captured at PlayerTwo's turn shares the terminal turn: value carries over.
	assert.Equal(t, float32(1), consumer.samples[1].Value)
	// The sample captured at PlayerOne's turn is the other side: value flips.
	assert.Equal(t, float32(-1), consumer.samples[0].Value)
}

func TestSampleSink_DrawIsZeroRegardlessOfCapturingTurn(t *testing.T) {
	consumer := &bufferingConsumer{}
	sink := NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
		tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, false, consumer,
	)

	g := tictactoe.New()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	sink.Emit(evaluatedEvent(g, game.PlayerOne, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 0}, Prior: 1}}))
	sink.Emit(evaluatedEvent(g, game.PlayerTwo, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 1}, Prior: 1}}))
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:    GameFinished,
		Context: &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: game.PlayerTwo},
		Outcome: game.Draw,
	})

	for _, s := range consumer.samples {
		assert.Zero(t, s.Value)
	}
}

func TestSampleSink_GameStartedClearsStalePendingSamples(t *testing.T) {
	consumer := &bufferingConsumer{}
	sink := NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
		tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, false, consumer,
	)

	g := tictactoe.New()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	sink.Emit(evaluatedEvent(g, game.PlayerOne, []mcts.PolicyItem[tictactoe.Action]{{Action: tictactoe.Action{Index: 0}, Prior: 1}}))

	// A new game starts before this one's GameFinished ever arrives.
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:    GameFinished,
		Context: &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: game.PlayerOne},
		Outcome: game.Win,
	})

	assert.Empty(t, consumer.samples)
}

func TestSampleSink_PolicyVectorIsDenseOverActionSpace(t *testing.T) {
	consumer := &bufferingConsumer{}
	sink := NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
		tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, false, consumer,
	)

	g := tictactoe.New()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted})
	sink.Emit(evaluatedEvent(g, game.PlayerOne, []mcts.PolicyItem[tictactoe.Action]{
		{Action: tictactoe.Action{Index: 3}, Prior: 0.75},
	}))
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind:    GameFinished,
		Context: &RunnerEventContext[*tictactoe.TicTacToe]{Game: g, Turn: game.PlayerOne},
		Outcome: game.Draw,
	})

	require.Len(t, consumer.samples, 1)
	policy := consumer.samples[0].Policy
	require.Len(t, policy, tictactoe.ActionCount)
	assert.Equal(t, float32(0.75), policy[3])
	for i, p := range policy {
		if i != 3 {
			assert.Zero(t, p)
		}
	}
}

func TestJSONSampleConsumer_WritesOneLinePerSample(t *testing.T) {
	var buf bytes.Buffer
	consumer := NewJSONSampleConsumer(&buf)

	consumer.Consume(Sample{State: []float32{1, 0}, Policy: []float32{0, 1}, Value: 1})
	consumer.Consume(Sample{State: []float32{0, 1}, Policy: []float32{1, 0}, Value: -1})

	require.NoError(t, consumer.Err())

	decoder := json.NewDecoder(&buf)
	var got []Sample
	for {
		var s Sample
		if err := decoder.Decode(&s); err != nil {
			break
		}
		got = append(got, s)
	}
	require.Len(t, got, 2)
	assert.Equal(t, float32(1), got[0].Value)
	assert.Equal(t, float32(-1), got[1].Value)
}
