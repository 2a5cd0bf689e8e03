package selfplay

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidian/alphastep/game"
	"github.com/corvidian/alphastep/games/tictactoe"
)

func ctxAt(turn game.Turn) *RunnerEventContext[*tictactoe.TicTacToe] {
	return &RunnerEventContext[*tictactoe.TicTacToe]{Game: tictactoe.New(), Turn: turn}
}

func TestStatisticsSink_WinForPlayerOneCountsAsPlayer1Win(t *testing.T) {
	sink := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind: GameFinished, Context: ctxAt(game.PlayerOne), Outcome: game.Win,
	})
	assert.EqualValues(t, 1, sink.Player1Wins)
	assert.Zero(t, sink.Player2Wins)
}

func TestStatisticsSink_LossForPlayerOneCountsAsPlayer2Win(t *testing.T) {
	sink := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind: GameFinished, Context: ctxAt(game.PlayerOne), Outcome: game.Loss,
	})
	assert.EqualValues(t, 1, sink.Player2Wins)
	assert.Zero(t, sink.Player1Wins)
}

func TestStatisticsSink_DrawCountsAsDraw(t *testing.T) {
	sink := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind: GameFinished, Context: ctxAt(game.PlayerOne), Outcome: game.Draw,
	})
	assert.EqualValues(t, 1, sink.Draws)
	assert.Zero(t, sink.Player1Wins)
	assert.Zero(t, sink.Player2Wins)
}

func TestStatisticsSink_IgnoresNonGameFinishedEvents(t *testing.T) {
	sink := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: TurnStarted, Context: ctxAt(game.PlayerOne)})
	assert.Zero(t, sink.Player1Wins)
	assert.Zero(t, sink.Player2Wins)
	assert.Zero(t, sink.Draws)
}

func TestStdoutSink_RendersGameAndTurnHeaders(t *testing.T) {
	var buf bytes.Buffer
	sink := NewStdoutSink[*tictactoe.TicTacToe, tictactoe.Action](&buf)

	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: GameStarted, Context: ctxAt(game.PlayerOne)})
	sink.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{Kind: TurnStarted, Context: ctxAt(game.PlayerOne)})

	out := buf.String()
	assert.True(t, strings.Contains(out, "Game #1"))
	assert.True(t, strings.Contains(out, "Turn #1"))
}

func TestMultiSink_FansOutToEverySink(t *testing.T) {
	a := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	b := NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()
	multi := MultiSink[*tictactoe.TicTacToe, tictactoe.Action]{a, b}

	multi.Emit(RunnerEvent[*tictactoe.TicTacToe, tictactoe.Action]{
		Kind: GameFinished, Context: ctxAt(game.PlayerOne), Outcome: game.Win,
	})

	assert.EqualValues(t, 1, a.Player1Wins)
	assert.EqualValues(t, 1, b.Player1Wins)
}
