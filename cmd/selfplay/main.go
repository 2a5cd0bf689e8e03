// Command selfplay drives self-play games of tic-tac-toe between two MCTS
// players and prints aggregate win/loss/draw statistics; when -output is
// set it also writes labelled training samples to an NDJSON file.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/corvidian/alphastep/games/tictactoe"
	"github.com/corvidian/alphastep/mcts"
	"github.com/corvidian/alphastep/player"
	"github.com/corvidian/alphastep/predictor"
	"github.com/corvidian/alphastep/selfplay"
)

func main() {
	games := flag.Int("games", 10, "number of self-play games to run")
	simulations := flag.Int("simulations", 200, "MCTS simulations per move")
	maxTurns := flag.Int("max-turns", 200, "per-game turn cap before forcing a draw")
	useSymmetries := flag.Bool("use-symmetries", false, "enable symmetry augmentation in the sample sink")
	output := flag.String("output", "", "newline-delimited JSON sample output path (empty = print statistics only)")
	predictorKind := flag.String("predictor", "random", `"random" (untrained Gorgonia network) or "rollout" (random-rollout evaluator)`)
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed for the run")

	flag.Parse()

	if *games <= 0 {
		log.Fatal("selfplay: -games must be positive")
	}
	if *simulations <= 0 {
		log.Fatal("selfplay: -simulations must be positive")
	}

	newGame := func() *tictactoe.TicTacToe { return tictactoe.New() }

	player1, closeFn := buildPlayer(*predictorKind, *simulations, uint64(*seed))
	player2, closeFn2 := buildPlayer(*predictorKind, *simulations, uint64(*seed)+1)
	defer closeFn()
	defer closeFn2()

	runner := &selfplay.Runner[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint]{
		Games:   uint32(*games),
		Player1: player1,
		Player2: player2,
		NewGame: newGame,
	}
	runner.WithMaxTurns(uint32(*maxTurns))

	statistics := selfplay.NewStatisticsSink[*tictactoe.TicTacToe, tictactoe.Action]()

	if *output == "" {
		runner.Sink = statistics
	} else {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("selfplay: opening -output file: %v", err)
		}
		defer f.Close()

		consumer := selfplay.NewJSONSampleConsumer(f)
		sampleSink := selfplay.NewSampleSink[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
			tictactoe.StateEncoder{}, tictactoe.ActionEncoder{}, *useSymmetries, consumer,
		)
		runner.Sink = selfplay.MultiSink[*tictactoe.TicTacToe, tictactoe.Action]{sampleSink, statistics}

		defer func() {
			if err := consumer.Err(); err != nil {
				log.Fatalf("selfplay: writing samples: %v", err)
			}
		}()
	}

	runner.Run()

	log.Printf("player1 wins: %d, player2 wins: %d, draws: %d",
		statistics.Player1Wins, statistics.Player2Wins, statistics.Draws)
}

func buildPlayer(kind string, simulations int, seed uint64) (player.Player[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint], func()) {
	switch kind {
	case "rollout":
		return player.NewClassic[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](simulations, seed), func() {}

	case "random":
		conf := predictor.Config{
			InputSize:   2 * tictactoe.ActionCount,
			Hidden:      32,
			ActionSpace: tictactoe.ActionCount,
		}
		net, err := predictor.NewGorgonia(conf)
		if err != nil {
			log.Fatalf("selfplay: building reference predictor: %v", err)
		}
		p := player.NewNeuralNetwork[*tictactoe.TicTacToe, tictactoe.Action, tictactoe.Checkpoint](
			simulations, seed, net, tictactoe.StateEncoder{}, tictactoe.ActionEncoder{},
		).WithDirichletNoise(mcts.DefaultDirichletNoise()).
			WithTemperatureSchedule(mcts.ConstantTemperature(1))
		return p, func() { _ = net.Close() }

	default:
		log.Fatalf("selfplay: unknown -predictor %q, want \"random\" or \"rollout\"", kind)
		return nil, nil
	}
}
