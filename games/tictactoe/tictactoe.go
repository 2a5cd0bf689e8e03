// Package tictactoe implements the one concrete game shipped with this
// engine. It is deliberately small, but exercises every capability in the
// game package: LegalActions/Apply/EndTurn/Outcome, checkpoint/restore, and
// the optional Symmetric capability via its 8-fold board symmetry group.
package tictactoe

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/corvidian/alphastep/game"
)

const boardSize = 3
const boardMask uint16 = (1 << 9) - 1

// threeInARowMasks enumerates every winning line on a 3x3 board, bit index
// i meaning square (i/3, i%3): three rows, three columns, two diagonals.
var threeInARowMasks = [8]uint16{
	0b000_000_111, // row 0
	0b000_111_000, // row 1
	0b111_000_000, // row 2
	0b001_001_001, // col 0
	0b010_010_010, // col 1
	0b100_100_100, // col 2
	0b100_010_001, // ↘ diagonal
	0b001_010_100, // ↙ diagonal
}

// TicTacToe tracks marks as two 9-bit boards, always from the perspective
// of the side to move: playerMarks is "my" marks, opponentMarks is the
// other side's. EndTurn swaps the two, so Outcome/LegalActions never need
// to know whose turn it "really" is.
type TicTacToe struct {
	playerMarks   uint16
	opponentMarks uint16
}

// Checkpoint is an O(1) value snapshot of a TicTacToe.
type Checkpoint struct {
	playerMarks   uint16
	opponentMarks uint16
}

// New returns an empty board.
func New() *TicTacToe {
	return &TicTacToe{}
}

func (t *TicTacToe) LegalActions() []Action {
	if t.Outcome() != game.InProgress {
		return nil
	}

	empty := ^(t.playerMarks | t.opponentMarks) & boardMask
	actions := make([]Action, 0, bits.OnesCount16(empty))
	for empty != 0 {
		lsb := empty & (-empty)
		index := uint8(bits.TrailingZeros16(lsb))
		actions = append(actions, Action{Index: index})
		empty ^= lsb
	}
	return actions
}

// Apply places a mark for the side to move. Tic-tac-toe has no multi-step
// plies, so this always completes the turn.
func (t *TicTacToe) Apply(action Action) bool {
	t.playerMarks |= 1 << action.Index
	return true
}

func (t *TicTacToe) EndTurn() {
	t.playerMarks, t.opponentMarks = t.opponentMarks, t.playerMarks
}

// Outcome checks the opponent's lines first: if the side that just moved
// (now "opponent" from the new perspective) completed one, this position is
// a Loss for the side now to move.
func (t *TicTacToe) Outcome() game.Outcome {
	for _, mask := range threeInARowMasks {
		if t.opponentMarks&mask == mask {
			return game.Loss
		}
	}
	for _, mask := range threeInARowMasks {
		if t.playerMarks&mask == mask {
			return game.Win
		}
	}
	if (t.playerMarks|t.opponentMarks)&boardMask == boardMask {
		return game.Draw
	}
	return game.InProgress
}

func (t *TicTacToe) CreateCheckpoint() Checkpoint {
	return Checkpoint{playerMarks: t.playerMarks, opponentMarks: t.opponentMarks}
}

func (t *TicTacToe) RestoreCheckpoint(c Checkpoint) {
	t.playerMarks = c.playerMarks
	t.opponentMarks = c.opponentMarks
}

func (t *TicTacToe) Clone() *TicTacToe {
	clone := *t
	return &clone
}

// Display renders the board with X for PlayerOne's marks and O for
// PlayerTwo's. It takes t's side-to-move marks (playerMarks) to belong to
// turn, so turn must be the side whose perspective t currently holds.
func (t *TicTacToe) Display(turn game.Turn) string {
	toMoveMarks, otherMarks := t.playerMarks, t.opponentMarks

	var b strings.Builder
	b.WriteString("\n╔═══╤═══╤═══╗\n")
	for x := 0; x < boardSize; x++ {
		b.WriteString("║")
		for y := 0; y < boardSize; y++ {
			mask := uint16(1) << (x*boardSize + y)
			ch := byte(' ')
			switch {
			case toMoveMarks&mask != 0:
				ch = xMarkFor(turn)
			case otherMarks&mask != 0:
				ch = oMarkFor(turn)
			}
			fmt.Fprintf(&b, " %c ", ch)
			if y < boardSize-1 {
				b.WriteString("│")
			}
		}
		b.WriteString("║\n")
		if x < boardSize-1 {
			b.WriteString("╟───┼───┼───╢\n")
		}
	}
	b.WriteString("╚═══╧═══╧═══╝\n")
	return b.String()
}

func xMarkFor(turn game.Turn) byte {
	if turn == game.PlayerOne {
		return 'X'
	}
	return 'O'
}

func oMarkFor(turn game.Turn) byte {
	if turn == game.PlayerOne {
		return 'O'
	}
	return 'X'
}

// symmetryPermutations[s][i] is the board index square i maps to under
// symmetry s, for the 8 isometries of a square (the dihedral group D4):
// identity, three rotations, and their four reflections.
var symmetryPermutations = computeSymmetryPermutations()

func computeSymmetryPermutations() [8][9]int {
	rotate := func(x, y int) (int, int) { return y, 2 - x }
	reflect := func(x, y int) (int, int) { return x, 2 - y }

	var perms [8][9]int
	for s := 0; s < 8; s++ {
		for x := 0; x < boardSize; x++ {
			for y := 0; y < boardSize; y++ {
				nx, ny := x, y
				if s >= 4 {
					nx, ny = reflect(nx, ny)
				}
				for r := 0; r < s%4; r++ {
					nx, ny = rotate(nx, ny)
				}
				perms[s][x*boardSize+y] = nx*boardSize + ny
			}
		}
	}
	return perms
}

func transformBits(bits uint16, perm [9]int) uint16 {
	var out uint16
	for i := 0; i < 9; i++ {
		if bits&(1<<i) != 0 {
			out |= 1 << perm[i]
		}
	}
	return out
}

// Symmetries returns the size of tic-tac-toe's symmetry group: the
// identity plus 3 rotations plus 4 reflections.
func (t *TicTacToe) Symmetries() int { return 8 }

// Transform returns the board as seen through symmetry i.
func (t *TicTacToe) Transform(i int) *TicTacToe {
	perm := symmetryPermutations[i]
	return &TicTacToe{
		playerMarks:   transformBits(t.playerMarks, perm),
		opponentMarks: transformBits(t.opponentMarks, perm),
	}
}

// TransformAction maps action through symmetry i.
func (t *TicTacToe) TransformAction(action Action, i int) Action {
	return Action{Index: uint8(symmetryPermutations[i][action.Index])}
}
