package tictactoe

import "fmt"

// Action is the only move tic-tac-toe has: mark one empty square. Index
// runs 0-8, row-major (index = x*3 + y).
type Action struct {
	Index uint8
}

var squareNames = [9]string{
	"top-left", "top-center", "top-right",
	"middle-left", "middle-center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

func (a Action) String() string {
	return fmt.Sprintf("marks the %s square.", squareNames[a.Index])
}
