package mcts

import (
	"github.com/chewxy/math32"
)

// argmax returns the index of the largest element of a. Ties resolve to the
// first occurrence, matching the teacher's original helper.
func argmax(a []float32) int {
	var retVal int
	max := math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}
