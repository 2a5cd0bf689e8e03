package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvidian/alphastep/game"
)

func TestNewNode_RootHasNoAction(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, actions(1, 2), 1)
	_, hasMove := n.Action()
	assert.False(t, hasMove)
}

func TestSetAction_MarksActionPresent(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	n.setAction(testAction{id: 5})
	action, hasMove := n.Action()
	assert.True(t, hasMove)
	assert.Equal(t, testAction{id: 5}, action)
}

func TestIsSelectionCandidate_FalseWithNoChildren(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	assert.False(t, n.IsSelectionCandidate())
}

func TestIsSelectionCandidate_FalseWithUnexploredActionsRemaining(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	n.children = []index{0}
	n.UnexploredActions = actions(1)
	assert.False(t, n.IsSelectionCandidate())
}

func TestIsSelectionCandidate_TrueOnceFullyExpanded(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	n.children = []index{0, 1}
	n.UnexploredActions = nil
	assert.True(t, n.IsSelectionCandidate())
}

func TestIsLeaf_TrueWithoutChildren(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	assert.True(t, n.IsLeaf())
	n.children = []index{0}
	assert.False(t, n.IsLeaf())
}

func TestExploitation_ZeroVisitsIsZero(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	assert.Equal(t, float32(0), n.exploitation())
}

func TestExploitation_IsMeanOfTotalValue(t *testing.T) {
	n := newNode[testAction](noIndex, game.PlayerOne, nil, 1)
	n.Visits = 4
	n.TotalValue = 2
	assert.Equal(t, float32(0.5), n.exploitation())
}
