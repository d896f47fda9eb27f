package nnue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnuecore/gomoku/board"
)

func TestPlayUndoCancelInCache(t *testing.T) {
	e := NewEvaluator(StubInferencer{})
	e.Play(board.Black, 10)
	e.Undo(board.Black, 10)

	assert.Empty(t, e.moveCacheB)
	assert.Empty(t, e.moveCacheW)
}

func TestFlushAppliesPendingMoves(t *testing.T) {
	e := NewEvaluator(StubInferencer{Value: ValueSum{Win: 1}})
	e.Play(board.Black, 5)

	policy := make([]PolicyType, board.MaxBS*board.MaxBS)
	v := e.EvaluateFull([GlobalFeatureNum]float32{}, board.Black, policy)

	require.Equal(t, ValueSum{Win: 1}, v)
	assert.Equal(t, MinPolicy, policy[5])
	assert.Equal(t, PolicyType(0), policy[6])
	assert.Empty(t, e.moveCacheB)
}

func TestBlackAndWhiteAccumulatorsAreIndependent(t *testing.T) {
	e := NewEvaluator(StubInferencer{})
	e.Play(board.Black, 7)

	policyBlack := make([]PolicyType, board.MaxBS*board.MaxBS)
	e.EvaluateFull([GlobalFeatureNum]float32{}, board.Black, policyBlack)
	assert.Equal(t, MinPolicy, policyBlack[7])

	// the white accumulator has its own pending cache, independently
	// flushed only when white's perspective is evaluated.
	assert.Len(t, e.moveCacheW, 1)
	policyWhite := make([]PolicyType, board.MaxBS*board.MaxBS)
	e.EvaluateFull([GlobalFeatureNum]float32{}, board.White, policyWhite)
	assert.Equal(t, MinPolicy, policyWhite[7])
	assert.Empty(t, e.moveCacheW)
}

func TestQuantizeRoundTripsApproximately(t *testing.T) {
	q := Quantize(0.5)
	assert.InDelta(t, float64(q)*PolicyQuantInv, 0.5, 0.01)
}
