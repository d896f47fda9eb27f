package nnue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nnuecore/gomoku/board"
)

func TestAccumulatorPlayUndoUpdatesOwnAndOppPlanes(t *testing.T) {
	a := NewAccumulator(board.Black)

	a.Play(board.Black, 5)
	a.Play(board.White, 6)

	own := a.Own.Data().([]float32)
	opp := a.Opp.Data().([]float32)
	assert.Equal(t, float32(1), own[5])
	assert.Equal(t, float32(1), opp[6])
	assert.Equal(t, float32(0), own[6])

	a.Undo(board.Black, 5)
	assert.Equal(t, float32(0), own[5])
}

func TestAccumulatorDifferenceIsSignedOccupancy(t *testing.T) {
	a := NewAccumulator(board.Black)
	a.Play(board.Black, 5)
	a.Play(board.White, 6)

	diff := a.Difference()
	assert.Equal(t, float32(1), diff[5])
	assert.Equal(t, float32(-1), diff[6])
	assert.Equal(t, float32(0), diff[7])
}

func TestAccumulatorResetClearsBothPlanes(t *testing.T) {
	a := NewAccumulator(board.Black)
	a.Play(board.Black, 5)
	a.Play(board.White, 6)

	a.Reset()

	diff := a.Difference()
	for i, v := range diff {
		assert.Equalf(t, float32(0), v, "cell %d not cleared", i)
	}
}
