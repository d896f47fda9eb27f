package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nnuecore/gomoku/board"
)

func TestOpenThreeDetected(t *testing.T) {
	idx := NewIndex()
	idx.Place(board.Black, board.FromXY(5, 7))
	idx.Place(board.Black, board.FromXY(6, 7))
	idx.Place(board.Black, board.FromXY(7, 7))

	// the horizontal direction index is 0 in board.Directions.
	assert.True(t, idx.IsMyThree(board.FromXY(6, 7), 0, board.Black))
}

func TestFourIsDetectedAndExtendable(t *testing.T) {
	idx := NewIndex()
	idx.Place(board.Black, board.FromXY(4, 7))
	idx.Place(board.Black, board.FromXY(5, 7))
	idx.Place(board.Black, board.FromXY(6, 7))
	idx.Place(board.Black, board.FromXY(7, 7))

	assert.True(t, idx.IsMyFour(board.FromXY(6, 7), 0, board.Black))
}

func TestFiveDetected(t *testing.T) {
	idx := NewIndex()
	for x := 3; x <= 7; x++ {
		idx.Place(board.Black, board.FromXY(x, 7))
	}
	assert.True(t, idx.IsMyFive(board.FromXY(5, 7), 0, board.Black))
}

func TestOwnFourIsNotOpponentFour(t *testing.T) {
	idx := NewIndex()
	idx.Place(board.Black, board.FromXY(4, 7))
	idx.Place(board.Black, board.FromXY(5, 7))
	idx.Place(board.Black, board.FromXY(6, 7))
	idx.Place(board.Black, board.FromXY(7, 7))

	assert.False(t, idx.IsOppFour(board.FromXY(6, 7), 0, board.Black))
	assert.True(t, idx.IsOppFour(board.FromXY(6, 7), 0, board.White)) // opponent-of-white is black
}

func TestBrokenFourFoldsGapIntoLength(t *testing.T) {
	idx := NewIndex()
	// XX_XX along row 7: x=3,4 then a gap at x=5, then x=6,7. Querying
	// either flank must still see a length-4 run through the gap.
	idx.Place(board.Black, board.FromXY(3, 7))
	idx.Place(board.Black, board.FromXY(4, 7))
	idx.Place(board.Black, board.FromXY(6, 7))
	idx.Place(board.Black, board.FromXY(7, 7))

	p := idx.At(board.FromXY(6, 7), 0, board.Black)
	assert.Equal(t, 4, p.Length())
	assert.True(t, p.Multi())
	assert.True(t, idx.IsMyFour(board.FromXY(6, 7), 0, board.Black))

	// filling the gap itself completes an outright five.
	assert.True(t, idx.IsMyFive(board.FromXY(5, 7), 0, board.Black))
}

func TestRemoveUndoesShape(t *testing.T) {
	idx := NewIndex()
	loc := board.FromXY(6, 7)
	idx.Place(board.Black, board.FromXY(5, 7))
	idx.Place(board.Black, loc)
	idx.Place(board.Black, board.FromXY(7, 7))
	assert.True(t, idx.IsMyThree(loc, 0, board.Black))

	idx.Remove(loc)
	// loc itself still reads as a three (its shape is the as-if-played
	// hypothetical); the neighbor at x=5 is left with a gapped two.
	assert.False(t, idx.IsMyThree(board.FromXY(5, 7), 0, board.Black))
}
