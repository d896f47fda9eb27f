package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayUndoRoundTrip(t *testing.T) {
	b := NewBoard()
	initial := b.Hash()

	loc := FromXY(7, 7)
	require.NoError(t, b.Play(Black, loc))
	assert.Equal(t, Black, b.At(loc))
	assert.NotEqual(t, initial, b.Hash())

	require.NoError(t, b.Undo(loc))
	assert.Equal(t, Empty, b.At(loc))
	assert.Equal(t, initial, b.Hash())
}

func TestZobristRoundTripOverSequence(t *testing.T) {
	b := NewBoard()
	initial := b.Hash()

	moves := []struct {
		c Color
		l Loc
	}{
		{Black, FromXY(7, 7)},
		{White, FromXY(8, 7)},
		{Black, FromXY(9, 7)},
	}
	for _, m := range moves {
		require.NoError(t, b.Play(m.c, m.l))
	}
	for i := len(moves) - 1; i >= 0; i-- {
		require.NoError(t, b.Undo(moves[i].l))
	}
	assert.Equal(t, initial, b.Hash())
}

func TestIllegalMoveLeavesBoardUntouched(t *testing.T) {
	b := NewBoard()
	loc := FromXY(0, 0)
	require.NoError(t, b.Play(Black, loc))
	err := b.Play(White, loc)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, Black, b.At(loc))
}

func TestIllegalUndoLeavesBoardUntouched(t *testing.T) {
	b := NewBoard()
	loc := FromXY(0, 0)
	err := b.Undo(loc)
	assert.ErrorIs(t, err, ErrIllegalUndo)
	assert.Equal(t, Empty, b.At(loc))
}

func TestSetBoardRowMajor(t *testing.T) {
	b := NewBoard()
	cells := make([]Color, MaxBS*MaxBS)
	cells[FromXY(1, 2)] = Black
	cells[FromXY(3, 4)] = White
	require.NoError(t, b.SetBoard(cells))
	assert.Equal(t, Black, b.At(FromXY(1, 2)))
	assert.Equal(t, White, b.At(FromXY(3, 4)))
}

func TestSetBoardRejectsWrongSize(t *testing.T) {
	b := NewBoard()
	err := b.SetBoard(make([]Color, 10))
	assert.Error(t, err)
}

func TestRestoreRoundTrip(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Play(Black, FromXY(7, 7)))
	require.NoError(t, b.Play(White, FromXY(8, 7)))
	snap := b.Snapshot()
	hash := b.Hash()

	require.NoError(t, b.Play(Black, FromXY(9, 7)))
	require.NoError(t, b.Play(White, FromXY(10, 7)))
	assert.NotEqual(t, snap, b.Snapshot())

	b.Restore(snap)
	assert.Equal(t, snap, b.Snapshot())
	assert.Equal(t, hash, b.Hash())
}

func TestLocationConversionRoundTrip(t *testing.T) {
	for y := 0; y < MaxBS; y++ {
		for x := 0; x < MaxBS; x++ {
			l := FromXY(x, y)
			p := ToPadded(l)
			back, ok := ToCompact(p)
			require.True(t, ok)
			assert.Equal(t, l, back)
		}
	}
}

func TestPaddedBorderIsNotCompact(t *testing.T) {
	_, ok := ToCompact(PaddedLoc(0))
	assert.False(t, ok)
}
