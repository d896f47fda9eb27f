package mcts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

func TestFullSearchReturnsVCFWinWithoutExpanding(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	cells := make([]board.Color, board.MaxBS*board.MaxBS)
	cells[board.FromXY(4, 7)] = board.Black
	cells[board.FromXY(5, 7)] = board.Black
	cells[board.FromXY(6, 7)] = board.Black
	cells[board.FromXY(7, 7)] = board.Black
	require.NoError(t, tree.SetBoard(cells))

	best, value := tree.FullSearch(board.Black, 100)
	assert.NotEqual(t, board.NullLoc, best)
	assert.Equal(t, 1.0, value)
}

func TestFullSearchExpandsTreeOnQuietBoard(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	best, _ := tree.FullSearch(board.Black, 200)
	assert.NotEqual(t, board.NullLoc, best)
	assert.Greater(t, tree.RootVisit(), int64(1))
}

func TestPlayReusesMatchingChild(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	best, _ := tree.FullSearch(board.Black, 200)
	require.NotEqual(t, board.NullLoc, best)

	require.NoError(t, tree.Play(board.Black, best))
	assert.NotNil(t, tree.root)
	assert.Equal(t, board.White, tree.root.nextColor)
}

func TestUndoDiscardsTree(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	loc := board.FromXY(7, 7)
	require.NoError(t, tree.Play(board.Black, loc))
	require.NoError(t, tree.Undo(loc))

	assert.Nil(t, tree.root)
	assert.Equal(t, board.Empty, tree.board.At(loc))
}

func TestSetTerminateCutsSearchShort(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))
	before := tree.board.Snapshot()

	go func() {
		time.Sleep(50 * time.Millisecond)
		tree.SetTerminate(true)
	}()

	start := time.Now()
	best, _ := tree.FullSearch(board.Black, 1<<30)
	elapsed := time.Since(start)

	assert.NotEqual(t, board.NullLoc, best)
	assert.Less(t, elapsed, 2*time.Second)
	assert.Equal(t, before, tree.board.Snapshot())
}

func TestFullSearchClearsStaleTerminateFlag(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	tree.SetTerminate(true)
	best, _ := tree.FullSearch(board.Black, 200)

	assert.NotEqual(t, board.NullLoc, best)
	assert.Greater(t, tree.RootVisit(), int64(1))
}

func TestClearBoardResetsEverything(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	loc := board.FromXY(7, 7)
	require.NoError(t, tree.Play(board.Black, loc))

	tree.ClearBoard()
	assert.Nil(t, tree.root)
	assert.Equal(t, board.Empty, tree.board.At(loc))
}
