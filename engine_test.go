package gomoku

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

func newTestEngine() *Engine {
	return NewEngine(nnue.StubInferencer{}, DefaultConfig())
}

func TestSetBoardRejectsWrongSize(t *testing.T) {
	e := newTestEngine()
	err := e.SetBoard(make([]board.Color, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedSize)
}

func TestSetBoardAcceptsFullSizeBoard(t *testing.T) {
	e := newTestEngine()
	cells := make([]board.Color, board.MaxBS*board.MaxBS)
	center := board.MaxBS/2*board.MaxBS + board.MaxBS/2
	cells[center] = board.Black
	require.NoError(t, e.SetBoard(cells))
}

func TestPlayUndoRoundTrip(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	loc := board.Loc(board.MaxBS/2*board.MaxBS + board.MaxBS/2)
	require.NoError(t, e.Play(board.Black, loc))
	require.NoError(t, e.Undo(loc))
}

func TestFullSearchReturnsMoveOnEmptyBoard(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	move, _ := e.FullSearch(board.Black, 100)
	assert.NotEqual(t, board.NullLoc, move)
}

func TestTerminateCutsFullSearchShort(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))

	go func() {
		time.Sleep(50 * time.Millisecond)
		e.Terminate(true)
	}()

	start := time.Now()
	move, _ := e.FullSearch(board.Black, 1<<30)
	elapsed := time.Since(start)

	assert.NotEqual(t, board.NullLoc, move)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestClearBoardResetsEngine(t *testing.T) {
	e := newTestEngine()
	cells := make([]board.Color, board.MaxBS*board.MaxBS)
	cells[0] = board.Black
	require.NoError(t, e.SetBoard(cells))

	e.ClearBoard()
	assert.Equal(t, int64(0), e.RootVisit())
}

func TestCloseIsSafeWithoutGraphvizDump(t *testing.T) {
	e := newTestEngine()
	assert.NoError(t, e.Close())
}

func TestCloseWritesGraphvizDump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GraphvizDumpPath = t.TempDir() + "/search.dot"
	e := NewEngine(nnue.StubInferencer{}, cfg)
	require.NoError(t, e.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))
	e.FullSearch(board.Black, 50)

	require.NoError(t, e.Close())
}
