package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

func TestExportGraphOnEmptyTree(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	dot, err := ExportGraph(tree, 2)
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph")
}

func TestExportGraphAfterSearch(t *testing.T) {
	tree := NewTree(board.Freestyle, nnue.StubInferencer{})
	require.NoError(t, tree.SetBoard(make([]board.Color, board.MaxBS*board.MaxBS)))
	tree.FullSearch(board.Black, 50)

	dot, err := ExportGraph(tree, 2)
	require.NoError(t, err)
	assert.Contains(t, dot, "visits")
}
