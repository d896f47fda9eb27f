package nnue

import (
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"

	"github.com/nnuecore/gomoku/board"
)

// Accumulator is a two-plane incremental feature stack a real network
// reads directly: one plane for canon's own stones, one for the
// opponent's, each a board.MaxBS x board.MaxBS *tensor.Dense so an
// Inferencer can reshape or feed them straight into a forward pass
// without copying. Play/Undo are O(1); nothing here runs a forward
// pass, they only keep the planes in sync with the board.
type Accumulator struct {
	Own, Opp *tensor.Dense
	canon    board.Color
}

// NewAccumulator returns a zeroed accumulator whose "own" plane tracks
// canon's stones.
func NewAccumulator(canon board.Color) *Accumulator {
	own := make([]float32, board.MaxBS*board.MaxBS)
	opp := make([]float32, board.MaxBS*board.MaxBS)
	return &Accumulator{
		Own:   tensor.New(tensor.WithBacking(own), tensor.WithShape(board.MaxBS, board.MaxBS)),
		Opp:   tensor.New(tensor.WithBacking(opp), tensor.WithShape(board.MaxBS, board.MaxBS)),
		canon: canon,
	}
}

// Play marks loc as occupied by color, in whichever plane color maps
// to relative to canon.
func (a *Accumulator) Play(color board.Color, loc board.Loc) {
	a.plane(color)[loc] = 1
}

// Undo clears loc, the inverse of Play.
func (a *Accumulator) Undo(color board.Color, loc board.Loc) {
	a.plane(color)[loc] = 0
}

// plane returns the backing []float32 of whichever Dense color maps
// to relative to canon. Dense.Data() is the tensor's own backing
// array, not a copy, so mutating the returned slice mutates Own/Opp
// directly — there is exactly one copy of each plane's data.
func (a *Accumulator) plane(color board.Color) []float32 {
	if color == a.canon {
		return a.Own.Data().([]float32)
	}
	return a.Opp.Data().([]float32)
}

// Reset zeroes both planes.
func (a *Accumulator) Reset() {
	own, opp := a.plane(a.canon), a.plane(board.Opponent(a.canon))
	for i := range own {
		own[i] = 0
		opp[i] = 0
	}
}

// Difference returns own-minus-opp, one float32 per cell: +1 where
// only canon stands, -1 where only the opponent does, 0 otherwise.
// Nonzero cells are exactly the occupied ones, own or opponent alike —
// StubInferencer reads this single signed plane instead of consulting
// Own and Opp separately. Real evaluators that want a one-plane board
// encoding can take the same shortcut.
func (a *Accumulator) Difference() []float32 {
	own, opp := a.plane(a.canon), a.plane(board.Opponent(a.canon))
	diff := make([]float32, len(own))
	copy(diff, own)
	vecf32.Sub(diff, opp)
	return diff
}
