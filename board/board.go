package board

import (
	"log"

	"github.com/pkg/errors"
)

// ErrIllegalMove and ErrIllegalUndo mark the two hot-path invariant
// violations that are bugs, not recoverable conditions: callers on
// the hot path are expected to log and carry on rather than unwind.
var (
	ErrIllegalMove = errors.New("board: illegal move, cell already occupied")
	ErrIllegalUndo = errors.New("board: illegal undo, cell already empty")
)

// Board is the fixed MaxBS x MaxBS Gomoku grid plus its Zobrist hash.
type Board struct {
	cells [MaxBS * MaxBS]Color
	hash  Hash128
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the color occupying loc.
func (b *Board) At(loc Loc) Color { return b.cells[loc] }

// Hash returns the current Zobrist position hash (stones only, no
// side-to-move contribution — that is folded in by the caller, since
// Board itself does not track whose turn it is).
func (b *Board) Hash() Hash128 { return b.hash }

// Clear empties the board and resets the hash.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.hash = Hash128{}
}

// Play places color at loc. On an occupied cell it logs a warning and
// leaves the board untouched — illegal moves on the hot path are a
// programming error and the caller must not treat the returned error
// as recoverable; subsequent search results are undefined.
func (b *Board) Play(color Color, loc Loc) error {
	if b.cells[loc] != Empty {
		log.Printf("board: illegal move: cell %d already holds %v", loc, b.cells[loc])
		return ErrIllegalMove
	}
	b.cells[loc] = color
	b.hash = b.hash.XOR(ZobristLoc(color, loc))
	return nil
}

// Undo removes the stone at loc, the inverse of Play. On an already
// empty cell it logs a warning and leaves the board untouched.
func (b *Board) Undo(loc Loc) error {
	color := b.cells[loc]
	if color == Empty {
		log.Printf("board: illegal undo: cell %d already empty", loc)
		return ErrIllegalUndo
	}
	b.cells[loc] = Empty
	b.hash = b.hash.XOR(ZobristLoc(color, loc))
	return nil
}

// SetBoard clears the board, then plays every occupied cell of cells
// (row-major, length MaxBS*MaxBS) in order.
func (b *Board) SetBoard(cells []Color) error {
	if len(cells) != MaxBS*MaxBS {
		return errors.Errorf("board: expected %d cells, got %d", MaxBS*MaxBS, len(cells))
	}
	b.Clear()
	for loc, c := range cells {
		if c != Empty {
			if err := b.Play(c, Loc(loc)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Snapshot copies the current grid contents, for use by tests that
// assert round-trip invariants without re-deriving state by hand.
func (b *Board) Snapshot() [MaxBS * MaxBS]Color { return b.cells }

// Restore replaces the grid with snapshot (as produced by Snapshot)
// and recomputes the Zobrist hash to match, the inverse of Snapshot.
// Unlike SetBoard it does no occupancy validation: snapshot is assumed
// to already be a grid this same Board once held.
func (b *Board) Restore(snapshot [MaxBS * MaxBS]Color) {
	b.cells = snapshot
	b.hash = Hash128{}
	for loc, c := range b.cells {
		if c != Empty {
			b.hash = b.hash.XOR(ZobristLoc(c, Loc(loc)))
		}
	}
}

// Full reports whether every cell is occupied.
func (b *Board) Full() bool {
	for _, c := range b.cells {
		if c == Empty {
			return false
		}
	}
	return true
}
