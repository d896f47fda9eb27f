package board

// Loc is a compact cell index in row-major order, 0..MaxBS*MaxBS-1.
// It is the coordinate system used by the MCTS driver and the outer
// API (setBoard/play/undo/fullSearch).
type Loc int32

// NullLoc denotes "no move".
const NullLoc Loc = -1

// PaddedLoc is a cell index on the (MaxBS+6)x(MaxBS+6) bordered grid
// used by the shape index and VCF solver: three rows/columns of
// sentinel border surround the real board on every side, so a line
// scan never needs a bounds check.
type PaddedLoc int32

// NullPaddedLoc denotes "no location" in padded coordinates.
const NullPaddedLoc PaddedLoc = -1

const (
	// PaddedBorder is the sentinel border width on each side.
	PaddedBorder = 3
	// PaddedSide is the full side length of the padded grid.
	PaddedSide = MaxBS + 2*PaddedBorder
)

// XY decodes a compact location into zero-based (x, y) board coordinates.
func (l Loc) XY() (x, y int) {
	v := int(l)
	return v % MaxBS, v / MaxBS
}

// FromXY encodes zero-based board coordinates into a compact location.
func FromXY(x, y int) Loc {
	return Loc(y*MaxBS + x)
}

// ToPadded converts a compact location to its padded-grid equivalent.
func ToPadded(l Loc) PaddedLoc {
	if l == NullLoc {
		return NullPaddedLoc
	}
	x, y := l.XY()
	return PaddedLoc((y+PaddedBorder)*PaddedSide + (x + PaddedBorder))
}

// ToCompact converts a padded-grid location back to the compact
// coordinate space. ok is false if the padded location falls in the
// sentinel border (not a real board cell).
func ToCompact(p PaddedLoc) (l Loc, ok bool) {
	if p == NullPaddedLoc {
		return NullLoc, false
	}
	v := int(p)
	py, px := v/PaddedSide, v%PaddedSide
	x, y := px-PaddedBorder, py-PaddedBorder
	if x < 0 || x >= MaxBS || y < 0 || y >= MaxBS {
		return NullLoc, false
	}
	return FromXY(x, y), true
}

// Directions are the 4 line axes the shape index tracks, expressed as
// the padded-grid step between adjacent cells along the axis.
var Directions = [4]PaddedLoc{
	1,          // horizontal
	PaddedSide, // vertical
	PaddedSide + 1, // diagonal
	PaddedSide - 1, // anti-diagonal
}
