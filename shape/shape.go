// Package shape maintains, per board cell and per line direction, a
// packed integer summarizing the local stone pattern around that
// cell. It is the substrate the VCF solver's four/three/two
// predicates run against in O(1).
package shape

import "github.com/nnuecore/gomoku/board"

// Packed is the per-(cell, direction, color) line-pattern summary.
// Bit layout (low to high):
//
//	bits 0-2 (3 bits): length   — own run length intersecting the cell, capped at 7
//	bits 3-5 (3 bits): nearOwn  — own stones on the stronger side
//	bits 6-8 (3 bits): farOpp   — own stones on the weaker side (opponent stones are not counted)
//	bits 9-10 (2 bits): extend  — bit0 = forward end open, bit1 = backward end open
//	bit 11    (1 bit): multi    — gapped run present (_XX_X_ vs _XXX__)
type Packed uint16

const (
	lengthMask  = 0x7
	nearMask    = 0x7
	farMask     = 0x7
	lengthShift = 0
	nearShift   = 3
	farShift    = 6
	extendShift = 9
	multiShift  = 11

	extendFwd = 1 << 0
	extendBwd = 1 << 1
)

func pack(length, near, far int, extend uint8, multi bool) Packed {
	p := Packed(clamp(length)<<lengthShift) |
		Packed(clamp(near)<<nearShift) |
		Packed(clamp(far)<<farShift) |
		Packed(extend)<<extendShift
	if multi {
		p |= 1 << multiShift
	}
	return p
}

func clamp(v int) int {
	if v > 7 {
		return 7
	}
	if v < 0 {
		return 0
	}
	return v
}

// Length returns the packed own-run length.
func (p Packed) Length() int { return int(p>>lengthShift) & lengthMask }

// NearOwn returns own stones on the stronger side.
func (p Packed) NearOwn() int { return int(p>>nearShift) & nearMask }

// FarOpp returns own stones on the weaker side, the shorter of the two
// own runs; it does not count opponent stones.
func (p Packed) FarOpp() int { return int(p>>farShift) & farMask }

// ExtendFwd reports whether the forward end of the run is still open.
func (p Packed) ExtendFwd() bool { return p&(extendFwd<<extendShift) != 0 }

// ExtendBwd reports whether the backward end of the run is still open.
func (p Packed) ExtendBwd() bool { return p&(extendBwd<<extendShift) != 0 }

// Multi reports the gapped-run flag (_XX_X_ vs _XXX__).
func (p Packed) Multi() bool { return p&(1<<multiShift) != 0 }

// radius is how far the scan looks in each direction: enough to spot
// a five-in-a-row anchored up to 4 cells away from the queried cell.
const radius = 4

// Index holds the packed shape value for every (padded cell,
// direction, color) triple. Color here means "as if this color stood
// at this cell" — for already-occupied cells that coincides with
// reality for the occupant and is simply unused for the other color;
// for empty cells it is exactly the hypothetical the VCF solver needs
// to ask "would playing here make a four?" without having to place
// and undo a stone first.
type Index struct {
	cells [board.PaddedSide * board.PaddedSide]board.Color
	// shapes[loc][dir][color-1] — color-1 because Empty never indexes in.
	shapes [board.PaddedSide * board.PaddedSide][4][2]Packed
}

// NewIndex returns an empty index with the border sentinel already
// baked into out-of-board reads (see colorAt).
func NewIndex() *Index {
	return &Index{}
}

// colorAt returns the occupant of p, or treats it as occupied by
// neither color specifically but as a blocker to both — the caller
// compares against a concrete "mine" color, so colorAt returning a
// sentinel alone isn't enough; blocked() below does the "opponent to
// both sides" translation.
func (idx *Index) colorAt(p board.PaddedLoc) (board.Color, bool) {
	if _, ok := board.ToCompact(p); !ok {
		return board.Empty, true // border sentinel
	}
	return idx.cells[p], false
}

// blocked reports whether the stone at p counts as a blocker from
// mine's perspective: either the border sentinel, or an actual
// opposing stone.
func (idx *Index) blocked(p board.PaddedLoc, mine board.Color) bool {
	c, isBorder := idx.colorAt(p)
	if isBorder {
		return true
	}
	return c == board.Opponent(mine)
}

func (idx *Index) empty(p board.PaddedLoc) bool {
	c, isBorder := idx.colorAt(p)
	return !isBorder && c == board.Empty
}

func (idx *Index) own(p board.PaddedLoc, mine board.Color) bool {
	c, isBorder := idx.colorAt(p)
	return !isBorder && c == mine
}

// Place records color at compact location loc and recomputes every
// shape cell the placement could affect: loc itself plus up to
// 2*radius+1 cells outward in each of the 4 directions, the farthest
// a walk can read.
func (idx *Index) Place(color board.Color, loc board.Loc) {
	p := board.ToPadded(loc)
	idx.cells[p] = color
	idx.rescanAround(p)
}

// Remove clears the stone at loc (the grid cell is simply emptied, so
// no color is needed) and recomputes affected shape cells exactly as
// Place does.
func (idx *Index) Remove(loc board.Loc) {
	p := board.ToPadded(loc)
	idx.cells[p] = board.Empty
	idx.rescanAround(p)
}

func (idx *Index) rescanAround(center board.PaddedLoc) {
	// walk reads up to radius own stones, one gap, up to radius more,
	// and the cell past them.
	reach := 2*radius + 1
	for d, step := range board.Directions {
		for off := -reach; off <= reach; off++ {
			cell := center + board.PaddedLoc(off)*step
			if off != 0 {
				// Only real board cells need a stored shape; border
				// cells are never queried directly.
				if _, ok := board.ToCompact(cell); !ok {
					continue
				}
			}
			idx.recompute(cell, d, step)
		}
	}
}

func (idx *Index) recompute(center board.PaddedLoc, dir int, step board.PaddedLoc) {
	idx.shapes[center][dir][board.Black-1] = idx.scan(center, step, board.Black)
	idx.shapes[center][dir][board.White-1] = idx.scan(center, step, board.White)
}

// scan walks `step` forward and backward from center, pretending
// center itself is occupied by mine, and derives the packed summary.
func (idx *Index) scan(center, step board.PaddedLoc, mine board.Color) Packed {
	fwdOwn, fwdGap, fwdOpen := idx.walk(center, step, mine)
	bwdOwn, bwdGap, bwdOpen := idx.walk(center, -step, mine)

	length := 1 + fwdOwn + bwdOwn
	near, far := fwdOwn, bwdOwn
	extend := uint8(0)
	if near < far {
		near, far = far, near
	}
	if fwdOpen {
		extend |= extendFwd
	}
	if bwdOpen {
		extend |= extendBwd
	}
	multi := fwdGap || bwdGap
	return pack(length, near, far, extend, multi)
}

// walk scans up to `radius` cells along step from center (exclusive),
// returning the own-run length — folding in one gapped continuation
// when present, per the packed shape's contiguous-or-gapped run
// definition (_XX_X_ counts the far stone into the run, not just the
// near contiguous block) — whether that fold happened (the "multi"
// signal), and whether the run is still open (no blocker reached
// within the scanned window right after the run).
func (idx *Index) walk(center, step board.PaddedLoc, mine board.Color) (run int, gap bool, open bool) {
	pos := center
	for i := 0; i < radius; i++ {
		pos += step
		if !idx.own(pos, mine) {
			break
		}
		run++
	}
	switch {
	case run == radius:
		// the entire scanned window was our own stones; look one cell
		// further to decide whether the run is still extendable.
		pos += step
	case idx.empty(pos):
		// look one further for a gapped own stone: _XX_X_ pattern. Fold
		// it and anything contiguous past it into the run length.
		if next := pos + step; idx.own(next, mine) {
			gap = true
			p, extra := next, 1
			for extra < radius {
				q := p + step
				if !idx.own(q, mine) {
					break
				}
				p, extra = q, extra+1
			}
			run += extra
			pos = p + step
		}
	}
	switch {
	case idx.blocked(pos, mine):
		open = false
	case idx.empty(pos):
		open = true
	default:
		// ran off the scanned window without resolving; treat as open
		// since we can't prove a blocker exists.
		open = true
	}
	return run, gap, open
}

// At returns the packed shape at compact location loc, direction
// index d (0=horizontal,1=vertical,2=diagonal,3=anti-diagonal), as if
// color stood there.
func (idx *Index) At(loc board.Loc, d int, color board.Color) Packed {
	return idx.shapes[board.ToPadded(loc)][d][color-1]
}
