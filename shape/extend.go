package shape

import "github.com/nnuecore/gomoku/board"

// Extensions returns the empty cell immediately past the contiguous
// own-run at loc/d/color on each end the packed shape marks open,
// provided filling it makes five or more in a row through loc (NullLoc
// otherwise). Every cell returned would complete a five if the run at
// loc were actually played — the VCF solver uses them to find the
// forced defense after creating a four.
func (idx *Index) Extensions(loc board.Loc, d int, color board.Color) (fwd, bwd board.Loc) {
	step := board.Directions[d]
	center := board.ToPadded(loc)
	p := idx.At(loc, d, color)
	fills := func(cand, dir board.PaddedLoc) bool {
		n := 1
		for q := cand + dir; idx.own(q, color); q += dir {
			n++
		}
		for q := cand - dir; q == center || idx.own(q, color); q -= dir {
			n++
		}
		return n >= 5
	}

	fwd = board.NullLoc
	if p.ExtendFwd() {
		pos := center
		for idx.own(pos+step, color) {
			pos += step
		}
		cand := pos + step
		if idx.empty(cand) && fills(cand, step) {
			if c, ok := board.ToCompact(cand); ok {
				fwd = c
			}
		}
	}

	bwd = board.NullLoc
	if p.ExtendBwd() {
		pos := center
		for idx.own(pos-step, color) {
			pos -= step
		}
		cand := pos - step
		if idx.empty(cand) && fills(cand, -step) {
			if c, ok := board.ToCompact(cand); ok {
				bwd = c
			}
		}
	}
	return fwd, bwd
}
