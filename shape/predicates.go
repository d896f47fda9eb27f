package shape

import "github.com/nnuecore/gomoku/board"

// IsMyFive reports whether the shape at loc/d, considered from mine's
// perspective, is already a five-in-a-row (or better): five or more
// contiguous stones through loc. Unlike Length, a gap ends the run.
func (idx *Index) IsMyFive(loc board.Loc, d int, mine board.Color) bool {
	step := board.Directions[d]
	center := board.ToPadded(loc)
	n := 1
	for q := center + step; idx.own(q, mine); q += step {
		n++
	}
	for q := center - step; idx.own(q, mine); q -= step {
		n++
	}
	return n >= 5
}

// IsMyFour reports a four that can still extend to five on at least
// one end — the four-threats the VCF solver attacks with.
func (idx *Index) IsMyFour(loc board.Loc, d int, mine board.Color) bool {
	p := idx.At(loc, d, mine)
	return p.Length() == 4 && (p.ExtendFwd() || p.ExtendBwd())
}

// IsMyThree reports an open three: length 3 with both ends open, or a
// gapped three (the Multi flag) that can be completed into an open four.
func (idx *Index) IsMyThree(loc board.Loc, d int, mine board.Color) bool {
	p := idx.At(loc, d, mine)
	if p.Length() != 3 {
		return false
	}
	return (p.ExtendFwd() && p.ExtendBwd()) || p.Multi()
}

// IsMyTwo reports a run of exactly two with room to grow.
func (idx *Index) IsMyTwo(loc board.Loc, d int, mine board.Color) bool {
	p := idx.At(loc, d, mine)
	return p.Length() == 2 && (p.ExtendFwd() || p.ExtendBwd())
}

// IsOppFive/IsOppFour mirror the My* predicates from the opponent's
// perspective at the same cell.
func (idx *Index) IsOppFive(loc board.Loc, d int, mine board.Color) bool {
	return idx.IsMyFive(loc, d, board.Opponent(mine))
}

func (idx *Index) IsOppFour(loc board.Loc, d int, mine board.Color) bool {
	return idx.IsMyFour(loc, d, board.Opponent(mine))
}

// AnyDirection reports whether pred holds in any of the 4 directions.
func (idx *Index) AnyDirection(loc board.Loc, mine board.Color, pred func(board.Loc, int, board.Color) bool) bool {
	for d := 0; d < 4; d++ {
		if pred(loc, d, mine) {
			return true
		}
	}
	return false
}

// CountFours returns how many of the 4 directions form a four at loc
// for mine — used to detect a double-four win.
func (idx *Index) CountFours(loc board.Loc, mine board.Color) int {
	n := 0
	for d := 0; d < 4; d++ {
		if idx.IsMyFour(loc, d, mine) {
			n++
		}
	}
	return n
}
