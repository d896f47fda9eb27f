package vcf

import (
	"math/rand"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/shape"
)

var ruleHash [3]board.Hash128
var colorHash [3]board.Hash128

func init() {
	rng := rand.New(rand.NewSource(0xC0FFEE))
	for i := range ruleHash {
		ruleHash[i] = board.Hash128{Hi: rng.Uint64(), Lo: rng.Uint64()}
	}
	for i := range colorHash {
		colorHash[i] = board.Hash128{Hi: rng.Uint64(), Lo: rng.Uint64()}
	}
}

// Solver proves forced wins restricted to sequences of four-threats,
// from the fixed perspective of one attacking color.
type Solver struct {
	attacker board.Color
	rule     board.Rule

	board *board.Board
	shape *shape.Index

	pts []PT

	hashTable *HashTable
	nodeNum   int
	budgetCap int
	pv        []board.Loc
}

// NewSolver returns a solver that always searches for forced wins for
// attacker, under the given forbidden-move rule.
func NewSolver(rule board.Rule, attacker board.Color) *Solver {
	return &Solver{
		attacker:  attacker,
		rule:      rule,
		board:     board.NewBoard(),
		shape:     shape.NewIndex(),
		hashTable: NewHashTable(),
	}
}

// SetBoard resets the solver and seeds it with cells (row-major,
// length MaxBS*MaxBS). katagoType and colorType mirror the external
// parameter-file-era input-layout toggles the solver's contract
// historically exposed; this implementation always consumes absolute
// board.Color cells in board.Loc row-major order, so both flags are
// accepted for API fidelity but otherwise unused.
func (s *Solver) SetBoard(cells []board.Color, katagoType, colorType bool) error {
	if err := s.board.SetBoard(cells); err != nil {
		return err
	}
	s.shape = shape.NewIndex()
	for loc, c := range cells {
		if c != board.Empty {
			s.shape.Place(c, board.Loc(loc))
		}
	}
	s.rebuildThreats()
	return nil
}

// PlayOutside applies a move driven from the owning MCTS driver,
// keeping the shape index and threat set consistent. locType mirrors
// the historical compact/padded toggle; this implementation always
// takes compact locations, so it is accepted but unused.
func (s *Solver) PlayOutside(loc board.Loc, color board.Color, locType int, colorType bool) error {
	if err := s.play(color, loc); err != nil {
		return err
	}
	s.rebuildThreats()
	return nil
}

// UndoOutside is the inverse of PlayOutside.
func (s *Solver) UndoOutside(loc board.Loc, locType int) error {
	if err := s.undo(loc); err != nil {
		return err
	}
	s.rebuildThreats()
	return nil
}

func (s *Solver) play(color board.Color, loc board.Loc) error {
	if err := s.board.Play(color, loc); err != nil {
		return err
	}
	s.shape.Place(color, loc)
	return nil
}

func (s *Solver) undo(loc board.Loc) error {
	if err := s.board.Undo(loc); err != nil {
		return err
	}
	s.shape.Remove(loc)
	return nil
}

// rebuildThreats rescans the whole board and repopulates pts[] with
// every four-threat currently available to the attacker. A full
// rescan (rather than tracking incremental deltas past each
// play/undo) keeps the threat-maintenance logic simple and is cheap
// at board.MaxBS scale; see DESIGN.md for the tradeoff this resolves.
func (s *Solver) rebuildThreats() {
	s.pts = s.pts[:0]
	for loc := board.Loc(0); loc < board.MaxBS*board.MaxBS; loc++ {
		if s.board.At(loc) != board.Empty {
			continue
		}
		for d := 0; d < 4; d++ {
			if s.shape.IsMyFive(loc, d, s.attacker) {
				// playing here already completes five outright — record
				// it like the double-open case below; playTwo's own
				// post-play check resolves the win regardless of Loc2.
				s.pts = append(s.pts, PT{ShapeLoc: loc, Dir: d, Loc1: loc, Loc2: board.NullLoc})
				continue
			}
			if !s.shape.IsMyFour(loc, d, s.attacker) {
				continue
			}
			fwd, bwd := s.shape.Extensions(loc, d, s.attacker)
			if fwd != board.NullLoc && bwd != board.NullLoc {
				// both ends open: unstoppable, recorded with either
				// completion cell as the nominal defense — playTwo
				// detects the double-open case independently and
				// treats it as an immediate win regardless.
				s.pts = append(s.pts, PT{ShapeLoc: loc, Dir: d, Loc1: loc, Loc2: fwd})
				continue
			}
			defend := fwd
			if defend == board.NullLoc {
				defend = bwd
			}
			if defend == board.NullLoc {
				continue // four with no completion cell: dead, not a threat
			}
			s.pts = append(s.pts, PT{ShapeLoc: loc, Dir: d, Loc1: loc, Loc2: defend})
		}
	}
}

func (s *Solver) positionKey() board.Hash128 {
	return s.board.Hash().XOR(ruleHash[s.rule]).XOR(colorHash[s.attacker])
}

// FullSearch iteratively deepens over layers 1..maxLayer, searching
// for a forced win within a total node budget of factor. On Win, the
// returned move is the first forcing move and GetPV returns the full
// principal variation.
func (s *Solver) FullSearch(factor, maxLayer int) (SearchResult, board.Loc) {
	preHash := s.board.Hash()
	s.nodeNum = 0
	s.budgetCap = factor
	s.pv = nil

	for n := 1; n <= maxLayer; n++ {
		bound := int(float64(boundN(n)) * scaleOrOne(searchFactorN(n)))
		s.pv = nil
		result := s.search(bound, board.NullLoc)
		if result == Win {
			best := board.NullLoc
			if len(s.pv) > 0 {
				best = s.pv[0]
			}
			assertRestored(s.board.Hash(), preHash)
			return Win, best
		}
		if s.nodeNum >= s.budgetCap {
			assertRestored(s.board.Hash(), preHash)
			return Uncertain, board.NullLoc
		}
	}
	assertRestored(s.board.Hash(), preHash)
	return Lose, board.NullLoc
}

func scaleOrOne(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

func assertRestored(got, want board.Hash128) {
	if got != want {
		panic("vcf: board state not restored after FullSearch")
	}
}

// GetPV returns the principal variation proven by the last Win result:
// [m1, d1, m2, d2, ...] where each mi is a forcing four and each di is
// the unique forced defense.
func (s *Solver) GetPV() []board.Loc {
	return s.pv
}

// search implements the recursive four-threat search. forceLoc, when
// set, pins the attacker's next move to a single candidate instead of
// enumerating pts[].
func (s *Solver) search(bound int, forceLoc board.Loc) SearchResult {
	if s.nodeNum >= s.budgetCap {
		return Uncertain
	}

	key := s.positionKey()
	if cached, _, ok := s.hashTable.Get(key, bound); ok {
		return cached
	}

	var candidates []PT
	if forceLoc != board.NullLoc {
		for _, pt := range s.pts {
			if pt.Loc1 == forceLoc {
				candidates = append(candidates, pt)
			}
		}
	} else {
		candidates = append([]PT(nil), s.pts...)
	}

	for _, pt := range candidates {
		if s.nodeNum >= s.budgetCap {
			return Uncertain
		}
		s.nodeNum++

		pr, nextForce := s.playTwo(pt)
		switch pr {
		case prWin:
			// only the attacking stone was played: the position is
			// already won before any defense is possible.
			s.pv = append([]board.Loc{pt.Loc1, board.NullLoc}, s.pv...)
			s.undo(pt.Loc1)
			s.rebuildThreats()
			s.hashTable.Set(key, Win, bound, pt.Loc1)
			return Win
		case prLose:
			// playTwo already restored the board for this candidate.
			continue
		default:
			decrement := normalDecrease
			switch pr {
			case prFourWithThree:
				decrement += 0 // cheapest: the attack keeps generating threats
			case prFourWithTwo:
				decrement += noThreeDecrease - normalDecrease
			case prFourWithoutTwo:
				decrement += noTwoDecrease - normalDecrease
			}
			childBound := bound - decrement
			if childBound > 0 {
				sub := s.search(childBound, nextForce)
				if sub == Win {
					s.pv = append([]board.Loc{pt.Loc1, pt.Loc2}, s.pv...)
					s.undo(pt.Loc2)
					s.undo(pt.Loc1)
					s.rebuildThreats()
					s.hashTable.Set(key, Win, bound, pt.Loc1)
					return Win
				}
			}
			s.undo(pt.Loc2)
			s.undo(pt.Loc1)
			s.rebuildThreats()
		}
	}

	if s.nodeNum >= s.budgetCap {
		return Uncertain
	}
	s.hashTable.Set(key, Lose, bound, board.NullLoc)
	return Lose
}

// playTwo plays the attacker's four at pt.Loc1 and, unless that move
// already wins outright, the opponent's forced reply at pt.Loc2,
// classifying the outcome. The caller is responsible for undoing
// whatever playTwo leaves on the board: both stones on prFourWith*,
// just pt.Loc1 on prWin, nothing on prLose.
func (s *Solver) playTwo(pt PT) (playResult, board.Loc) {
	opp := board.Opponent(s.attacker)

	if s.isForbidden(pt.Loc1, s.attacker) {
		return prLose, board.NullLoc
	}
	s.play(s.attacker, pt.Loc1)
	s.rebuildThreats()

	fwd, bwd := s.shape.Extensions(pt.Loc1, pt.Dir, s.attacker)
	doubleOpen := fwd != board.NullLoc && bwd != board.NullLoc
	if s.shape.IsMyFive(pt.Loc1, pt.Dir, s.attacker) || doubleOpen || s.shape.CountFours(pt.Loc1, s.attacker) >= 2 {
		return prWin, board.NullLoc
	}

	// single-end four: the opponent's only legal response is to block
	// the completion cell.
	if pt.Loc2 == board.NullLoc || s.board.At(pt.Loc2) != board.Empty {
		s.undo(pt.Loc1)
		s.rebuildThreats()
		return prLose, board.NullLoc
	}
	s.play(opp, pt.Loc2)
	s.rebuildThreats()

	if s.shape.AnyDirection(pt.Loc2, opp, s.shape.IsMyFive) {
		// the forced defense accidentally completes the defender's
		// own five: the attack backfires.
		s.undo(pt.Loc2)
		s.undo(pt.Loc1)
		s.rebuildThreats()
		return prLose, board.NullLoc
	}

	hasThree, hasTwo := false, false
	for d := 0; d < 4; d++ {
		if d == pt.Dir {
			continue
		}
		if s.shape.IsMyThree(pt.Loc1, d, s.attacker) {
			hasThree = true
		}
		if s.shape.IsMyTwo(pt.Loc1, d, s.attacker) {
			hasTwo = true
		}
	}
	switch {
	case hasThree:
		return prFourWithThree, board.NullLoc
	case hasTwo:
		return prFourWithTwo, board.NullLoc
	default:
		return prFourWithoutTwo, board.NullLoc
	}
}

// isForbidden reports whether color playing at loc is illegal under
// the solver's rule (Renju overline / double-three / double-four,
// black only).
func (s *Solver) isForbidden(loc board.Loc, color board.Color) bool {
	if s.rule != board.Renju || color != board.Black {
		return false
	}
	s.play(color, loc)
	threes, fours, overline := 0, 0, false
	for d := 0; d < 4; d++ {
		if s.shape.At(loc, d, color).Length() >= 6 {
			overline = true
		}
		if s.shape.IsMyThree(loc, d, color) {
			threes++
		}
		if s.shape.IsMyFour(loc, d, color) {
			fours++
		}
	}
	s.undo(loc)
	return overline || threes >= 2 || fours >= 2
}
