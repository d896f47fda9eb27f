package vcf

import "github.com/nnuecore/gomoku/board"

// hashTableCapacity is fixed; collisions displace the existing entry
// (lossy writes), correctness preserved by the full-hash compare on read.
const hashTableCapacity = 1 << 16

type vcfEntry struct {
	valid  bool
	hash   board.Hash128
	result SearchResult
	bound  int
	best   board.Loc
}

// HashTable caches VCF search results keyed on
// boardHash ⊕ ruleHash ⊕ colorHash (see Solver.positionKey).
type HashTable struct {
	entries [hashTableCapacity]vcfEntry
}

// NewHashTable returns an empty table.
func NewHashTable() *HashTable {
	return &HashTable{}
}

func (t *HashTable) slot(h board.Hash128) *vcfEntry {
	idx := h.Lo % hashTableCapacity
	return &t.entries[idx]
}

// Get returns a cached result usable for a search bounded by bound.
// A cached Win is always reusable (a forced win stays forced). A
// cached Lose is reusable only if it was itself proven under a bound
// at least as large as the one now requested.
func (t *HashTable) Get(h board.Hash128, bound int) (SearchResult, board.Loc, bool) {
	e := t.slot(h)
	if !e.valid || e.hash != h {
		return Uncertain, board.NullLoc, false
	}
	if e.result == Win {
		return Win, e.best, true
	}
	if e.result == Lose && e.bound >= bound {
		return Lose, board.NullLoc, true
	}
	return Uncertain, board.NullLoc, false
}

// Set stores (or displaces) an entry.
func (t *HashTable) Set(h board.Hash128, result SearchResult, bound int, best board.Loc) {
	*t.slot(h) = vcfEntry{valid: true, hash: h, result: result, bound: bound, best: best}
}
