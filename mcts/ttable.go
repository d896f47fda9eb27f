package mcts

import (
	"math/rand"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

const ttableCapacity = 1 << 18

var zobristNextPlayer [3]board.Hash128

func init() {
	rng := rand.New(rand.NewSource(0x5EEDC0DE))
	for i := range zobristNextPlayer {
		zobristNextPlayer[i] = board.Hash128{Hi: rng.Uint64(), Lo: rng.Uint64()}
	}
}

// ttableEntry freezes exactly what a freshly-evaluated Node needs to
// skip re-running the Inferencer: its policy, legal-child count, the
// evaluation's own WRtotal (the value at visits==1, before any
// backup), and its sureResult.
type ttableEntry struct {
	valid            bool
	hash             board.Hash128
	sureResult       SureResult
	wrAtOneVisit     nnue.ValueSum
	children         [MaxChildren]childEdge
	childrenNum      int
	legalChildrenNum int
}

// Table caches NN-evaluated node shells, keyed on position hash XOR
// the side to move. A hit lets expansion skip the Inferencer call
// entirely for a transposed position.
type Table struct {
	entries []ttableEntry
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: make([]ttableEntry, ttableCapacity)}
}

func (t *Table) slot(h board.Hash128) *ttableEntry {
	return &t.entries[h.Lo%ttableCapacity]
}

// Get reports whether hash has a cached node shell and, if so,
// populates node from it (at visits==1, as if freshly constructed).
func (t *Table) Get(hash board.Hash128, node *Node) bool {
	e := t.slot(hash)
	if !e.valid || e.hash != hash {
		return false
	}
	node.sureResult = e.sureResult
	node.WRtotal = e.wrAtOneVisit
	node.visits = 1
	node.children = e.children
	node.childrenNum = e.childrenNum
	node.legalChildrenNum = e.legalChildrenNum
	return true
}

// Set stores (or displaces) node's shell under hash.
func (t *Table) Set(hash board.Hash128, node *Node) {
	*t.slot(hash) = ttableEntry{
		valid:            true,
		hash:             hash,
		sureResult:       node.sureResult,
		wrAtOneVisit:     node.WRtotal,
		children:         node.children,
		childrenNum:      node.childrenNum,
		legalChildrenNum: node.legalChildrenNum,
	}
}
