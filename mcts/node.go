// Package mcts drives a single-threaded PUCT search over board
// positions, using an injected nnue.Inferencer for leaf evaluation and
// a pair of vcf.Solvers (one per attacking color) as a forced-win
// oracle both at expansion time and as a root fast-path.
package mcts

import (
	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
)

// MaxChildren bounds how many candidate moves a node keeps: only the
// top MaxChildren cells by raw policy logit are ever considered,
// capping both memory and the cost of a single selection pass.
const MaxChildren = 32

// SureResult is a proven (non-simulated) terminal outcome, either
// from the VCF oracle or from running out of empty cells.
type SureResult uint8

const (
	Uncertain SureResult = iota
	Win
	Lose
	Draw
)

func sureResultValue(sr SureResult) nnue.ValueSum {
	switch sr {
	case Win:
		return nnue.ValueSum{Win: 1}
	case Lose:
		return nnue.ValueSum{Loss: 1}
	case Draw:
		return nnue.ValueSum{Draw: 1}
	default:
		return nnue.ValueSum{}
	}
}

// childEdge is one candidate move out of a node, sorted (within
// Node.children) by descending raw policy at construction time.
type childEdge struct {
	loc    board.Loc
	policy uint16 // quantized, see nnue.Quantize
	child  *Node
}

// Node is one position in the search tree. Children beyond
// legalChildrenNum don't exist on the real board (occupied cells sort
// to the bottom of the policy-ranked candidate list and are never
// expanded); children beyond childrenNum exist but haven't been
// visited yet.
type Node struct {
	nextColor  board.Color
	sureResult SureResult

	visits  int64
	WRtotal nnue.ValueSum

	children         [MaxChildren]childEdge
	childrenNum      int
	legalChildrenNum int
}

// newTerminalNode builds a leaf whose outcome is already proven, with
// no further children to expand.
func newTerminalNode(sureResult SureResult, nextColor board.Color) *Node {
	return &Node{
		nextColor:  nextColor,
		sureResult: sureResult,
		visits:     1,
		WRtotal:    sureResultValue(sureResult),
	}
}
