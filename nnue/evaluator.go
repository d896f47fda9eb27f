package nnue

import "github.com/nnuecore/gomoku/board"

// Inferencer is the opaque neural evaluator contract. No concrete
// forward pass lives in this module: callers wire in a real network
// (or, in tests, a stub) that reads the accumulator and global
// features and returns a value plus a raw per-cell policy logit.
type Inferencer interface {
	EvaluateFull(acc *Accumulator, globalFeatures [GlobalFeatureNum]float32, color board.Color, policyOut []PolicyType) ValueSum
}

type moveCache struct {
	isUndo bool
	color  board.Color
	loc    board.Loc
}

func isContraryMove(a, b moveCache) bool {
	if a.loc != b.loc || a.color != b.color {
		return false
	}
	return a.isUndo != b.isUndo
}

// Evaluator wraps one Inferencer with the double-buffered accumulator
// scheme: a black-perspective and a white-perspective accumulator,
// each fed from its own pending move cache. Moves are queued by
// Play/Undo and only folded into an accumulator the next time that
// color's perspective is actually evaluated — an adjacent play/undo
// pair cancels out of the cache instead of touching the accumulator
// twice.
type Evaluator struct {
	infer Inferencer

	black *Accumulator
	white *Accumulator

	moveCacheB []moveCache
	moveCacheW []moveCache
}

// NewEvaluator returns an empty evaluator backed by infer.
func NewEvaluator(infer Inferencer) *Evaluator {
	e := &Evaluator{infer: infer}
	e.Clear()
	return e
}

// Clear discards both accumulators and every pending cache entry.
func (e *Evaluator) Clear() {
	e.black = NewAccumulator(board.Black)
	e.white = NewAccumulator(board.White)
	e.moveCacheB = e.moveCacheB[:0]
	e.moveCacheW = e.moveCacheW[:0]
}

// Play queues a stone placement for both perspectives.
func (e *Evaluator) Play(color board.Color, loc board.Loc) {
	e.addCache(false, color, loc)
}

// Undo queues the removal of a stone, the inverse of Play.
func (e *Evaluator) Undo(color board.Color, loc board.Loc) {
	e.addCache(true, color, loc)
}

func (e *Evaluator) addCache(isUndo bool, color board.Color, loc board.Loc) {
	entry := moveCache{isUndo: isUndo, color: color, loc: loc}

	if len(e.moveCacheB) == 0 || !isContraryMove(e.moveCacheB[len(e.moveCacheB)-1], entry) {
		e.moveCacheB = append(e.moveCacheB, entry)
	} else {
		e.moveCacheB = e.moveCacheB[:len(e.moveCacheB)-1]
	}

	if len(e.moveCacheW) == 0 || !isContraryMove(e.moveCacheW[len(e.moveCacheW)-1], entry) {
		e.moveCacheW = append(e.moveCacheW, entry)
	} else {
		e.moveCacheW = e.moveCacheW[:len(e.moveCacheW)-1]
	}
}

// flushBlack folds every pending move into the black accumulator and
// empties the cache. Black's canon already matches the absolute
// color, so moves are folded in unrelabeled.
func (e *Evaluator) flushBlack() {
	for _, mc := range e.moveCacheB {
		if mc.isUndo {
			e.black.Undo(mc.color, mc.loc)
		} else {
			e.black.Play(mc.color, mc.loc)
		}
	}
	e.moveCacheB = e.moveCacheB[:0]
}

// flushWhite mirrors flushBlack for the white-canon accumulator.
func (e *Evaluator) flushWhite() {
	for _, mc := range e.moveCacheW {
		if mc.isUndo {
			e.white.Undo(mc.color, mc.loc)
		} else {
			e.white.Play(mc.color, mc.loc)
		}
	}
	e.moveCacheW = e.moveCacheW[:0]
}

// EvaluateFull flushes the accumulator for color's perspective and
// runs the injected Inferencer against it.
func (e *Evaluator) EvaluateFull(globalFeatures [GlobalFeatureNum]float32, color board.Color, policyOut []PolicyType) ValueSum {
	if color == board.Black {
		e.flushBlack()
		return e.infer.EvaluateFull(e.black, globalFeatures, color, policyOut)
	}
	e.flushWhite()
	return e.infer.EvaluateFull(e.white, globalFeatures, color, policyOut)
}
