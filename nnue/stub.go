package nnue

import "github.com/nnuecore/gomoku/board"

// StubInferencer is a deterministic, arithmetic-free Inferencer for
// tests: it hands back a fixed value and a uniform policy over every
// empty cell, counted straight off the accumulator's own plane so
// tests can assert on move bookkeeping without a real network.
type StubInferencer struct {
	Value ValueSum
}

// EvaluateFull fills policyOut with a uniform logit at every cell the
// accumulator doesn't mark occupied (by either plane) and MinPolicy
// everywhere else. A cell is occupied, own or opponent alike, exactly
// where Difference is nonzero.
func (s StubInferencer) EvaluateFull(acc *Accumulator, _ [GlobalFeatureNum]float32, _ board.Color, policyOut []PolicyType) ValueSum {
	diff := acc.Difference()
	for i := range policyOut {
		if diff[i] != 0 {
			policyOut[i] = MinPolicy
		} else {
			policyOut[i] = 0
		}
	}
	return s.Value
}
