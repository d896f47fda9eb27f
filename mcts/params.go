package mcts

import (
	"bufio"
	"log"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Params bundles the PUCT selection knobs. Zero-value Params is not
// usable; use DefaultParams.
type Params struct {
	ExpandFactor float64
	Puct         float64
	PuctPow      float64
	PuctBase     float64
	FpuReduction float64
	PolicyTemp   float64

	// RootNoise mixes Dirichlet exploration noise into the root's
	// child policy on every FullSearch call; 0 disables it. Intended
	// for self-play style usage, not for competitive play.
	RootNoise RootNoiseEpsilon
}

// DefaultParams mirrors the reference tuning: a loose node-expansion
// cap per revisit, shallow puct growth, and a modest FPU penalty for
// unvisited children.
func DefaultParams() Params {
	return Params{
		ExpandFactor: 64,
		Puct:         1.5,
		PuctPow:      0.5,
		PuctBase:     19652,
		FpuReduction: 0.25,
		PolicyTemp:   1,
	}
}

// LoadParamFile overwrites p in place from a text file holding six
// name/value pairs in a fixed sequence:
//
//	expandFactor <float>
//	puct <float>
//	puctPow <float>
//	puctBase <float>
//	fpuReduction <float>
//	policyTemp <float>
//
// A missing file is not an error (the caller keeps its current
// params); a name mismatch anywhere in the sequence aborts the load
// and logs which name was expected, leaving p untouched — the same forgiving, log-and-return policy the rest of
// this package's config loading follows.
func (p *Params) LoadParamFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "mcts: open param file")
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	next := *p
	fields := []struct {
		name string
		dst  *float64
	}{
		{"expandFactor", &next.ExpandFactor},
		{"puct", &next.Puct},
		{"puctPow", &next.PuctPow},
		{"puctBase", &next.PuctBase},
		{"fpuReduction", &next.FpuReduction},
		{"policyTemp", &next.PolicyTemp},
	}

	for i, field := range fields {
		name, ok := nextToken(scanner)
		if !ok {
			log.Printf("mcts: param file %s ended before field %d (%s)", path, i+1, field.name)
			return nil
		}
		if name != field.name {
			log.Printf("mcts: param file %s: wrong parameter name %d: got %q, want %q", path, i+1, name, field.name)
			return nil
		}
		value, ok := nextToken(scanner)
		if !ok {
			log.Printf("mcts: param file %s ended before value for %s", path, field.name)
			return nil
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			log.Printf("mcts: param file %s: bad value for %s: %v", path, field.name, err)
			return nil
		}
		*field.dst = v
	}
	*p = next
	return nil
}

func nextToken(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}
