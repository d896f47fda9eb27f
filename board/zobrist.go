package board

import "math/rand"

// Hash128 is a 128-bit value combined by XOR. It backs both the
// position hash carried by Board and the VCF solver's hash-table keys.
type Hash128 struct {
	Hi, Lo uint64
}

// XOR folds other into h and returns the result.
func (h Hash128) XOR(other Hash128) Hash128 {
	return Hash128{Hi: h.Hi ^ other.Hi, Lo: h.Lo ^ other.Lo}
}

func (h Hash128) IsZero() bool { return h.Hi == 0 && h.Lo == 0 }

// zobristSeed is fixed so that, given the same sequence of plays, the
// resulting hashes (and therefore search) are fully reproducible
// across runs.
const zobristSeed = 0x9E3779B97F4A7C15

var (
	// zobristLoc[color][loc] holds the per-(Color,Location) contribution,
	// indexed in compact coordinates.
	zobristLoc [3][MaxBS * MaxBS]Hash128
	// zobristNextPlayer holds the per-side-to-move contribution.
	zobristNextPlayer [3]Hash128
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for c := 0; c < 3; c++ {
		for l := 0; l < MaxBS*MaxBS; l++ {
			zobristLoc[c][l] = Hash128{Hi: rng.Uint64(), Lo: rng.Uint64()}
		}
		zobristNextPlayer[c] = Hash128{Hi: rng.Uint64(), Lo: rng.Uint64()}
	}
}

// ZobristLoc returns the Zobrist contribution of placing color at loc.
func ZobristLoc(c Color, loc Loc) Hash128 {
	return zobristLoc[c][loc]
}

// ZobristNextPlayer returns the Zobrist contribution of c being the
// side to move.
func ZobristNextPlayer(c Color) Hash128 {
	return zobristNextPlayer[c]
}
