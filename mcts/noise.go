package mcts

import (
	"time"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/nnuecore/gomoku/nnue"
)

// dirichletAlpha is the concentration parameter for root exploration
// noise; lower values produce spikier samples, favoring a handful of
// moves over a near-uniform spread across the legal set.
const dirichletAlpha = 0.3

// RootNoiseEpsilon is how much weight the Dirichlet sample carries
// against the network's own root policy (0 disables noise entirely).
type RootNoiseEpsilon float64

// ApplyRootNoise mixes Dirichlet(dirichletAlpha) noise into the root
// node's child policy in place, weighted by epsilon. It only makes
// sense to call this once, right after the root node is built and
// before any selection pass reads its children.
func ApplyRootNoise(node *Node, epsilon RootNoiseEpsilon) {
	if epsilon <= 0 || node.legalChildrenNum == 0 {
		return
	}

	alpha := make([]float64, node.legalChildrenNum)
	for i := range alpha {
		alpha[i] = dirichletAlpha
	}
	dist := distmv.NewDirichlet(alpha, distrand.NewSource(uint64(time.Now().UnixNano())))
	noise := dist.Rand(nil)

	for i := 0; i < node.legalChildrenNum; i++ {
		p := float64(node.children[i].policy) * nnue.PolicyQuantInv
		mixed := (1-float64(epsilon))*p + float64(epsilon)*noise[i]
		node.children[i].policy = nnue.Quantize(float32(mixed))
	}
}
