package mcts

import (
	"math"
	"sort"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/nnuecore/gomoku/board"
	"github.com/nnuecore/gomoku/nnue"
	"github.com/nnuecore/gomoku/shape"
	"github.com/nnuecore/gomoku/vcf"
)

// rootVCFNodes/rootVCFLayers bound the exhaustive VCF probe run at
// the root of fullSearch: generous, since it only runs once per call.
const (
	rootVCFNodes  = 10000
	rootVCFLayers = 10
)

// childVCFNodes/childVCFLayers bound the cheap VCF probe run at every
// new-child expansion, to keep tree growth affordable.
const (
	childVCFNodes  = 5000
	childVCFLayers = 4
)

// Tree is a single-threaded PUCT search driver coupled to a VCF
// solver pair and an NN evaluator. Each solver keeps its own board and
// shape index, which playForSearch/undoForSearch keep in step with the
// tree's. It owns the position outright: SetBoard/Play/Undo are
// the only way to change it from the outside.
type Tree struct {
	rule  board.Rule
	board *board.Board
	shape *shape.Index

	vcfSolver [2]*vcf.Solver // index 0: Black attacks, index 1: White attacks
	evaluator *nnue.Evaluator
	ttable    *Table

	params Params
	root   *Node

	// terminate is a cooperative abort flag: a caller running FullSearch
	// on one goroutine can set it from another to cut a long search
	// short. search checks it once per selection-loop iteration, a
	// point where playForSearch/undoForSearch are always balanced, so
	// unwinding there never leaves the board or tree inconsistent.
	terminate atomic.Bool
}

// NewTree returns an empty-board tree ready to search under rule,
// evaluating leaves with infer.
func NewTree(rule board.Rule, infer nnue.Inferencer) *Tree {
	t := &Tree{
		rule:      rule,
		board:     board.NewBoard(),
		shape:     shape.NewIndex(),
		evaluator: nnue.NewEvaluator(infer),
		ttable:    NewTable(),
		params:    DefaultParams(),
	}
	t.vcfSolver[0] = vcf.NewSolver(rule, board.Black)
	t.vcfSolver[1] = vcf.NewSolver(rule, board.White)
	return t
}

// SetParams overwrites the PUCT tuning in place; safe between
// searches, not safe mid-search.
func (t *Tree) SetParams(p Params) { t.params = p }

// SetTerminate sets or clears the cooperative abort flag. Safe to call
// from any goroutine while FullSearch is running on another; the
// running search notices within one selection-loop iteration and
// returns its best move so far instead of exhausting nodeBudget.
func (t *Tree) SetTerminate(v bool) { t.terminate.Store(v) }

// ClearBoard resets the tree to an empty board with no history.
func (t *Tree) ClearBoard() {
	t.board = board.NewBoard()
	t.shape = shape.NewIndex()
	t.evaluator.Clear()
	t.vcfSolver[0] = vcf.NewSolver(t.rule, board.Black)
	t.vcfSolver[1] = vcf.NewSolver(t.rule, board.White)
	t.root = nil
}

// SetBoard replaces the whole position (row-major cells, length
// board.MaxBS*board.MaxBS) and discards the tree.
func (t *Tree) SetBoard(cells []board.Color) error {
	t.ClearBoard()
	for loc, c := range cells {
		if c == board.Empty {
			continue
		}
		if err := t.playForSearch(c, board.Loc(loc)); err != nil {
			return err
		}
	}
	return nil
}

// Play applies color's move at loc to the live position, reusing the
// matching child subtree as the new root when one exists.
func (t *Tree) Play(color board.Color, loc board.Loc) error {
	if err := t.playForSearch(color, loc); err != nil {
		return err
	}

	if t.root == nil {
		return nil
	}
	if t.root.sureResult != Uncertain || t.root.nextColor != color {
		t.root = nil
		return nil
	}
	for i := 0; i < t.root.childrenNum; i++ {
		if t.root.children[i].loc != loc {
			continue
		}
		next := t.root.children[i].child
		if next == nil || next.sureResult != Uncertain {
			t.root = nil
			return nil
		}
		t.root = next
		return nil
	}
	t.root = nil
	return nil
}

// Undo removes the stone at loc and discards the whole tree: a
// retraction can resurrect lines the tree pruned as lost, so no
// subtree can be trusted to survive it.
func (t *Tree) Undo(loc board.Loc) error {
	if err := t.undoForSearch(loc); err != nil {
		return err
	}
	t.root = nil
	return nil
}

func (t *Tree) playForSearch(color board.Color, loc board.Loc) error {
	if err := t.board.Play(color, loc); err != nil {
		return err
	}
	t.shape.Place(color, loc)
	t.evaluator.Play(color, loc)
	if err := t.vcfSolver[0].PlayOutside(loc, color, 0, false); err != nil {
		return errors.Wrap(err, "mcts: vcf solver 0 out of sync")
	}
	if err := t.vcfSolver[1].PlayOutside(loc, color, 0, false); err != nil {
		return errors.Wrap(err, "mcts: vcf solver 1 out of sync")
	}
	return nil
}

func (t *Tree) undoForSearch(loc board.Loc) error {
	color := t.board.At(loc)
	if err := t.board.Undo(loc); err != nil {
		return err
	}
	t.shape.Remove(loc)
	t.evaluator.Undo(color, loc)
	if err := t.vcfSolver[0].UndoOutside(loc, 0); err != nil {
		return errors.Wrap(err, "mcts: vcf solver 0 out of sync")
	}
	if err := t.vcfSolver[1].UndoOutside(loc, 0); err != nil {
		return errors.Wrap(err, "mcts: vcf solver 1 out of sync")
	}
	return nil
}

// FullSearch runs the root VCF fast-path, and failing a proven win,
// spends up to nodeBudget simulations of PUCT search. It returns the
// move to play, and the position's value from the mover's
// perspective.
func (t *Tree) FullSearch(color board.Color, nodeBudget int64) (bestMove board.Loc, value float64) {
	t.terminate.Store(false)

	attacker := attackerIndex(color)
	result, vcfLoc := t.vcfSolver[attacker].FullSearch(rootVCFNodes, rootVCFLayers)
	if result == vcf.Win {
		return vcfLoc, 1
	}

	if t.root == nil || t.root.nextColor != color {
		t.root = t.newNode(color)
	}
	if t.params.RootNoise > 0 {
		ApplyRootNoise(t.root, t.params.RootNoise)
	}
	t.search(t.root, nodeBudget, true)

	return t.bestRootMove(), t.RootValue()
}

func attackerIndex(color board.Color) int {
	if color == board.Black {
		return 0
	}
	return 1
}

// RootVisit returns the root's visit count, 0 if there is no root.
func (t *Tree) RootVisit() int64 {
	if t.root == nil {
		return 0
	}
	return t.root.visits
}

// RootValue returns the root's win-rate estimate from the mover's
// perspective, 0 if there is no root.
func (t *Tree) RootValue() float64 {
	if t.root == nil {
		return 0
	}
	return (t.root.WRtotal.Win - t.root.WRtotal.Loss) / float64(t.root.visits)
}

func (t *Tree) bestRootMove() board.Loc {
	if t.root == nil || t.root.legalChildrenNum <= 0 {
		return board.NullLoc
	}
	if t.root.childrenNum <= 0 {
		return t.root.children[0].loc
	}
	best := board.NullLoc
	var bestVisits int64 = -1
	for i := 0; i < t.root.childrenNum; i++ {
		c := t.root.children[i].child
		if c != nil && c.visits > bestVisits {
			bestVisits = c.visits
			best = t.root.children[i].loc
		}
	}
	return best
}

// searchStep carries the delta a recursive search call contributed to
// its caller, so the caller can fold it into its own node's totals.
type searchStep struct {
	newVisits int64
	wrChange  nnue.ValueSum
}

// search expands/descends node for up to remainVisits simulations (or
// until the whole node budget is proven certain), returning the
// aggregate visit/value delta this call produced.
func (t *Tree) search(node *Node, remainVisits int64, isRoot bool) searchStep {
	if !isRoot {
		visitCap := int64(t.params.ExpandFactor*float64(node.visits)) + 1
		if remainVisits > visitCap {
			remainVisits = visitCap
		}
	}

	if node.sureResult != Uncertain {
		step := searchStep{newVisits: remainVisits, wrChange: sureResultValue(node.sureResult).Scale(float64(remainVisits))}
		node.visits += remainVisits
		node.WRtotal = node.WRtotal.Add(step.wrChange)
		return step
	}

	color := node.nextColor
	opp := board.Opponent(color)
	var total searchStep

	for remainVisits > 0 {
		if t.terminate.Load() {
			break
		}

		childID := t.selectChildIDToSearch(node)
		if childID < 0 {
			break
		}

		var childStep searchStep
		if childID >= node.childrenNum {
			loc := node.children[childID].loc
			node.childrenNum++

			sr := t.checkSureResult(loc, color)
			var child *Node
			if sr != Uncertain {
				child = newTerminalNode(sr, opp)
			} else {
				if err := t.playForSearch(color, loc); err != nil {
					break
				}
				child = t.newNode(opp)
				_ = t.undoForSearch(loc)
			}
			node.children[childID].child = child
			childStep = searchStep{newVisits: 1, wrChange: child.WRtotal}
		} else {
			loc := node.children[childID].loc
			if err := t.playForSearch(color, loc); err != nil {
				break
			}
			childStep = t.search(node.children[childID].child, remainVisits, false)
			_ = t.undoForSearch(loc)
		}

		remainVisits -= childStep.newVisits
		node.visits += childStep.newVisits
		node.WRtotal = node.WRtotal.Add(childStep.wrChange.Inverse())
		total.newVisits += childStep.newVisits
		total.wrChange = total.wrChange.Add(childStep.wrChange.Inverse())
	}

	return total
}

// checkSureResult asks the opponent's VCF solver whether color's
// candidate move immediately hands the opponent a forced win on
// their next four-threat sequence; a cheap, node-capped probe run
// from the defender's own solver instance.
func (t *Tree) checkSureResult(loc board.Loc, color board.Color) SureResult {
	opp := board.Opponent(color)
	solver := t.vcfSolver[attackerIndex(opp)]

	if err := solver.PlayOutside(loc, color, 0, false); err != nil {
		return Uncertain
	}
	result, _ := solver.FullSearch(childVCFNodes, childVCFLayers)
	_ = solver.UndoOutside(loc, 0)

	if result == vcf.Win {
		return Win
	}
	return Uncertain
}

// newNode builds a freshly-evaluated node for nextColor to move at
// the tree's current board position, consulting the ttable first.
func (t *Tree) newNode(nextColor board.Color) *Node {
	node := &Node{nextColor: nextColor, visits: 1}

	key := t.board.Hash().XOR(zobristNextPlayer[nextColor])
	if t.ttable.Get(key, node) {
		return node
	}

	gf := t.globalFeatures(nextColor)
	policy := make([]nnue.PolicyType, board.MaxBS*board.MaxBS)
	node.WRtotal = t.evaluator.EvaluateFull(gf, nextColor, policy)

	for loc := board.Loc(0); loc < board.MaxBS*board.MaxBS; loc++ {
		if t.board.At(loc) != board.Empty {
			policy[loc] = nnue.MinPolicy
		}
	}

	order := topKByPolicy(policy, MaxChildren)
	node.legalChildrenNum = MaxChildren
	for i, loc := range order {
		if t.board.At(loc) != board.Empty {
			node.legalChildrenNum = i
			break
		}
	}

	if node.legalChildrenNum == 0 {
		node.sureResult = Draw
		node.WRtotal = sureResultValue(Draw)
		t.ttable.Set(key, node)
		return node
	}

	softmax(policy, order[:node.legalChildrenNum], t.params.PolicyTemp)
	for i := 0; i < node.legalChildrenNum; i++ {
		node.children[i].loc = order[i]
		node.children[i].policy = nnue.Quantize(float32(policy[order[i]]))
	}

	t.ttable.Set(key, node)
	return node
}

func (t *Tree) globalFeatures(nextColor board.Color) [nnue.GlobalFeatureNum]float32 {
	var gf [nnue.GlobalFeatureNum]float32

	// gf[3]/gf[4]: whether the side to move itself already holds a
	// proven VCF win is never probed here (it would already have been
	// caught by the root fast-path or by checkSureResult on the move
	// that led to this node), so this slot always reads "no".
	gf[3] = 1
	gf[4] = 0

	opp := board.Opponent(nextColor)
	result, _ := t.vcfSolver[attackerIndex(opp)].FullSearch(childVCFNodes, childVCFLayers)
	switch result {
	case vcf.Win:
		gf[5] = 1
	case vcf.Lose:
		gf[6] = 1
	default:
		gf[7] = 1
	}
	return gf
}

// topKByPolicy returns the k cells with the highest raw policy logit,
// descending.
func topKByPolicy(policy []nnue.PolicyType, k int) []board.Loc {
	idx := make([]board.Loc, len(policy))
	for i := range idx {
		idx[i] = board.Loc(i)
	}
	sort.Slice(idx, func(i, j int) bool { return policy[idx[i]] > policy[idx[j]] })
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

// softmax applies a temperature-scaled softmax to policy restricted
// to locs, writing the normalized probabilities back into policy in
// place. Runs in float32, matching the precision a real policy head
// would produce.
func softmax(policy []nnue.PolicyType, locs []board.Loc, temp float64) {
	if temp <= 0 {
		temp = 1
	}
	invTemp := float32(1 / temp)

	maxP := policy[locs[0]]
	for _, l := range locs {
		if policy[l] > maxP {
			maxP = policy[l]
		}
	}
	var sum float32
	exps := make([]float32, len(locs))
	for i, l := range locs {
		exps[i] = math32.Exp(float32(policy[l]-maxP) * invTemp)
		sum += exps[i]
	}
	for i, l := range locs {
		policy[l] = nnue.PolicyType(exps[i] / sum)
	}
}

// selectChildIDToSearch runs one PUCT selection pass over node's
// already-expanded children plus (if any remain) the single
// best-policy unexpanded candidate, using first-play urgency for the
// latter.
func (t *Tree) selectChildIDToSearch(node *Node) int {
	if node.legalChildrenNum == 0 {
		return -1
	}

	totalVisit := float64(node.visits)
	puctFactor := puctFactor(totalVisit, t.params.Puct, t.params.PuctPow, t.params.PuctBase)
	parentDraw := node.WRtotal.Draw / totalVisit

	bestID := -1
	bestValue := math.Inf(-1)
	totalChildPolicy := 0.0

	for i := 0; i < node.childrenNum; i++ {
		child := node.children[i].child
		visit := float64(child.visits)
		value := -(child.WRtotal.Win - child.WRtotal.Loss) / visit
		draw := child.WRtotal.Draw / visit
		policy := float64(node.children[i].policy) * nnue.PolicyQuantInv
		totalChildPolicy += policy

		sv := selectionValue(puctFactor, value, draw, parentDraw, visit, policy)
		if sv > bestValue {
			bestValue = sv
			bestID = i
		}
	}

	if node.childrenNum < node.legalChildrenNum {
		value := (node.WRtotal.Win-node.WRtotal.Loss)/totalVisit - math.Sqrt(totalChildPolicy)*t.params.FpuReduction
		policy := float64(node.children[node.childrenNum].policy) * nnue.PolicyQuantInv
		sv := selectionValue(puctFactor, value, parentDraw, parentDraw, 0, policy)
		if sv > bestValue {
			bestID = node.childrenNum
		}
	}

	return bestID
}

func puctFactor(totalVisit, puct, puctPow, puctBase float64) float64 {
	return puct * math.Pow((totalVisit+puctBase)/puctBase, puctPow)
}

func selectionValue(puctFactor, value, draw, parentDraw, childVisit, childPolicy float64) float64 {
	return value - 0.5*draw*(1-parentDraw) + puctFactor*childPolicy/(childVisit+1)
}
