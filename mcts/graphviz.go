package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/nnuecore/gomoku/board"
)

// ExportGraph renders the current tree (down to maxDepth) as a
// Graphviz DOT document, for dumping a search to disk when a move
// choice needs to be inspected by hand.
func ExportGraph(t *Tree, maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("search"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	if t.root == nil {
		return g.String(), nil
	}

	id := 0
	var walk func(node *Node, parentName string, loc board.Loc, depth int)
	walk = func(node *Node, parentName string, loc board.Loc, depth int) {
		name := fmt.Sprintf("n%d", id)
		id++

		label := fmt.Sprintf("\"%v visits=%d wr=%.3f\"", node.nextColor, node.visits, (node.WRtotal.Win-node.WRtotal.Loss)/float64(node.visits))
		_ = g.AddNode("search", name, map[string]string{"label": label})
		if parentName != "" {
			x, y := loc.XY()
			edgeLabel := fmt.Sprintf("\"(%d,%d)\"", x, y)
			_ = g.AddEdge(parentName, name, true, map[string]string{"label": edgeLabel})
		}

		if depth >= maxDepth {
			return
		}
		for i := 0; i < node.childrenNum; i++ {
			if node.children[i].child != nil {
				walk(node.children[i].child, name, node.children[i].loc, depth+1)
			}
		}
	}
	walk(t.root, "", board.NullLoc, 0)

	return g.String(), nil
}
