// Package render turns a search tree or a single position into a visual
// artifact: a Graphviz DOT description of a (sub)tree, or a rasterized PNG
// of a board. Neither is load-bearing for search itself; both exist
// purely as debugging aids, the same role the teacher's plotting code
// played around its own tree.
package render

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/corridors/engine/board"
	"github.com/corridors/engine/mcts"
)

// TreeOptions controls how much of a tree DOT renders.
type TreeOptions struct {
	// MaxDepth bounds how many levels below the root are emitted. Zero
	// means root only; a negative value means unbounded.
	MaxDepth int
	// MinVisits omits any subtree rooted at a node visited fewer times
	// than this, keeping large trees readable.
	MinVisits uint32
}

// Tree renders node and its descendants (subject to opts) as a Graphviz
// DOT digraph. Each node is labelled with the move that produced it, its
// visit count, and its average equity from its own perspective.
func Tree(root *mcts.Node, opts TreeOptions) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("tree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	id := 0
	var walk func(nd *mcts.Node, depth int) string
	walk = func(nd *mcts.Node, depth int) string {
		name := fmt.Sprintf("n%d", id)
		id++

		label := nodeLabel(nd)
		if err := g.AddNode("tree", name, map[string]string{"label": quote(label)}); err != nil {
			return name
		}

		if opts.MaxDepth >= 0 && depth >= opts.MaxDepth {
			return name
		}
		for _, child := range nd.Children() {
			if child.Visits() < opts.MinVisits {
				continue
			}
			childName := walk(child, depth+1)
			_ = g.AddEdge(name, childName, true, nil)
		}
		return name
	}
	walk(root, 0)

	return g.String(), nil
}

func nodeLabel(nd *mcts.Node) string {
	return fmt.Sprintf("%s\\nn=%d q=%.3f", moveLabel(nd), nd.Visits(), nd.AverageValue())
}

func moveLabel(nd *mcts.Node) string {
	if !nd.HasMove() {
		return "root"
	}
	return board.ActionText(nd.Move())
}

func quote(s string) string {
	return `"` + s + `"`
}
