package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/othello/game"
	"github.com/pkg/errors"
)

// ToDot renders the tree down to maxDepth (0 means the whole tree) in the
// Graphviz dot language.
func (t *MCTS) ToDot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	type item struct {
		n     Naughty
		depth int
	}
	width := t.nodes[Root].state.Rays().Width()
	queue := []item{{Root, 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		n := t.nodeFromNaughty(it.n)
		if err := g.AddNode("mcts", dotName(it.n), dotAttrs(n, width)); err != nil {
			return "", errors.Wrapf(err, "adding node %d", it.n)
		}
		if it.n != Root {
			if err := g.AddEdge(dotName(n.parent), dotName(it.n), true, nil); err != nil {
				return "", errors.Wrapf(err, "adding edge to %d", it.n)
			}
		}
		if maxDepth > 0 && it.depth >= maxDepth {
			continue
		}
		for _, kid := range t.children[it.n] {
			queue = append(queue, item{kid, it.depth + 1})
		}
	}
	return g.String(), nil
}

func dotName(n Naughty) string { return fmt.Sprintf("n%d", n) }

func dotAttrs(n *Node, width int) map[string]string {
	move := "root"
	if n.Move() != game.NoMove {
		move = game.MoveToCoord(n.Move(), width)
	}
	attrs := map[string]string{
		"label": fmt.Sprintf("\"%s %v\\n%d/%d\"", move, n.state.Turn(), n.wins, n.visits),
	}
	switch {
	case !n.IsDecision():
		attrs["shape"] = "box"
	case n.status == Exhausted:
		attrs["style"] = "filled"
		attrs["fillcolor"] = "grey"
	}
	return attrs
}
