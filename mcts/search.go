package mcts

import (
	"github.com/chewxy/math32"
	"github.com/othello/game"
	"gonum.org/v1/gonum/floats"
)

/*
Here lies the search itself, while node.go and tree.go handle the data structure stuff.

One iteration is:
	SELECT and EXPAND (a single step), ROLLOUT, BACKPROPAGATE.

Besides the statistics every node tracks how many of its decision children
still have something to explore. Once that drops to zero the node is exhausted
and its parent is told, so the search can stop early when the whole remaining
game tree has been visited.
*/

// Iterate runs one select/expand, rollout and backpropagation round. It
// returns false if the tree is exhausted and nothing was done.
func (t *MCTS) Iterate() bool {
	leaf, ok := t.SelectExpand()
	if !ok {
		return false
	}
	winner := t.Rollout(leaf)
	t.Backpropagate(leaf, winner)
	t.playouts++
	return true
}

// SelectExpand walks down from the root along the best UCT values until it
// reaches a node without children, expands it and returns one of its new
// decision children at random.
//
// When a node has nothing left to explore it is marked exhausted and the walk
// resumes from its parent. Reaching that point at the root means the whole
// tree is exhausted, and false is returned.
func (t *MCTS) SelectExpand() (Naughty, bool) {
	current := Root
	for {
		n := t.nodeFromNaughty(current)
		switch n.status {
		case Unexpanded:
			if !n.IsDecision() {
				break
			}
			if eligible := t.expand(current); len(eligible) > 0 {
				pick := eligible[t.rand.Intn(len(eligible))]
				t.log("expanded %v, picked %v of %d", current, pick, len(eligible))
				return pick, true
			}
		case Expanded:
			if next, ok := t.selectChild(current); ok {
				current = next
				continue
			}
		}

		// nothing to explore below current
		t.exhaust(current)
		parent := t.nodeFromNaughty(current).parent
		if !parent.isValid() {
			t.log("root exhausted after %d playouts", t.playouts)
			return nilNode, false
		}
		current = parent
	}
}

// selectChild picks the explorable child with the highest UCT value. Ties go
// to the first child found.
func (t *MCTS) selectChild(of Naughty) (Naughty, bool) {
	best := nilNode
	bestValue := math32.Inf(-1)
	for _, kid := range t.children[of] {
		child := t.nodeFromNaughty(kid)
		if !child.CanExplore() {
			continue
		}
		if v := t.uctValue(kid); v > bestValue {
			bestValue = v
			best = kid
		}
	}
	return best, best.isValid()
}

// uctValue is the UCT value of the node, using the parent's visit count (or 1
// for the root).
func (t *MCTS) uctValue(of Naughty) float32 {
	n := t.nodeFromNaughty(of)
	parentVisits := uint32(1)
	if n.parent.isValid() {
		parentVisits = t.nodeFromNaughty(n.parent).visits
	}
	return n.uct(parentVisits, t.Exploration)
}

// expand materialises every child of the node and returns those that are
// decision nodes.
func (t *MCTS) expand(of Naughty) (eligible []Naughty) {
	it := t.nodeFromNaughty(of).state.Successors()
	var kids []Naughty
	for next, ok := it.Next(); ok; next, ok = it.Next() {
		kid := t.alloc(next, of)
		kids = append(kids, kid)
		if !next.IsTerminal() {
			eligible = append(eligible, kid)
		}
	}
	t.children[of] = kids

	// alloc may have moved the arena
	n := t.nodeFromNaughty(of)
	n.status = Expanded
	n.eligible = len(eligible)
	return eligible
}

// exhaust marks the node as exhausted and takes it off its parent's count of
// eligible children. A parent whose count reaches zero is exhausted in turn.
func (t *MCTS) exhaust(of Naughty) {
	for of.isValid() {
		n := t.nodeFromNaughty(of)
		if n.status == Exhausted {
			return
		}
		n.status = Exhausted
		if !n.parent.isValid() {
			return
		}
		parent := t.nodeFromNaughty(n.parent)
		parent.eligible--
		if parent.eligible > 0 {
			return
		}
		of = n.parent
	}
}

// Rollout plays uniformly random moves from the node's position until the
// game ends, and returns the winner. The tree is not touched.
func (t *MCTS) Rollout(from Naughty) game.Cell {
	sim := t.nodeFromNaughty(from).state
	for !sim.IsTerminal() {
		next := sim.NextStates()
		if len(next) == 0 {
			break
		}
		sim = next[t.rand.Intn(len(next))]
	}
	return sim.Winner()
}

// Backpropagate records a rollout result on the node and every ancestor.
func (t *MCTS) Backpropagate(from Naughty, winner game.Cell) {
	for n := from; n.isValid(); {
		node := t.nodeFromNaughty(n)
		node.visits++
		if node.state.Turn() == winner {
			node.wins++
		}
		n = node.parent
	}
}

// BestChild returns the root's child that is best for ai. Ties go to the first
// child. It returns false if the root was never expanded or has no children.
func (t *MCTS) BestChild(ai game.Cell) (Naughty, bool) {
	children := t.children[Root]
	if len(children) == 0 {
		return nilNode, false
	}
	scores := make([]float64, len(children))
	for i, kid := range children {
		scores[i] = float64(t.nodeFromNaughty(kid).score(ai))
	}
	best := children[floats.MaxIdx(scores)]
	t.log("best child for %v: %v", ai, t.nodeFromNaughty(best))
	return best, true
}
