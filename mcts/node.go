package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/othello/game"
)

type Status uint8

const (
	Unexpanded Status = iota
	Expanded
	Exhausted
)

func (a Status) String() string {
	switch a {
	case Unexpanded:
		return "Unexpanded"
	case Expanded:
		return "Expanded"
	case Exhausted:
		return "Exhausted"
	}
	return "UNKNOWN STATUS"
}

// Node is a position in the search tree. Wins are counted from the point of
// view of the side to move at this node.
type Node struct {
	state  game.State
	id     Naughty
	parent Naughty

	visits uint32
	wins   uint32
	status Status

	// eligible counts the decision children that are not exhausted yet.
	// Only meaningful once the node is expanded.
	eligible int
}

func (n Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Turn: %v, Wins %v, Visits %v, Eligible %v, Status: %v}",
		n.id, n.Move(), n.state.Turn(), n.wins, n.visits, n.eligible, n.status)
}

func (n Node) ID() Naughty       { return n.id }
func (n Node) Parent() Naughty   { return n.parent }
func (n Node) State() game.State { return n.state }
func (n Node) Visits() uint32    { return n.visits }
func (n Node) Wins() uint32      { return n.wins }
func (n Node) Status() Status    { return n.status }

// Move is the cell played to reach this node.
func (n Node) Move() int { return n.state.LastMove() }

// IsDecision returns true if someone still has to move at this node.
func (n Node) IsDecision() bool { return !n.state.IsTerminal() }

// CanExplore returns true if selection may still descend into this node.
func (n Node) CanExplore() bool {
	if !n.IsDecision() {
		return false
	}
	switch n.status {
	case Unexpanded:
		return true
	case Expanded:
		return n.eligible > 0
	}
	return false
}

// uct is the upper confidence bound of the node
//	wins/visits + c * sqrt(ln(N) / visits)
// where N is the visit count of the parent. Unvisited nodes always come first.
func (n Node) uct(parentVisits uint32, c float32) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	visits := float32(n.visits)
	exploit := float32(n.wins) / visits
	explore := c * math32.Sqrt(math32.Log(float32(parentVisits))/visits)
	return exploit + explore
}

// score rates the node as a move for ai.
func (n Node) score(ai game.Cell) float32 {
	if !n.IsDecision() {
		if n.state.Winner() == ai {
			return 1
		}
		return 0
	}
	if n.visits == 0 {
		return 0
	}
	avg := float32(n.wins) / float32(n.visits)
	if n.state.Turn() == ai {
		return avg
	}
	return 1 - avg
}
