package mcts

// Naughty is essentially *Node: an index into the tree's node arena.
type Naughty int

func (n Naughty) isValid() bool { return n >= 0 }

const (
	nilNode Naughty = -1

	// Root is always the first node allocated.
	Root Naughty = 0
)
