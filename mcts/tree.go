package mcts

import (
	"github.com/chewxy/math32"
	"github.com/othello/game"
	"golang.org/x/exp/rand"
)

// Config is the structure to configure a search tree.
type Config struct {
	// Exploration is the UCT exploration constant. Sqrt(2) is the textbook value.
	Exploration float32 `json:"exploration"`

	// Debug records a trace of the search, readable through Log.
	Debug bool `json:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Exploration: math32.Sqrt(2),
	}
}

func (c Config) IsValid() bool {
	return c.Exploration >= 0 && !math32.IsInf(c.Exploration, 0) && !math32.IsNaN(c.Exploration)
}

// MCTS is a single search tree. Nodes live in one arena and refer to each
// other by index, so there is no pointer chasing between parents and children.
//
// A tree is built for one decision and thrown away afterwards.
type MCTS struct {
	Config
	rand *rand.Rand

	// memory related fields
	nodes    []Node
	children [][]Naughty

	// playouts is the number of completed select/rollout/backprop rounds
	playouts int

	lumberjack
}

// New creates a tree rooted at state. r is used for both expansion and
// rollouts.
func New(state game.State, conf Config, r *rand.Rand) *MCTS {
	retVal := &MCTS{
		Config:   conf,
		rand:     r,
		nodes:    make([]Node, 0, 1024),
		children: make([][]Naughty, 0, 1024),
	}
	retVal.lumberjack = makeLumberJack(conf.Debug)
	retVal.alloc(state, nilNode)
	return retVal
}

// alloc appends a new unexpanded node to the arena. Pointers returned by
// nodeFromNaughty before a call to alloc may be stale afterwards.
func (t *MCTS) alloc(state game.State, parent Naughty) Naughty {
	n := Naughty(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		state:  state,
		id:     n,
		parent: parent,
	})
	t.children = append(t.children, nil)
	return n
}

// nodeFromNaughty gets the node given the pointer.
func (t *MCTS) nodeFromNaughty(ptr Naughty) *Node { return &t.nodes[int(ptr)] }

// Node returns a copy of the node at ptr.
func (t *MCTS) Node(ptr Naughty) Node { return t.nodes[int(ptr)] }

// Root returns a copy of the root node.
func (t *MCTS) Root() Node { return t.nodes[Root] }

// Children returns a list of children. The result must not be modified.
func (t *MCTS) Children(of Naughty) []Naughty { return t.children[of] }

// Nodes returns the number of nodes allocated.
func (t *MCTS) Nodes() int { return len(t.nodes) }

// Playouts returns the number of completed iterations.
func (t *MCTS) Playouts() int { return t.playouts }

// CanExplore returns true while the root still has something to search.
func (t *MCTS) CanExplore() bool { return t.nodeFromNaughty(Root).CanExplore() }
