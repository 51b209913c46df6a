package othello

import (
	"context"
	"time"

	"github.com/othello/game"
	"github.com/othello/mcts"
)

// Config for the engine.
// It holds the tree search parameters and the time box of every decision.
type Config struct {
	Name     string      `json:"name"`
	MCTSConf mcts.Config `json:"mcts_conf"`

	// Timeout is the wall clock budget of one decision. The first batch of
	// iterations always runs, so a zero Timeout still yields a move.
	Timeout time.Duration `json:"timeout"`

	// BatchSize is the number of iterations between two clock checks. There is
	// no way to interrupt a batch: lower it to make the engine more responsive.
	BatchSize int `json:"batch_size"`

	// Seed of the random source. Zero seeds from the clock.
	Seed uint64 `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Name:      "uct",
		MCTSConf:  mcts.DefaultConfig(),
		Timeout:   3000 * time.Millisecond,
		BatchSize: 50,
	}
}

func (c Config) IsValid() bool {
	return c.MCTSConf.IsValid() && c.Timeout >= 0 && c.BatchSize >= 1
}

// Decision is the result of a search.
type Decision struct {
	State game.State // position after the chosen move
	Move  int

	// root statistics
	Wins   uint32
	Visits uint32

	Playouts  int
	Nodes     int
	Exhausted bool // the whole game tree was explored before the time ran out
	Elapsed   time.Duration
}

// WinRate is the share of rollouts won by the side that was to move.
func (d Decision) WinRate() float64 {
	if d.Visits == 0 {
		return 0
	}
	return float64(d.Wins) / float64(d.Visits)
}

// Chooser picks moves for agents that are not backed by the engine, such as
// humans or scripted opponents.
type Chooser interface {
	Choose(ctx context.Context, s game.State) (move int, err error)
}
