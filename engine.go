package othello

import (
	"context"
	"time"

	"github.com/othello/game"
	"github.com/othello/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Engine picks moves with a time boxed Monte Carlo tree search.
// A fresh tree is built for each decision. An Engine is not safe for
// concurrent use.
type Engine struct {
	conf   Config
	rand   *rand.Rand
	logger zerolog.Logger

	// last is the tree of the most recent decision, kept for debugging only.
	last *mcts.MCTS
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine. It fails if the configuration is not valid.
func New(conf Config, opts ...Option) (*Engine, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("invalid engine configuration %+v", conf)
	}
	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e := &Engine{
		conf:   conf,
		rand:   rand.New(rand.NewSource(seed)),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("engine", conf.Name).Logger()
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.conf }

// LastTree returns the tree built by the most recent ComputeMove, or nil.
func (e *Engine) LastTree() *mcts.MCTS { return e.last }

// ComputeMove searches s and returns the chosen successor. It returns false if
// s is a finished game.
//
// The search runs in batches of Config.BatchSize iterations. The clock and ctx
// are only looked at between batches.
func (e *Engine) ComputeMove(ctx context.Context, s game.State) (Decision, bool) {
	start := time.Now()
	tree := mcts.New(s, e.conf.MCTSConf, e.rand)
	e.last = tree

	var exhausted bool
loop:
	for {
		for i := 0; i < e.conf.BatchSize; i++ {
			if !tree.CanExplore() {
				exhausted = true
				break loop
			}
			tree.Iterate()
		}
		if time.Since(start) >= e.conf.Timeout {
			break
		}
		select {
		case <-ctx.Done():
			e.logger.Debug().Err(ctx.Err()).Msg("search interrupted")
			break loop
		default:
		}
	}

	best, ok := tree.BestChild(s.Turn())
	if !ok {
		e.logger.Debug().Msg("no move to choose")
		return Decision{}, false
	}
	root, child := tree.Root(), tree.Node(best)
	retVal := Decision{
		State:     child.State(),
		Move:      child.Move(),
		Wins:      root.Wins(),
		Visits:    root.Visits(),
		Playouts:  tree.Playouts(),
		Nodes:     tree.Nodes(),
		Exhausted: exhausted,
		Elapsed:   time.Since(start),
	}
	e.logger.Debug().
		Str("side", s.Turn().String()).
		Str("move", game.MoveToCoord(retVal.Move, s.Rays().Width())).
		Uint32("wins", retVal.Wins).
		Uint32("visits", retVal.Visits).
		Int("nodes", retVal.Nodes).
		Bool("exhausted", exhausted).
		Dur("elapsed", retVal.Elapsed).
		Msg("move computed")
	return retVal, true
}

// ApplyHumanMove plays move on s. It returns false if the move is illegal.
func ApplyHumanMove(s game.State, move int) (game.State, bool) {
	return s.Apply(move)
}
