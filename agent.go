package othello

import (
	"context"
	"io"

	"github.com/othello/game"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// ErrIllegalMove is returned when a Chooser picks a move that cannot be played.
var ErrIllegalMove = errors.New("illegal move")

// An Agent is a player, AI or Human
type Agent struct {
	Engine  *Engine // nil for agents driven by a Chooser
	Chooser Chooser
	Player  game.Cell

	// Statistics
	Wins float32
	Loss float32

	name string
	last Decision
}

// NewAI creates an agent backed by the engine.
func NewAI(name string, e *Engine) *Agent {
	return &Agent{Engine: e, name: name}
}

// NewPlayer creates an agent whose moves come from c.
func NewPlayer(name string, c Chooser) *Agent {
	return &Agent{Chooser: c, name: name}
}

func (a *Agent) Name() string { return a.name }

// LastDecision returns the statistics of the agent's last search.
func (a *Agent) LastDecision() Decision { return a.last }

// Search picks the agent's move in s and returns the resulting position.
func (a *Agent) Search(ctx context.Context, s game.State) (game.State, error) {
	if a.Engine != nil {
		d, ok := a.Engine.ComputeMove(ctx, s)
		if !ok {
			return game.State{}, errors.Errorf("%s found no move", a.name)
		}
		a.last = d
		return d.State, nil
	}

	if a.Chooser == nil {
		return game.State{}, errors.Errorf("%s has neither an engine nor a chooser", a.name)
	}
	move, err := a.Chooser.Choose(ctx, s)
	if err != nil {
		return game.State{}, errors.WithMessagef(err, "%s failed to choose", a.name)
	}
	next, ok := ApplyHumanMove(s, move)
	if !ok {
		return game.State{}, errors.Wrapf(ErrIllegalMove, "%s played %s", a.name, game.MoveToCoord(move, s.Rays().Width()))
	}
	return next, nil
}

// Close releases the chooser if it holds resources.
func (a *Agent) Close() error {
	if c, ok := a.Chooser.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *Agent) resetStats() {
	a.Wins = 0
	a.Loss = 0
}

// RandomChooser plays a uniformly random legal move.
type RandomChooser struct {
	r *rand.Rand
}

func NewRandomChooser(seed uint64) *RandomChooser {
	return &RandomChooser{r: rand.New(rand.NewSource(seed))}
}

func (c *RandomChooser) Choose(_ context.Context, s game.State) (int, error) {
	moves := s.LegalMoves()
	if len(moves) == 0 {
		return 0, errors.New("no legal move")
	}
	return moves[c.r.Intn(len(moves))], nil
}
