package othello

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/othello/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// Arena plays games between two agents and keeps the score.
type Arena struct {
	start        game.State
	black, white *Agent
	logger       zerolog.Logger

	gameNumber int
	// margins holds black's disc lead at the end of every game played
	margins []float64
}

// MakeArena makes an arena where black and white play from start.
func MakeArena(start game.State, black, white *Agent, logger zerolog.Logger) Arena {
	black.Player = game.Black
	white.Player = game.White
	return Arena{
		start:  start,
		black:  black,
		white:  white,
		logger: logger,
	}
}

// Play plays one game to the end and returns the winner.
func (a *Arena) Play(ctx context.Context) (game.Cell, error) {
	a.gameNumber++
	logger := a.logger.With().Int("game", a.gameNumber).Logger()

	s := a.start
	for !s.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return game.None, errors.WithStack(err)
		}
		agent := a.agentFor(s.Turn())
		next, err := agent.Search(ctx, s)
		if err != nil {
			return game.None, err
		}
		ev := logger.Info().
			Str("player", agent.Name()).
			Str("side", s.Turn().String()).
			Str("move", game.MoveToCoord(next.LastMove(), s.Rays().Width()))
		if agent.Engine != nil {
			ev = ev.Float64("winrate", agent.LastDecision().WinRate())
		}
		ev.Msg("move")
		s = next
	}

	winner := s.Winner()
	a.margins = append(a.margins, float64(s.Count(game.Black)-s.Count(game.White)))
	w, l := a.agentFor(winner), a.agentFor(winner.Opponent())
	w.Wins++
	l.Loss++
	logger.Info().
		Str("winner", w.Name()).
		Int("black", s.Count(game.Black)).
		Int("white", s.Count(game.White)).
		Msg("game over")
	return winner, nil
}

// Games returns the number of games started.
func (a *Arena) Games() int { return a.gameNumber }

// MeanMargin is black's average disc lead over the finished games.
func (a *Arena) MeanMargin() float64 {
	if len(a.margins) == 0 {
		return 0
	}
	return stat.Mean(a.margins, nil)
}

// Reset clears the score.
func (a *Arena) Reset() {
	a.gameNumber = 0
	a.margins = a.margins[:0]
	a.black.resetStats()
	a.white.resetStats()
}

// Close closes both agents.
func (a *Arena) Close() error {
	var errs error
	for _, agent := range []*Agent{a.black, a.white} {
		if err := agent.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

func (a *Arena) agentFor(side game.Cell) *Agent {
	if side == game.White {
		return a.white
	}
	return a.black
}
