package othello

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/othello/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedChooser struct {
	move     int
	closeErr error
}

func (c fixedChooser) Choose(context.Context, game.State) (int, error) { return c.move, nil }
func (c fixedChooser) Close() error                                    { return c.closeErr }

func TestArenaPlaysFullGame(t *testing.T) {
	ai := NewAI("engine", testEngine(t, 0, 10))
	random := NewPlayer("random", NewRandomChooser(3))
	arena := MakeArena(game.Initial(game.Standard), ai, random, zerolog.Nop())

	winner, err := arena.Play(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []game.Cell{game.Black, game.White}, winner)
	assert.Equal(t, game.Black, ai.Player)
	assert.Equal(t, game.White, random.Player)
	assert.Equal(t, float32(1), ai.Wins+random.Wins)
	assert.Equal(t, float32(1), ai.Loss+random.Loss)
	assert.Equal(t, 1, arena.Games())
	if winner == game.Black {
		assert.True(t, arena.MeanMargin() >= 0)
	} else {
		assert.True(t, arena.MeanMargin() < 0)
	}
	assert.NotZero(t, ai.LastDecision().Nodes)

	arena.Reset()
	assert.Zero(t, arena.Games())
	assert.Zero(t, ai.Wins+ai.Loss)
	assert.Zero(t, arena.MeanMargin())
	assert.NoError(t, arena.Close())
}

func TestArenaRejectsIllegalMove(t *testing.T) {
	cheat := NewPlayer("cheat", fixedChooser{move: 0})
	ai := NewAI("engine", testEngine(t, 0, 10))
	arena := MakeArena(game.Initial(game.Standard), cheat, ai, zerolog.Nop())

	_, err := arena.Play(context.Background())
	require.Error(t, err)
	assert.Equal(t, ErrIllegalMove, errors.Cause(err))
}

func TestArenaStopsOnCancel(t *testing.T) {
	a := NewPlayer("a", NewRandomChooser(1))
	b := NewPlayer("b", NewRandomChooser(2))
	arena := MakeArena(game.Initial(game.Standard), a, b, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := arena.Play(ctx)
	assert.Equal(t, context.Canceled, errors.Cause(err))
}

func TestArenaCloseAggregates(t *testing.T) {
	a := NewPlayer("a", fixedChooser{closeErr: errors.New("a broke")})
	b := NewPlayer("b", fixedChooser{closeErr: errors.New("b broke")})
	arena := MakeArena(game.Initial(game.Standard), a, b, zerolog.Nop())

	err := arena.Close()
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), "b broke")
}

func TestAgentWithoutMoveSource(t *testing.T) {
	idle := NewPlayer("idle", nil)
	_, err := idle.Search(context.Background(), game.Initial(game.Standard))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idle")

	ai := NewAI("engine", testEngine(t, 0, 10))
	arena := MakeArena(game.Initial(game.Standard), idle, ai, zerolog.Nop())
	_, err = arena.Play(context.Background())
	assert.Error(t, err)
	assert.NoError(t, arena.Close())
}
