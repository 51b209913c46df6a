package othello

import (
	"context"
	"testing"
	"time"

	"github.com/othello/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endgame = `
XO......
........
XO......
........
........
........
........
........`

const finished = `
XXX.....
........
XXX.....
........
........
........
........
........`

func testEngine(t *testing.T, timeout time.Duration, batch int) *Engine {
	t.Helper()
	conf := DefaultConfig()
	conf.Timeout = timeout
	conf.BatchSize = batch
	conf.Seed = 1234
	e, err := New(conf)
	require.NoError(t, err)
	return e
}

func TestZeroTimeoutStillMoves(t *testing.T) {
	e := testEngine(t, 0, 50)
	s := game.Initial(game.Standard)

	d, ok := e.ComputeMove(context.Background(), s)
	require.True(t, ok)
	assert.Contains(t, s.LegalMoves(), d.Move)
	assert.Equal(t, uint32(50), d.Visits)
	assert.Equal(t, 50, d.Playouts)
	assert.False(t, d.Exhausted)
	assert.True(t, d.WinRate() >= 0 && d.WinRate() <= 1)

	want, ok := ApplyHumanMove(s, d.Move)
	require.True(t, ok)
	assert.Equal(t, want.Board(), d.State.Board())
	assert.Equal(t, game.White, d.State.Turn())
	assert.NotNil(t, e.LastTree())
}

func TestComputeMoveOnFinishedGame(t *testing.T) {
	e := testEngine(t, 0, 10)
	s, err := game.ParseBoard(game.Standard, finished, game.None)
	require.NoError(t, err)
	require.True(t, s.IsTerminal())

	_, ok := e.ComputeMove(context.Background(), s)
	assert.False(t, ok)
}

func TestComputeMoveAfterForcedPass(t *testing.T) {
	e := testEngine(t, 0, 10)
	b := make(game.Board, game.Standard.Size())
	b[0], b[1] = game.White, game.Black
	s, err := game.NewState(game.Standard, b, game.Black)
	require.NoError(t, err)
	require.Equal(t, game.White, s.Turn())

	d, ok := e.ComputeMove(context.Background(), s)
	require.True(t, ok)
	assert.Equal(t, 2, d.Move)
	assert.True(t, d.State.IsTerminal())
	assert.Equal(t, "<no position>", Decision{}.State.String())
}

func TestComputeMoveStopsWhenExhausted(t *testing.T) {
	e := testEngine(t, time.Hour, 50)
	s, err := game.ParseBoard(game.Standard, endgame, game.Black)
	require.NoError(t, err)

	done := make(chan Decision)
	go func() {
		d, ok := e.ComputeMove(context.Background(), s)
		assert.True(t, ok)
		done <- d
	}()

	select {
	case d := <-done:
		assert.True(t, d.Exhausted)
		assert.Equal(t, 1, d.Playouts)
		assert.Equal(t, uint32(1), d.Visits)
		assert.Equal(t, uint32(1), d.Wins, "black wins every line")
		assert.Contains(t, []int{2, 18}, d.Move)
	case <-time.After(10 * time.Second):
		t.Fatal("search did not stop on an exhausted tree")
	}
}

func TestComputeMoveHonoursContextBetweenBatches(t *testing.T) {
	e := testEngine(t, time.Hour, 20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, ok := e.ComputeMove(ctx, game.Initial(game.Standard))
	require.True(t, ok)
	assert.Equal(t, uint32(20), d.Visits, "the first batch always completes")
}

func TestComputeMoveIsReproducible(t *testing.T) {
	s := game.Initial(game.Standard)
	a, ok := testEngine(t, 0, 100).ComputeMove(context.Background(), s)
	require.True(t, ok)
	b, ok := testEngine(t, 0, 100).ComputeMove(context.Background(), s)
	require.True(t, ok)

	assert.Equal(t, a.Move, b.Move)
	assert.Equal(t, a.Wins, b.Wins)
	assert.Equal(t, a.Nodes, b.Nodes)
}

func TestInvalidConfig(t *testing.T) {
	conf := DefaultConfig()
	conf.BatchSize = 0
	_, err := New(conf)
	assert.Error(t, err)

	conf = DefaultConfig()
	conf.MCTSConf.Exploration = -1
	_, err = New(conf)
	assert.Error(t, err)

	assert.True(t, DefaultConfig().IsValid())
}

func TestApplyHumanMove(t *testing.T) {
	s := game.Initial(game.Standard)

	_, ok := ApplyHumanMove(s, 0)
	assert.False(t, ok)
	_, ok = ApplyHumanMove(s, 27)
	assert.False(t, ok)

	next, ok := ApplyHumanMove(s, 19)
	require.True(t, ok)
	assert.Equal(t, 4, next.Count(game.Black))
	assert.Equal(t, game.Empty, s.At(19), "input state is unchanged")
}
