// Command play runs games of Othello between the engine and a human on the
// terminal, or between two engines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/othello"
	"github.com/othello/game"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	timeoutFlag = flag.Duration("timeout", 3*time.Second, "thinking time per AI move")
	batchFlag   = flag.Int("batch", 50, "iterations between two clock checks")
	cFlag       = flag.Float64("c", 1.4142135, "UCT exploration constant")
	seedFlag    = flag.Uint64("seed", 0, "random seed, 0 seeds from the clock")
	humanFlag   = flag.String("human", "white", "side played from the terminal: black, white or none")
	gamesFlag   = flag.Int("games", 1, "number of games to play")
	dotFlag     = flag.String("dot", "", "write the last search tree of the engine to this file")
	dotDepth    = flag.Int("dot_depth", 2, "depth of the dumped tree")
	verboseFlag = flag.Bool("v", false, "log every search")
)

// terminal reads moves in "d3" form from the standard input.
type terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

func (t terminal) Choose(ctx context.Context, s game.State) (int, error) {
	fmt.Fprintln(t.out, s)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprint(t.out, "your move: ")
		if !t.in.Scan() {
			if err := t.in.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		move, err := game.ParseMove(t.in.Text(), s.Rays())
		if err != nil {
			fmt.Fprintln(t.out, err)
			continue
		}
		if !s.CanPlayAt(move) {
			fmt.Fprintf(t.out, "%s is not a legal move\n", strings.TrimSpace(t.in.Text()))
			continue
		}
		return move, nil
	}
}

func main() {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verboseFlag {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	conf := othello.DefaultConfig()
	conf.Timeout = *timeoutFlag
	conf.BatchSize = *batchFlag
	conf.MCTSConf.Exploration = float32(*cFlag)
	conf.Seed = *seedFlag

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, conf, logger); err != nil {
		logger.Fatal().Err(err).Msg("play failed")
	}
}

func run(ctx context.Context, conf othello.Config, logger zerolog.Logger) error {
	engine, err := othello.New(conf, othello.WithLogger(logger))
	if err != nil {
		return err
	}
	ai := othello.NewAI("engine", engine)

	var black, white *othello.Agent
	human := othello.NewPlayer("human", terminal{in: bufio.NewScanner(os.Stdin), out: os.Stdout})
	switch *humanFlag {
	case "black":
		black, white = human, ai
	case "white":
		black, white = ai, human
	case "none":
		second, err := othello.New(conf, othello.WithLogger(logger))
		if err != nil {
			return err
		}
		black, white = ai, othello.NewAI("engine2", second)
	default:
		return errors.Errorf("unknown side %q", *humanFlag)
	}

	arena := othello.MakeArena(game.Initial(game.Standard), black, white, logger)
	defer arena.Close()
	for i := 0; i < *gamesFlag; i++ {
		if _, err := arena.Play(ctx); err != nil {
			return err
		}
	}
	logger.Info().
		Str("black", black.Name()).
		Float32("black_wins", black.Wins).
		Str("white", white.Name()).
		Float32("white_wins", white.Wins).
		Float64("mean_margin", arena.MeanMargin()).
		Msg("done")

	if *dotFlag != "" {
		return dumpTree(engine, *dotFlag, *dotDepth)
	}
	return nil
}

func dumpTree(e *othello.Engine, path string, depth int) error {
	tree := e.LastTree()
	if tree == nil {
		return errors.New("the engine has not searched yet")
	}
	dot, err := tree.ToDot(depth)
	if err != nil {
		return err
	}
	return errors.WithStack(os.WriteFile(path, []byte(dot), 0644))
}
