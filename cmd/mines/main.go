package main

import (
	"context"
	"hash/maphash"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper-classic/internal/config"
	"github.com/vancomm/minesweeper-classic/internal/mines"
	"github.com/vancomm/minesweeper-classic/internal/stopwatch"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// The terminal belongs to the game, so logs go to a rotated file.
func newLogger() (*slog.Logger, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   config.LogFile(),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	var handler slog.Handler = slog.NewJSONHandler(out, nil)
	if config.Development() {
		handler = tint.NewHandler(out, &tint.Options{
			Level:   slog.LevelDebug,
			NoColor: true,
		})
	}
	return slog.New(handler), out
}

func newRootCmd() *cobra.Command {
	var game config.Game
	defaults, loadErr := config.NewGame()
	if loadErr == nil {
		game = *defaults
	}

	cmd := &cobra.Command{
		Use:          "mines",
		Short:        "Play minesweeper in the terminal",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadErr
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), game)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&game.Rows, "rows", game.Rows, "board rows")
	flags.IntVar(&game.Cols, "cols", game.Cols, "board columns")
	flags.IntVar(&game.Mines, "mines", game.Mines, "number of mines")
	flags.BoolVar(&game.OpenFlagged, "open-flagged", game.OpenFlagged, "let open act on flagged cells")
	flags.BoolVar(&game.CapFlags, "cap-flags", game.CapFlags, "refuse more flags than mines")

	return cmd
}

func run(ctx context.Context, game config.Game) error {
	logger, closer := newLogger()
	defer closer.Close()
	mines.Log = logger.With(slog.String("component", "mines"))

	m, err := newModel(game.Params(), game.Rules(), createRand(), logger)
	if err != nil {
		logger.Error("unable to create game", slog.Any("error", err))
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.clock = stopwatch.New(func(seconds int) {
		p.Send(tickMsg(seconds))
	})

	logger.Info(
		"starting up",
		slog.String("seed", game.Params().Seed()),
		slog.Bool("open_flagged", game.OpenFlagged),
		slog.Bool("cap_flags", game.CapFlags),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		m.clock.Stop()
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit reason", slog.Any("error", err))
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
