package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/funnyboom/internal/config"
	"github.com/vancomm/funnyboom/internal/mines"
	"github.com/vancomm/funnyboom/internal/scores"
	"github.com/vancomm/funnyboom/internal/session"
)

var exportDir string

func init() {
	flag.StringVar(&exportDir, "export-sounds", "", "write every sound effect as a WAV file into this directory and exit")
}

func newLogger() *slog.Logger {
	if config.Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func dependencies(logger *slog.Logger) (mines.Dependencies, error) {
	deps := mines.LiveDependencies()
	seed1, seed2, ok, err := config.Seed()
	if err != nil {
		return deps, err
	}
	if ok {
		logger.Info("using fixed seed", slog.Uint64("seed1", seed1), slog.Uint64("seed2", seed2))
		deps.Random = mines.NewSeededRandom(seed1, seed2)
	}
	return deps, nil
}

func run(ctx context.Context, logger *slog.Logger) error {
	settings, err := config.Settings()
	if err != nil {
		return err
	}
	deps, err := dependencies(logger)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	player, closePlayer := openSound(logger)
	defer closePlayer()

	tracker, err := openTracker(logger)
	if err != nil {
		return err
	}

	s := session.New(
		mines.NewGameState(settings),
		deps,
		scores.NewClient(store, logger),
		player,
		tracker,
		logger,
		session.Options{},
	)

	logger.Info("ready",
		slog.String("difficulty", settings.Difficulty.Title()),
		slog.String("board size", settings.BoardSize.Title()),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gCtx)
	})
	g.Go(func() error {
		return readCommands(gCtx, os.Stdin, os.Stdout, s)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func main() {
	flag.Parse()

	logger := newLogger()
	mines.Log = logger

	if exportDir != "" {
		if err := exportSounds(exportDir, logger); err != nil {
			logger.Error("failed to export sounds", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("exit reason", slog.Any("error", err))
		os.Exit(1)
	}
}
