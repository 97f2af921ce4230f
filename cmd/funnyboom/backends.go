package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vancomm/funnyboom/internal/analytics"
	"github.com/vancomm/funnyboom/internal/config"
	"github.com/vancomm/funnyboom/internal/database"
	"github.com/vancomm/funnyboom/internal/repository"
	"github.com/vancomm/funnyboom/internal/scores"
	"github.com/vancomm/funnyboom/internal/session"
	"github.com/vancomm/funnyboom/internal/sound"
)

const analyticsMaxSizeMB = 10

func openStore(ctx context.Context, logger *slog.Logger) (scores.Store, func(), error) {
	backend, err := config.ScoresBackend()
	if err != nil {
		return nil, nil, err
	}

	switch backend {
	case config.BackendPostgres:
		pool, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to set up postgres: %w", err)
		}
		if version, dirty, err := migrator.Version(); err == nil {
			logger.Info("score schema ready",
				slog.Uint64("version", uint64(version)),
				slog.Bool("dirty", dirty),
			)
		}
		return repository.New(pool), pool.Close, nil

	case config.BackendSQLite:
		path := config.SQLitePath()
		store, err := repository.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("scores in sqlite", slog.String("path", path))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close sqlite", slog.Any("error", err))
			}
		}, nil
	}

	logger.Info("scores in memory")
	return scores.NewMemoryStore(), func() {}, nil
}

// openSound falls back to logging effects when no audio device can be used.
func openSound(logger *slog.Logger) (session.SoundPlayer, func()) {
	fallback := sound.Log{Logger: logger}
	if !config.SoundEnabled() {
		return fallback, func() {}
	}

	speaker := sound.NewSpeaker(sound.NewSynth(0.6), logger)
	if err := speaker.Init(); err != nil {
		logger.Warn("sound disabled", slog.Any("error", err))
		return fallback, func() {}
	}
	return speaker, speaker.Close
}

func openTracker(logger *slog.Logger) (analytics.Tracker, error) {
	trackers := analytics.Multi{analytics.Slog{Logger: logger}}

	if path := config.AnalyticsFile(); path != "" {
		eventLog, err := analytics.OpenEventLog(path, analyticsMaxSizeMB)
		if err != nil {
			return nil, err
		}
		trackers = append(trackers, eventLog)
	}
	return trackers, nil
}
