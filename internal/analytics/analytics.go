package analytics

import (
	"log/slog"

	"github.com/vancomm/funnyboom/internal/mines"
)

type Tracker interface {
	TrackBoardStarted(event mines.TrackBoardStarted)
}

// Slog writes events to the application log.
type Slog struct {
	Logger *slog.Logger
}

func (s Slog) TrackBoardStarted(event mines.TrackBoardStarted) {
	s.Logger.Info("board_started",
		slog.String("difficulty", event.Difficulty.AnalyticsLabel()),
		slog.String("board_size", event.SizeLabel()),
	)
}

// Multi forwards every event to each tracker in order.
type Multi []Tracker

func (m Multi) TrackBoardStarted(event mines.TrackBoardStarted) {
	for _, t := range m {
		t.TrackBoardStarted(event)
	}
}
