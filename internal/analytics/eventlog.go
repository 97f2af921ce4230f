package analytics

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/funnyboom/internal/mines"
)

// EventLog writes one JSON object per event.
type EventLog struct {
	log *logrus.Logger
}

func NewEventLog(w io.Writer) *EventLog {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
	return &EventLog{log: log}
}

// OpenEventLog appends to path and rotates it once it grows past maxSizeMB.
func OpenEventLog(path string, maxSizeMB int) (*EventLog, error) {
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
		MaxAge:     30,
		Level:      logrus.InfoLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open analytics log: %w", err)
	}
	e := NewEventLog(io.Discard)
	e.log.AddHook(hook)
	return e, nil
}

func (e *EventLog) TrackBoardStarted(event mines.TrackBoardStarted) {
	e.log.WithFields(logrus.Fields{
		"event":      "board_started",
		"difficulty": event.Difficulty.AnalyticsLabel(),
		"board_size": event.SizeLabel(),
	}).Info("analytics")
}
