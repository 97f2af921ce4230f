package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vancomm/funnyboom/internal/mines"
)

type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendMemory   Backend = "memory"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func SoundEnabled() bool {
	sound, ok := os.LookupEnv("FUNNYBOOM_SOUND")
	if !ok {
		return false
	}
	return sound != "0"
}

func ScoresBackend() (Backend, error) {
	backend, ok := os.LookupEnv("SCORES_BACKEND")
	if !ok || backend == "" {
		return BackendSQLite, nil
	}
	switch b := Backend(strings.ToLower(backend)); b {
	case BackendPostgres, BackendSQLite, BackendMemory:
		return b, nil
	}
	return "", fmt.Errorf("unknown SCORES_BACKEND %q", backend)
}

func SQLitePath() string {
	path, ok := os.LookupEnv("SCORES_SQLITE_PATH")
	if !ok || path == "" {
		return "funnyboom.db"
	}
	return path
}

// AnalyticsFile is empty when no event log file was requested.
func AnalyticsFile() string {
	return os.Getenv("FUNNYBOOM_ANALYTICS_FILE")
}

// Settings starts from the default round settings and applies
// FUNNYBOOM_DIFFICULTY and FUNNYBOOM_BOARD_SIZE when set.
func Settings() (mines.Settings, error) {
	settings := mines.DefaultSettings

	if value, ok := os.LookupEnv("FUNNYBOOM_DIFFICULTY"); ok {
		difficulty, err := mines.ParseDifficulty(value)
		if err != nil {
			return settings, fmt.Errorf("invalid FUNNYBOOM_DIFFICULTY: %w", err)
		}
		settings.Difficulty = difficulty
	}

	if value, ok := os.LookupEnv("FUNNYBOOM_BOARD_SIZE"); ok {
		size, err := mines.ParseBoardSize(value)
		if err != nil {
			return settings, fmt.Errorf("invalid FUNNYBOOM_BOARD_SIZE: %w", err)
		}
		settings.BoardSize = size
	}

	return settings, nil
}

// Seed parses FUNNYBOOM_SEED ("a:b"). ok is false when the variable is unset.
func Seed() (seed1, seed2 uint64, ok bool, err error) {
	value, ok := os.LookupEnv("FUNNYBOOM_SEED")
	if !ok {
		return 0, 0, false, nil
	}
	first, second, found := strings.Cut(value, ":")
	if !found {
		return 0, 0, false, fmt.Errorf("FUNNYBOOM_SEED must look like a:b, got %q", value)
	}
	if seed1, err = strconv.ParseUint(first, 10, 64); err != nil {
		return 0, 0, false, fmt.Errorf("unable to parse first seed: %w", err)
	}
	if seed2, err = strconv.ParseUint(second, 10, 64); err != nil {
		return 0, 0, false, fmt.Errorf("unable to parse second seed: %w", err)
	}
	return seed1, seed2, true, nil
}
