package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/funnyboom/internal/mines"
)

func setupTestStore() (*SQLiteStore, func(), error) {
	f, err := os.CreateTemp("", "funnyboom-scores-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %v", err)
	}
	f.Close()

	s, err := OpenSQLite(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return nil, nil, fmt.Errorf("failed to open store: %v", err)
	}

	teardown := func() {
		s.Close()
		os.Remove(f.Name())
		os.Remove(f.Name() + "-wal")
		os.Remove(f.Name() + "-shm")
	}

	return s, teardown, nil
}

var playedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func entry(nickname string, total, elapsed int, at time.Time) mines.ScoreEntry {
	return mines.ScoreEntry{
		ID:             uuid.New(),
		Nickname:       nickname,
		Points:         total / 100,
		ElapsedSeconds: elapsed,
		TotalScore:     total,
		BoardSize:      mines.Classic20x20,
		Difficulty:     mines.Expert,
		PlayedAt:       at,
	}
}

func TestSQLiteReadEmpty(t *testing.T) {
	s, teardown, err := setupTestStore()
	require.NoError(t, err)
	defer teardown()

	scores, err := s.TopScores(context.Background(), mines.TopScoresLimit)
	require.NoError(t, err)
	assert.Empty(t, scores)

	_, err = s.FetchScore(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteInsertAndFetch(t *testing.T) {
	s, teardown, err := setupTestStore()
	require.NoError(t, err)
	defer teardown()

	ctx := context.Background()
	e := entry("ada", 4200, 61, playedAt)
	require.NoError(t, s.InsertScore(ctx, e))

	fetched, err := s.FetchScore(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, *fetched)

	err = s.InsertScore(ctx, e)
	assert.ErrorIs(t, err, ErrDuplicateScore)
}

func TestSQLiteRankingMatchesTopTen(t *testing.T) {
	s, teardown, err := setupTestStore()
	require.NoError(t, err)
	defer teardown()

	ctx := context.Background()
	var all []mines.ScoreEntry
	for i := range 14 {
		e := entry(fmt.Sprintf("p%d", i), 1000+(i%4)*100, 30+i%3, playedAt.Add(time.Duration(i)*time.Minute))
		all = append(all, e)
		require.NoError(t, s.InsertScore(ctx, e))
	}

	scores, err := s.TopScores(ctx, mines.TopScoresLimit)
	require.NoError(t, err)
	assert.Equal(t, mines.TopTen(all), scores)

	pruned, err := s.PruneScores(ctx, mines.TopScoresLimit)
	require.NoError(t, err)
	assert.Equal(t, int64(4), pruned)

	after, err := s.TopScores(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, scores, after)
}
