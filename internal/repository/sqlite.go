package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vancomm/funnyboom/internal/mines"
)

// SQLiteStore keeps scores in a single-file embedded database.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS score (
			score_id TEXT PRIMARY KEY,
			nickname TEXT NOT NULL,
			points INTEGER NOT NULL,
			elapsed_seconds INTEGER NOT NULL,
			total_score INTEGER NOT NULL,
			board_size TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			played_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS score_ranking_idx
			ON score (total_score DESC, elapsed_seconds ASC, played_at DESC)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// played_at is stored as fixed-width UTC text so that ordering by the
// column is chronological.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func (s *SQLiteStore) InsertScore(ctx context.Context, entry mines.ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO score (`+scoreColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Nickname,
		entry.Points,
		entry.ElapsedSeconds,
		entry.TotalScore,
		string(entry.BoardSize),
		string(entry.Difficulty),
		entry.PlayedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", ErrDuplicateScore, entry.ID)
	}
	return err
}

func (s *SQLiteStore) TopScores(ctx context.Context, limit int) ([]mines.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scoreColumns+` FROM score ORDER BY `+rankingOrder+` LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []mines.ScoreEntry
	for rows.Next() {
		entry, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) FetchScore(ctx context.Context, id uuid.UUID) (*mines.ScoreEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scoreColumns+` FROM score WHERE score_id = ?`, id.String(),
	)
	entry, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *SQLiteStore) PruneScores(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
	DELETE FROM score
	WHERE score_id NOT IN (
		SELECT score_id FROM score ORDER BY `+rankingOrder+` LIMIT ?
	)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScore(row scanner) (mines.ScoreEntry, error) {
	var (
		entry      mines.ScoreEntry
		id         string
		boardSize  string
		difficulty string
		playedAt   string
	)
	err := row.Scan(
		&id,
		&entry.Nickname,
		&entry.Points,
		&entry.ElapsedSeconds,
		&entry.TotalScore,
		&boardSize,
		&difficulty,
		&playedAt,
	)
	if err != nil {
		return entry, err
	}
	if entry.ID, err = uuid.Parse(id); err != nil {
		return entry, fmt.Errorf("malformed score id %q: %w", id, err)
	}
	if entry.PlayedAt, err = time.Parse(sqliteTimeLayout, playedAt); err != nil {
		return entry, fmt.Errorf("malformed played_at %q: %w", playedAt, err)
	}
	entry.BoardSize = mines.BoardSize(boardSize)
	entry.Difficulty = mines.Difficulty(difficulty)
	return entry, nil
}
