package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/funnyboom/internal/mines"
)

// Score is a row of the score table.
type Score struct {
	ScoreId        uuid.UUID `db:"score_id"`
	Nickname       string    `db:"nickname"`
	Points         int       `db:"points"`
	ElapsedSeconds int       `db:"elapsed_seconds"`
	TotalScore     int       `db:"total_score"`
	BoardSize      string    `db:"board_size"`
	Difficulty     string    `db:"difficulty"`
	PlayedAt       time.Time `db:"played_at"`
}

func (s Score) Entry() mines.ScoreEntry {
	return mines.ScoreEntry{
		ID:             s.ScoreId,
		Nickname:       s.Nickname,
		Points:         s.Points,
		ElapsedSeconds: s.ElapsedSeconds,
		TotalScore:     s.TotalScore,
		BoardSize:      mines.BoardSize(s.BoardSize),
		Difficulty:     mines.Difficulty(s.Difficulty),
		PlayedAt:       s.PlayedAt,
	}
}

// rankingOrder must match mines.TopTen.
const rankingOrder = "total_score DESC, elapsed_seconds ASC, played_at DESC"

const scoreColumns = `score_id, nickname, points, elapsed_seconds, total_score,
	board_size, difficulty, played_at`

func (q Queries) InsertScore(ctx context.Context, entry mines.ScoreEntry) error {
	args := pgx.NamedArgs{
		"scoreId":        entry.ID,
		"nickname":       entry.Nickname,
		"points":         entry.Points,
		"elapsedSeconds": entry.ElapsedSeconds,
		"totalScore":     entry.TotalScore,
		"boardSize":      string(entry.BoardSize),
		"difficulty":     string(entry.Difficulty),
		"playedAt":       entry.PlayedAt,
	}
	_, err := q.db.Exec(ctx, `
	INSERT INTO score (`+scoreColumns+`)
	VALUES (
		@scoreId, @nickname, @points, @elapsedSeconds, @totalScore,
		@boardSize, @difficulty, @playedAt
	);`, args)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateScore, entry.ID)
	}
	return err
}

func (q Queries) TopScores(ctx context.Context, limit int) ([]mines.ScoreEntry, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+scoreColumns+` FROM score ORDER BY `+rankingOrder+` LIMIT @limit;`,
		pgx.NamedArgs{"limit": limit},
	)
	if err != nil {
		return nil, err
	}
	scores, err := pgx.CollectRows(rows, pgx.RowToStructByName[Score])
	if err != nil {
		return nil, err
	}
	return entries(scores), nil
}

func (q Queries) FetchScore(ctx context.Context, id uuid.UUID) (*mines.ScoreEntry, error) {
	rows, _ := q.db.Query(ctx,
		`SELECT `+scoreColumns+` FROM score WHERE score_id = @scoreId;`,
		pgx.NamedArgs{"scoreId": id},
	)
	score, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Score])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	entry := score.Entry()
	return &entry, nil
}

// PruneScores deletes everything ranked below the first keep rows.
func (q Queries) PruneScores(ctx context.Context, keep int) (int64, error) {
	tag, err := q.db.Exec(ctx, `
	DELETE FROM score
	WHERE score_id NOT IN (
		SELECT score_id FROM score ORDER BY `+rankingOrder+` LIMIT @keep
	);`, pgx.NamedArgs{"keep": keep})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func entries(scores []Score) []mines.ScoreEntry {
	result := make([]mines.ScoreEntry, len(scores))
	for i, s := range scores {
		result[i] = s.Entry()
	}
	return result
}
