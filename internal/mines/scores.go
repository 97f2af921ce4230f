package mines

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

type ScoreEntry struct {
	ID             uuid.UUID  `json:"id"`
	Nickname       string     `json:"nickname"`
	Points         int        `json:"points"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	TotalScore     int        `json:"total_score"`
	BoardSize      BoardSize  `json:"board_size"`
	Difficulty     Difficulty `json:"difficulty"`
	PlayedAt       time.Time  `json:"played_at"`
}

func compareScores(a, b ScoreEntry) int {
	if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ElapsedSeconds, b.ElapsedSeconds); c != 0 {
		return c
	}
	return b.PlayedAt.Compare(a.PlayedAt)
}

// TopTen ranks by total score (desc), then elapsed time (asc), then most
// recent first, and keeps the first ten. The input is left untouched.
// Persistence must rank with this same function.
func TopTen(scores []ScoreEntry) []ScoreEntry {
	ranked := slices.Clone(scores)
	slices.SortStableFunc(ranked, compareScores)
	if len(ranked) > TopScoresLimit {
		ranked = slices.Clip(ranked[:TopScoresLimit])
	}
	return ranked
}
