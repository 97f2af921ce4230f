package scores

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vancomm/funnyboom/internal/mines"
	"github.com/vancomm/funnyboom/internal/repository"
)

// MemoryStore keeps scores for the lifetime of the process. Rankings are
// capped at mines.TopScoresLimit whatever limit is asked for.
type MemoryStore struct {
	mu     sync.Mutex
	scores []mines.ScoreEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) InsertScore(ctx context.Context, entry mines.ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.scores {
		if s.ID == entry.ID {
			return fmt.Errorf("%w: %s", repository.ErrDuplicateScore, entry.ID)
		}
	}
	m.scores = append(m.scores, entry)
	return nil
}

func (m *MemoryStore) TopScores(ctx context.Context, limit int) ([]mines.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ranked := mines.TopTen(m.scores)
	return ranked[:min(max(0, limit), len(ranked))], nil
}

func (m *MemoryStore) PruneScores(ctx context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ranked := mines.TopTen(m.scores)
	kept := ranked[:min(max(0, keep), len(ranked))]
	pruned := int64(len(m.scores) - len(kept))
	m.scores = kept
	return pruned, nil
}

func (m *MemoryStore) FetchScore(ctx context.Context, id uuid.UUID) (*mines.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.scores {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
}
