package scores

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vancomm/funnyboom/internal/mines"
	"github.com/vancomm/funnyboom/internal/repository"
)

// Store is the persistence behind a Client. TopScores must rank exactly
// like mines.TopTen.
type Store interface {
	InsertScore(ctx context.Context, entry mines.ScoreEntry) error
	TopScores(ctx context.Context, limit int) ([]mines.ScoreEntry, error)
	PruneScores(ctx context.Context, keep int) (int64, error)
	FetchScore(ctx context.Context, id uuid.UUID) (*mines.ScoreEntry, error)
}

// Client loads and saves the leaderboard. It never fails: storage errors
// are logged and turn into an empty or unchanged list.
type Client struct {
	store  Store
	logger *slog.Logger

	mu   sync.Mutex
	last []mines.ScoreEntry
}

func NewClient(store Store, logger *slog.Logger) *Client {
	return &Client{store: store, logger: logger}
}

func (c *Client) Load(ctx context.Context) []mines.ScoreEntry {
	scores, err := c.store.TopScores(ctx, mines.TopScoresLimit)
	if err != nil {
		c.logError("failed to load scores", err)
		return nil
	}
	ranked := mines.TopTen(scores)
	c.remember(ranked)
	return ranked
}

// Save records entry and returns the new top ten. Only the top ten are
// kept in storage.
func (c *Client) Save(ctx context.Context, entry mines.ScoreEntry) []mines.ScoreEntry {
	if err := c.store.InsertScore(ctx, entry); err != nil && !c.alreadySaved(ctx, entry, err) {
		c.logError("failed to save score", err, slog.String("id", entry.ID.String()))
		return c.lastKnown()
	}

	scores, err := c.store.TopScores(ctx, mines.TopScoresLimit)
	if err != nil {
		c.logError("failed to reload scores", err)
		return mines.TopTen(append(c.lastKnown(), entry))
	}

	if pruned, err := c.store.PruneScores(ctx, mines.TopScoresLimit); err != nil {
		c.logError("failed to prune scores", err)
	} else if pruned > 0 {
		c.logger.Debug("pruned scores", slog.Int64("count", pruned))
	}

	ranked := mines.TopTen(scores)
	c.remember(ranked)
	return ranked
}

// alreadySaved reports whether a failed insert was a retry of an entry
// the store still holds.
func (c *Client) alreadySaved(ctx context.Context, entry mines.ScoreEntry, err error) bool {
	if !errors.Is(err, repository.ErrDuplicateScore) {
		return false
	}
	stored, fetchErr := c.store.FetchScore(ctx, entry.ID)
	if fetchErr != nil {
		if !errors.Is(fetchErr, repository.ErrNotFound) {
			c.logError("failed to fetch duplicate score", fetchErr, slog.String("id", entry.ID.String()))
		}
		return false
	}
	c.logger.Debug("score already saved", slog.String("id", stored.ID.String()))
	return true
}

func (c *Client) logError(msg string, err error, attrs ...any) {
	if errors.Is(err, context.Canceled) {
		c.logger.Debug(msg, append(attrs, slog.Any("error", err))...)
		return
	}
	c.logger.Error(msg, append(attrs, slog.Any("error", err))...)
}

func (c *Client) remember(scores []mines.ScoreEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = slices.Clone(scores)
}

func (c *Client) lastKnown() []mines.ScoreEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.last)
}
