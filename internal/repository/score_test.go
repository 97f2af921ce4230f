package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execOnly struct {
	err  error
	sql  string
	args []any
}

func (e *execOnly) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), e.err
}

func (e *execOnly) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestInsertScoreMapsUniqueViolation(t *testing.T) {
	db := &execOnly{err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}}
	err := New(db).InsertScore(context.Background(), entry("ada", 100, 1, playedAt))
	assert.ErrorIs(t, err, ErrDuplicateScore)

	db.err = &pgconn.PgError{Code: pgerrcode.CheckViolation}
	err = New(db).InsertScore(context.Background(), entry("", 100, 1, playedAt))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateScore)

	db.err = nil
	e := entry("bob", 100, 1, playedAt)
	require.NoError(t, New(db).InsertScore(context.Background(), e))
	require.Len(t, db.args, 1)
	args, ok := db.args[0].(pgx.NamedArgs)
	require.True(t, ok)
	assert.Equal(t, e.ID, args["scoreId"])
	assert.Equal(t, "classic20x20", args["boardSize"])
}
