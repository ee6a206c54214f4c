package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "op"))
	})

	t.Run("no rows maps to ErrNotFound", func(t *testing.T) {
		err := WrapError(pgx.ErrNoRows, "lookup video first_seen_at")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "lookup video first_seen_at")
	})

	t.Run("unique violation maps to ErrDuplicateKey", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "video_snapshots_video_day_key"}
		err := WrapError(pgErr, "upsert video snapshots")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateKey)
		assert.False(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "video_snapshots_video_day_key")
	})

	t.Run("other pg errors keep their code", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "57014"} // query_canceled
		err := WrapError(pgErr, "find new video ids")
		require.Error(t, err)
		assert.ErrorIs(t, err, pgErr)
		assert.False(t, IsNotFound(err))
		assert.Contains(t, err.Error(), "57014")
	})

	t.Run("plain errors are wrapped with the operation", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := WrapError(cause, "insert scraped snapshot")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "insert scraped snapshot")
	})
}
