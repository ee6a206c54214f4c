// Package testutil provides a disposable PostgreSQL instance with the
// snapshot schema applied, for repository integration tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabase = "ytstats_test"
	testUser     = "test"
	testPassword = "test"
)

// TestDatabase represents a test database instance.
type TestDatabase struct {
	Pool      *pgxpool.Pool
	Container *postgres.PostgresContainer
	ConnStr   string
}

// SetupTestDatabase creates a PostgreSQL container, runs migrations, and
// returns a connection pool.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase(testDatabase),
		postgres.WithUsername(testUser),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		connStr,
	)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	srcErr, dbErr := m.Close()
	require.NoError(t, srcErr)
	require.NoError(t, dbErr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	return &TestDatabase{
		Pool:      pool,
		Container: pgContainer,
		ConnStr:   connStr,
	}
}

// TruncateTables clears every table between test cases.
func (td *TestDatabase) TruncateTables(t *testing.T) {
	ctx := context.Background()
	_, err := td.Pool.Exec(ctx, `
		TRUNCATE channel_snapshots, channel_metadata, video_metadata, video_snapshots, scraped_snapshots
	`)
	require.NoError(t, err)
}

// Cleanup closes the pool and terminates the container.
func (td *TestDatabase) Cleanup(t *testing.T) {
	td.Pool.Close()
	if err := td.Container.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
