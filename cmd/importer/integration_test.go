//go:build integration

// cmd/importer/integration_test.go
package main

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"hackathon-importer/internal/config"
	"hackathon-importer/internal/database"
	"hackathon-importer/internal/store"
)

func setupTestDatabase(ctx context.Context, t *testing.T) string {
	// Start a postgres container
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(context.Background()))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestPostgresSink_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	connStr := setupTestDatabase(ctx, t)
	u := newUpstream(t)

	cfg := testConfig(u)
	cfg.Sink = config.SinkPostgres
	cfg.DBURL = connStr
	cfg.Dedupe = true

	// --- ACT ---
	// Two live runs over the same account; dedupe keeps the second from duplicating rows.
	for i := 0; i < 2; i++ {
		im, cleanup, err := buildImporter(ctx, cfg, false, testLogger())
		require.NoError(t, err)

		summary, err := im.Run(ctx)
		cleanup()
		require.NoError(t, err)
		assert.Equal(t, 2, len(summary.Projects))
	}

	// --- ASSERT ---
	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer dbpool.Close()
	q := database.New(dbpool)

	weather, err := q.ListAchievementsByGithubURL(ctx, "https://github.com/octo/devpost-weather")
	require.NoError(t, err)
	require.Len(t, weather, 1)
	assert.Equal(t, "HackMIT", weather[0].Title)
	require.NotNil(t, weather[0].Year)
	assert.Equal(t, "2023", *weather[0].Year)
	assert.Equal(t, []string{"Go"}, weather[0].Technologies)
	assert.Equal(t, 2023, weather[0].Date.Year())

	nasa, err := q.ListAchievementsByGithubURL(ctx, "https://github.com/octo/nasa-space-apps-2024")
	require.NoError(t, err)
	require.Len(t, nasa, 1)
	assert.Equal(t, "Nasa Space Apps 2024", nasa[0].Title)
}

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	connStr := setupTestDatabase(ctx, t)
	require.NoError(t, runMigrations(connStr))
	// Migrations are idempotent.
	require.NoError(t, runMigrations(connStr))

	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer dbpool.Close()

	s := store.NewPostgresStore(database.New(dbpool), false, testLogger())
	row := store.Row{
		Title:        "Code Jam",
		ProjectName:  "jam",
		Year:         "2022",
		Category:     "hackathon",
		Technologies: []string{},
		GithubURL:    "https://github.com/octo/jam",
		Date:         "2022-01-01",
	}

	n, err := s.Insert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.Insert(ctx, row)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := database.New(dbpool).ListAchievementsByGithubURL(ctx, row.GithubURL)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
