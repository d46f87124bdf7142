//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/food-storage/internal/circuitbreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)

	assert.NotNil(t, db.Logs)
	assert.NoError(t, db.HealthCheck(ctx))
	assert.NoError(t, db.SetLogsTTL(ctx, 30))
	assert.NoError(t, db.SetLogsTTL(ctx, 60))
}

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewLogsRepository(db)

	t.Run("create stamps id and timestamp", func(t *testing.T) {
		entry := &LogEntryDocument{
			Level:      "info",
			Message:    "HTTP request",
			RequestID:  "req-consume",
			Method:     "POST",
			Path:       "/api/ingredients/consume",
			StatusCode: 200,
			Duration:   3,
		}

		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create many audit entries", func(t *testing.T) {
		entries := []*LogEntryDocument{
			{Level: "info", Message: "Audit", Action: "add_ingredient", Fields: map[string]interface{}{"ingredient": "Rice"}},
			{Level: "info", Message: "Audit", Action: "prepare_recipe", Fields: map[string]interface{}{"recipe": "Salad"}},
			{Level: "warn", Message: "Audit", Action: "consume_ingredient", Error: "insufficient_quantity"},
		}
		require.NoError(t, repo.CreateMany(ctx, entries))
		require.NoError(t, repo.CreateMany(ctx, nil))
	})

	t.Run("query by action", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{Action: "prepare_recipe"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Salad", entries[0].Fields["recipe"])
	})

	t.Run("query by path and method", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{Path: "CONSUME", Method: "POST"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "req-consume", entries[0].RequestID)
	})

	t.Run("query with time range and limit", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		entries, err := repo.Query(ctx, LogQueryOptions{StartTime: &start, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.False(t, entries[0].Timestamp.Before(entries[1].Timestamp))
	})

	t.Run("count", func(t *testing.T) {
		total, err := repo.Count(ctx, LogQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)

		warnings, err := repo.Count(ctx, LogQueryOptions{Level: "warn"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), warnings)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "Audit", Action: "add_recipe"}))

	count, err := repo.Count(ctx, LogQueryOptions{Action: "add_recipe"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.True(t, repo.GetCircuitBreaker().GetStats().IsHealthy)
}
