// ABOUTME: Tests for the local source over a SQLite mirror.
// ABOUTME: Verifies window filtering and newest-first ordering.
package source

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFetch(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "vitral.db"))
	require.NoError(t, err)

	src := NewLocal(db)
	defer src.Close()

	user := uuid.New()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	for _, daysAgo := range []int{0, 3, 40} {
		r := models.NewDailyRecord(user, now.AddDate(0, 0, -daysAgo))
		r.Steps = models.Float(float64(8000 + daysAgo))
		require.NoError(t, db.UpsertRecord(r))
	}

	records, err := src.Fetch(context.Background(), WindowQuery(user, now, 30))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-30", records[0].Date)
	assert.Equal(t, "2025-06-27", records[1].Date)
	assert.Equal(t, "local", src.Name())
}

func TestLocalFetchCancelled(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "vitral.db"))
	require.NoError(t, err)
	src := NewLocal(db)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Fetch(ctx, Query{UserID: uuid.New()})
	assert.ErrorIs(t, err, context.Canceled)
}
