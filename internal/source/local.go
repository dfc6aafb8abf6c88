// ABOUTME: Local source serving records from the offline mirror.
// ABOUTME: Wraps any storage.Repository so the dashboard works without network.
package source

import (
	"context"
	"fmt"

	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/storage"
)

// Local reads records from a storage.Repository.
type Local struct {
	repo storage.Repository
}

// NewLocal wraps repo. Close closes repo.
func NewLocal(repo storage.Repository) *Local {
	return &Local{repo: repo}
}

// Name identifies the source in logs.
func (l *Local) Name() string {
	return "local"
}

// Fetch lists the mirrored window for q.UserID.
func (l *Local) Fetch(ctx context.Context, q Query) ([]*models.DailyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	since := q.Since
	records, err := l.repo.ListRecords(q.UserID, &since, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list local records: %w", err)
	}
	return records, nil
}

// Close closes the underlying repository.
func (l *Local) Close() error {
	return l.repo.Close()
}
