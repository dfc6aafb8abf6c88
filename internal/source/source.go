// ABOUTME: Input boundary for daily records from the hosted data store.
// ABOUTME: Defines the Source interface and the logged, non-failing window fetch.
package source

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
)

// DefaultWindowDays is the trailing window the dashboard fetches.
const DefaultWindowDays = 30

// Query selects one user's records on or after Since.
type Query struct {
	UserID uuid.UUID
	Since  time.Time
	Limit  int
}

// SinceDate formats Since as a calendar day.
func (q Query) SinceDate() string {
	return q.Since.Format(models.DateLayout)
}

// WindowQuery builds the query for the trailing window of days ending at now.
func WindowQuery(userID uuid.UUID, now time.Time, days int) Query {
	if days <= 0 {
		days = DefaultWindowDays
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Query{
		UserID: userID,
		Since:  day.AddDate(0, 0, -days),
	}
}

// Source fetches daily records, newest first.
type Source interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]*models.DailyRecord, error)
	Close() error
}

// Result is the outcome of a window fetch as presentation sees it.
type Result struct {
	Records []*models.DailyRecord
	Failed  bool
}

// FetchWindow runs q against src. A failure is logged and reported through
// Result.Failed with an empty record set; it is never returned as an error.
// A nil logger falls back to log.Default().
func FetchWindow(ctx context.Context, src Source, q Query, logger *log.Logger) Result {
	if logger == nil {
		logger = log.Default()
	}
	records, err := src.Fetch(ctx, q)
	if err != nil {
		logger.Error("error fetching metrics",
			"source", src.Name(),
			"user", q.UserID,
			"since", q.SinceDate(),
			"err", err)
		return Result{Records: []*models.DailyRecord{}, Failed: true}
	}
	logger.Debug("fetched metrics", "source", src.Name(), "records", len(records))
	if records == nil {
		records = []*models.DailyRecord{}
	}
	return Result{Records: records}
}
