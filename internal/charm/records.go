// ABOUTME: Daily record operations for Charm KV storage.
// ABOUTME: Uses user/day keys and client-side filtering; implements storage.Repository.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
	"github.com/harperreed/vitral/internal/storage"
)

// Compile-time check that Client implements storage.Repository.
var _ storage.Repository = (*Client)(nil)

// recordKey builds the key for a user's day: record:<user>:<date>.
func recordKey(userID uuid.UUID, date string) string {
	return RecordPrefix + userID.String() + ":" + date
}

// userPrefix is the key prefix shared by all of a user's records.
func userPrefix(userID uuid.UUID) string {
	return RecordPrefix + userID.String() + ":"
}

// UpsertRecord stores r, replacing any record for the same day.
func (c *Client) UpsertRecord(r *models.DailyRecord) error {
	data, err := marshalJSON(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return c.set(recordKey(r.UserID, r.Date), data)
}

// GetRecord retrieves the record for a user and day.
func (c *Client) GetRecord(userID uuid.UUID, date string) (*models.DailyRecord, error) {
	data, ok, err := c.get(recordKey(userID, date))
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("record %s: %w", date, storage.ErrNotFound)
	}

	r, err := unmarshalJSON[models.DailyRecord](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return r, nil
}

// ListRecords retrieves a user's records on or after since.
// Results are sorted by date descending (most recent first).
func (c *Client) ListRecords(userID uuid.UUID, since *time.Time, limit int) ([]*models.DailyRecord, error) {
	records, err := c.decodeRecords(userPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return filterRecords(records, since, limit), nil
}

// DeleteRecord removes the record for a user and day.
func (c *Client) DeleteRecord(userID uuid.UUID, date string) error {
	key := recordKey(userID, date)
	_, ok, err := c.get(key)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if !ok {
		return fmt.Errorf("record %s: %w", date, storage.ErrNotFound)
	}
	if err := c.delete(key); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// GetAllData retrieves every record for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	records, err := c.decodeRecords(RecordPrefix)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	sortNewestFirst(records)
	return &storage.ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "vitral",
		Records:    records,
	}, nil
}

// ImportData stores every record in data, syncing once at the end.
func (c *Client) ImportData(data *storage.ExportData) error {
	c.SetAutoSync(false)
	defer c.SetAutoSync(true)

	for _, r := range data.Records {
		if err := c.UpsertRecord(r); err != nil {
			return fmt.Errorf("import record: %w", err)
		}
	}
	return c.Sync()
}

func (c *Client) decodeRecords(prefix string) ([]*models.DailyRecord, error) {
	allData, err := c.listByPrefix(prefix)
	if err != nil {
		return nil, err
	}

	var records []*models.DailyRecord
	for _, data := range allData {
		r, err := unmarshalJSON[models.DailyRecord](data)
		if err != nil {
			continue // Skip invalid entries
		}
		records = append(records, r)
	}
	return records, nil
}

// filterRecords applies the since cutoff, newest-first order and limit.
func filterRecords(records []*models.DailyRecord, since *time.Time, limit int) []*models.DailyRecord {
	if since != nil {
		cutoff := since.Format(models.DateLayout)
		kept := records[:0]
		for _, r := range records {
			if r.Date >= cutoff {
				kept = append(kept, r)
			}
		}
		records = kept
	}

	sortNewestFirst(records)

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

func sortNewestFirst(records []*models.DailyRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}
