// ABOUTME: Data migration between local storage backends.
// ABOUTME: Copies every mirrored record from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Records int
}

// MigrateData copies all data from src to dst storage. Records already in
// dst for the same user and day are replaced.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source records: %w", err)
	}

	for _, r := range data.Records {
		if err := dst.UpsertRecord(r); err != nil {
			return nil, fmt.Errorf("copy record %s/%s: %w", r.UserID, r.Date, err)
		}
		summary.Records++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
