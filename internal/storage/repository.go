// ABOUTME: Repository interface for the local record mirror.
// ABOUTME: Implemented by the SQLite DB and the Charm KV client.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
)

// ErrNotFound is returned when no record exists for a user and day.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for daily records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Record operations. UpsertRecord replaces any record for the same
	// user and day.
	UpsertRecord(r *models.DailyRecord) error
	GetRecord(userID uuid.UUID, date string) (*models.DailyRecord, error)
	ListRecords(userID uuid.UUID, since *time.Time, limit int) ([]*models.DailyRecord, error)
	DeleteRecord(userID uuid.UUID, date string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
