// ABOUTME: Daily record CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for records.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
)

const recordColumns = `id, user_id, date,
	sleep_hours, resting_hr, steps, stress_level, sleep_score, hrv,
	vo2max, mvpa_minutes, training_load, health_score, body_battery,
	created_at`

// UpsertRecord stores r, replacing any existing record for the same day.
func (d *DB) UpsertRecord(r *models.DailyRecord) error {
	query := `
		INSERT INTO daily_metrics (` + recordColumns + `, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			id = excluded.id,
			sleep_hours = excluded.sleep_hours,
			resting_hr = excluded.resting_hr,
			steps = excluded.steps,
			stress_level = excluded.stress_level,
			sleep_score = excluded.sleep_score,
			hrv = excluded.hrv,
			vo2max = excluded.vo2max,
			mvpa_minutes = excluded.mvpa_minutes,
			training_load = excluded.training_load,
			health_score = excluded.health_score,
			body_battery = excluded.body_battery,
			created_at = excluded.created_at,
			synced_at = excluded.synced_at
	`
	var createdAt *string
	if r.CreatedAt != nil {
		s := r.CreatedAt.Format(time.RFC3339)
		createdAt = &s
	}

	_, err := d.db.Exec(query,
		r.ID, r.UserID.String(), r.Date,
		r.SleepHours, r.RestingHR, r.Steps, r.StressLevel, r.SleepScore, r.HRV,
		r.VO2Max, r.MVPAMinutes, r.TrainingLoad, r.HealthScore, r.BodyBattery,
		createdAt, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", r.Date, err)
	}
	return nil
}

// GetRecord retrieves the record for a user and day.
func (d *DB) GetRecord(userID uuid.UUID, date string) (*models.DailyRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM daily_metrics WHERE user_id = ? AND date = ?`
	r, err := scanRecord(d.db.QueryRow(query, userID.String(), date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s: %w", date, ErrNotFound)
		}
		return nil, err
	}
	return r, nil
}

// ListRecords retrieves a user's records on or after since.
// Results are sorted by date descending (most recent first).
func (d *DB) ListRecords(userID uuid.UUID, since *time.Time, limit int) ([]*models.DailyRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM daily_metrics WHERE user_id = ?`
	args := []interface{}{userID.String()}

	if since != nil {
		query += " AND date >= ?"
		args = append(args, since.Format(models.DateLayout))
	}
	query += " ORDER BY date DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// DeleteRecord removes the record for a user and day.
func (d *DB) DeleteRecord(userID uuid.UUID, date string) error {
	result, err := d.db.Exec("DELETE FROM daily_metrics WHERE user_id = ? AND date = ?", userID.String(), date)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %s: %w", date, ErrNotFound)
	}

	return nil
}

// listAllRecords returns every stored record, newest first.
func (d *DB) listAllRecords() ([]*models.DailyRecord, error) {
	rows, err := d.db.Query(`SELECT ` + recordColumns + ` FROM daily_metrics ORDER BY date DESC, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a DailyRecord.
func scanRecord(row rowScanner) (*models.DailyRecord, error) {
	var r models.DailyRecord
	var userID string
	var createdAt sql.NullString

	err := row.Scan(&r.ID, &userID, &r.Date,
		&r.SleepHours, &r.RestingHR, &r.Steps, &r.StressLevel, &r.SleepScore, &r.HRV,
		&r.VO2Max, &r.MVPAMinutes, &r.TrainingLoad, &r.HealthScore, &r.BodyBattery,
		&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	r.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", userID, err)
	}
	if createdAt.Valid {
		if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
			r.CreatedAt = &t
		}
	}

	return &r, nil
}

// scanRecords scans multiple rows into a slice of DailyRecords.
func scanRecords(rows *sql.Rows) ([]*models.DailyRecord, error) {
	var records []*models.DailyRecord

	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
