// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Mirrors the hosted daily_metrics table, keyed by user and day.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_metrics (
		id INTEGER NOT NULL DEFAULT 0,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		sleep_hours REAL,
		resting_hr REAL,
		steps REAL,
		stress_level REAL,
		sleep_score REAL,
		hrv REAL,
		vo2max REAL,
		mvpa_minutes REAL,
		training_load REAL,
		health_score REAL,
		body_battery REAL,
		created_at TEXT,
		synced_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_daily_metrics_date ON daily_metrics(date DESC);
	CREATE INDEX IF NOT EXISTS idx_daily_metrics_user_date ON daily_metrics(user_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
