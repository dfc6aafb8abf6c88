// ABOUTME: Postgres source reading the hosted daily_metrics table via pgx.
// ABOUTME: Numeric columns are cast to float8 so NULLs scan into *float64.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectDailyMetrics = `
	SELECT id, user_id::text, date,
		sleep_hours::float8, resting_hr::float8, steps::float8, stress_level::float8,
		sleep_score::float8, hrv::float8, vo2max::float8, mvpa_minutes::float8,
		training_load::float8, health_score::float8, body_battery::float8,
		created_at
	FROM daily_metrics
	WHERE user_id::text = $1 AND date >= $2
	ORDER BY date DESC
`

// Postgres reads records straight from the store's database.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to databaseURL.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Name identifies the source in logs.
func (p *Postgres) Name() string {
	return "postgres"
}

// Fetch queries the window for q.UserID.
func (p *Postgres) Fetch(ctx context.Context, q Query) ([]*models.DailyRecord, error) {
	query, args := buildPostgresQuery(q)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily_metrics: %w", err)
	}
	defer rows.Close()

	var records []*models.DailyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read daily_metrics: %w", err)
	}
	return records, nil
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func buildPostgresQuery(q Query) (string, []any) {
	query := selectDailyMetrics
	args := []any{q.UserID.String(), q.Since}
	if q.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, q.Limit)
	}
	return query, args
}

func scanRecord(rows pgx.Rows) (*models.DailyRecord, error) {
	var r models.DailyRecord
	var userID string
	var date time.Time

	err := rows.Scan(&r.ID, &userID, &date,
		&r.SleepHours, &r.RestingHR, &r.Steps, &r.StressLevel,
		&r.SleepScore, &r.HRV, &r.VO2Max, &r.MVPAMinutes,
		&r.TrainingLoad, &r.HealthScore, &r.BodyBattery,
		&r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan daily_metrics: %w", err)
	}

	r.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user_id %q: %w", userID, err)
	}
	r.Date = date.Format(models.DateLayout)
	return &r, nil
}
