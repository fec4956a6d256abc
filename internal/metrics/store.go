package metrics

import (
	"context"
	"database/sql"
	"time"
)

// RequestMetric records metadata for a single backend request.
type RequestMetric struct {
	Method     string
	Endpoint   string
	StatusCode int
	LatencyMS  int64
	Timestamp  time.Time
}

// Store persists request metrics to SQLite. It satisfies the API client's
// observer interface, so every request lands here automatically.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// sqliteTime is the text layout timestamps are stored in. SQLite's date
// functions parse it, and it compares correctly as a string.
const sqliteTime = "2006-01-02 15:04:05"

// ObserveRequest records one request. Errors are swallowed: metrics must
// never fail a user-facing request.
func (s *Store) ObserveRequest(method, endpoint string, statusCode int, latency time.Duration) {
	_, _ = s.db.Exec(
		`INSERT INTO request_metrics (method, endpoint, status_code, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		method, endpoint, statusCode, latency.Milliseconds(), time.Now().UTC().Format(sqliteTime))
}

// Record saves a metric explicitly, used by tests and backfills.
func (s *Store) Record(ctx context.Context, m RequestMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO request_metrics (method, endpoint, status_code, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		m.Method, m.Endpoint, m.StatusCode, m.LatencyMS, ts.UTC().Format(sqliteTime))
	return err
}

// DailyUsage represents request totals for a single day.
type DailyUsage struct {
	Date         string
	Requests     int
	Failures     int
	AvgLatencyMS float64
}

// GetDailyUsage retrieves request totals for the last N days.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days).Format(sqliteTime)
	rows, err := s.db.QueryContext(ctx,
		`SELECT date(timestamp) AS day,
		        COUNT(*),
		        SUM(CASE WHEN status_code < 200 OR status_code > 299 THEN 1 ELSE 0 END),
		        AVG(latency_ms)
		 FROM request_metrics
		 WHERE timestamp >= ?
		 GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		var avg sql.NullFloat64
		if err := rows.Scan(&u.Date, &u.Requests, &u.Failures, &avg); err != nil {
			return nil, err
		}
		if avg.Valid {
			u.AvgLatencyMS = avg.Float64
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) error {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays).Format(sqliteTime)
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM request_metrics WHERE timestamp < ?`, threshold)
	return err
}
