// Package metrics persists bot command usage to SQLite.
package metrics

import (
	"database/sql"
	"time"
)

// CommandEvent records a single handled bot command.
type CommandEvent struct {
	Command    string
	ChatID     int64
	DurationMS int64
	Success    bool
	Timestamp  time.Time
}

// Store handles persistence of command events.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store on an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a command event. A zero timestamp defaults to now.
func (s *Store) Record(ev CommandEvent) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO command_log (command, chat_id, duration_ms, success, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.Command, ev.ChatID, ev.DurationMS, ev.Success, ts,
	)
	return err
}

// DailyUsage represents command totals for a single day.
type DailyUsage struct {
	Date     string
	Commands int
	Failures int
}

// GetDailyUsage aggregates command counts for the last N days, newest
// day first.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.Query(
		`SELECT date(timestamp) AS day,
		        COUNT(*),
		        SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)
		 FROM command_log
		 WHERE timestamp >= ?
		 GROUP BY day
		 ORDER BY day DESC`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Commands, &u.Failures); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes events older than the given number of days and
// returns how many rows went away.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	res, err := s.db.Exec(`DELETE FROM command_log WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
