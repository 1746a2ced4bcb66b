package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ProfitEvent is one triggered large-profit alert.
type ProfitEvent struct {
	ObservedAt      time.Time
	Address         string
	PreviousBalance string // MIST
	CurrentBalance  string // MIST
	Profit          string // MIST
	TxDigest        string
}

// Journal persists profit events.
type Journal interface {
	Record(evt *ProfitEvent) error
	Close() error
}

// NoopJournal is used when no journal path is configured.
type NoopJournal struct{}

func (NoopJournal) Record(*ProfitEvent) error { return nil }
func (NoopJournal) Close() error              { return nil }

// SQLiteJournal stores profit events in a SQLite file.
type SQLiteJournal struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLiteJournal opens (or creates) the database and runs migrations.
func OpenSQLiteJournal(path string) (*SQLiteJournal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profit_events (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			observed_at      INTEGER NOT NULL,
			address          TEXT NOT NULL,
			previous_balance TEXT NOT NULL,
			current_balance  TEXT NOT NULL,
			profit           TEXT NOT NULL,
			tx_digest        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profit_events_ts ON profit_events(observed_at)`,
	}
	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (j *SQLiteJournal) Record(evt *ProfitEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		`INSERT INTO profit_events (observed_at, address, previous_balance, current_balance, profit, tx_digest)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		evt.ObservedAt.Unix(), evt.Address, evt.PreviousBalance, evt.CurrentBalance, evt.Profit, evt.TxDigest,
	)
	if err != nil {
		return fmt.Errorf("insert profit event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (j *SQLiteJournal) Recent(limit int) ([]ProfitEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(
		`SELECT observed_at, address, previous_balance, current_balance, profit, COALESCE(tx_digest, '')
		 FROM profit_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query profit events: %w", err)
	}
	defer rows.Close()

	var events []ProfitEvent
	for rows.Next() {
		var evt ProfitEvent
		var ts int64
		if err := rows.Scan(&ts, &evt.Address, &evt.PreviousBalance, &evt.CurrentBalance, &evt.Profit, &evt.TxDigest); err != nil {
			return nil, fmt.Errorf("scan profit event: %w", err)
		}
		evt.ObservedAt = time.Unix(ts, 0)
		events = append(events, evt)
	}
	return events, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
