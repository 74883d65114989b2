package tradelog

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the trade log in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] trade log opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			date        INTEGER NOT NULL,
			ticker      TEXT NOT NULL,
			entry_price REAL NOT NULL,
			exit_price  REAL NOT NULL DEFAULT 0,
			shares      REAL NOT NULL,
			pl          REAL NOT NULL DEFAULT 0,
			notes       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Append writes one entry to the log.
func (s *SQLiteStore) Append(e model.TradeLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := e.Date
	if date.IsZero() {
		date = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO trades (date, ticker, entry_price, exit_price, shares, pl, notes)
		 VALUES (?,?,?,?,?,?,?)`,
		date.Unix(), e.Ticker, e.EntryPrice, e.ExitPrice, e.Shares, e.PL, e.Notes,
	)
	return err
}

// All reads the full log in insertion order.
func (s *SQLiteStore) All() ([]model.TradeLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, date, ticker, entry_price, exit_price, shares, pl, notes
		 FROM trades ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TradeLogEntry
	for rows.Next() {
		var e model.TradeLogEntry
		var unix int64
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &unix, &e.Ticker, &e.EntryPrice, &e.ExitPrice,
			&e.Shares, &e.PL, &notes); err != nil {
			return nil, err
		}
		e.Date = time.Unix(unix, 0)
		e.Notes = notes.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
