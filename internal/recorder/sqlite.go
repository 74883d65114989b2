package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			price           REAL,
			chg_from_open   REAL,
			rsi             REAL,
			strength        INTEGER,
			label           TEXT,
			regime          TEXT,
			benchmark_chg   REAL,
			mode            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_snapshots(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ticker ON signal_snapshots(ticker)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			ticker          TEXT NOT NULL,
			signals         INTEGER,
			wins            INTEGER,
			win_rate        REAL,
			total_pl        REAL,
			avg_pl          REAL,
			avg_win         REAL,
			avg_loss        REAL,
			profit_factor   REAL,
			max_win_streak  INTEGER,
			max_loss_streak INTEGER,
			insufficient    INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(snap *CycleSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.At.Unix()
	for _, rec := range snap.Records {
		_, err := r.db.Exec(`INSERT INTO signal_snapshots
			(timestamp, ticker, price, chg_from_open, rsi, strength, label, regime, benchmark_chg, mode)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			ts, rec.Ticker, rec.Price, rec.ChangeFromOpen, rec.RSI,
			rec.Strength, string(rec.Label), string(snap.Regime), snap.BenchmarkChg, string(snap.Mode),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordBacktest(ticker string, res *model.BacktestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	insufficient := 0
	if res.InsufficientData {
		insufficient = 1
	}
	// SQLite has no +Inf; store the no-loss marker as NULL
	pf := sql.NullFloat64{Float64: res.ProfitFactor, Valid: !math.IsInf(res.ProfitFactor, 1)}

	_, err := r.db.Exec(`INSERT INTO backtest_runs
		(timestamp, ticker, signals, wins, win_rate, total_pl, avg_pl, avg_win, avg_loss,
		 profit_factor, max_win_streak, max_loss_streak, insufficient)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), ticker, res.Signals, res.Wins, res.WinRate, res.TotalPL,
		res.AvgPL, res.AvgWin, res.AvgLoss, pf, res.MaxWinStreak, res.MaxLossStreak, insufficient,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
