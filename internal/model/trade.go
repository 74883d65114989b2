package model

import "time"

// TradeLogEntry is one row of the append-only trade log.
// A position is open while ExitPrice is zero.
type TradeLogEntry struct {
	ID         int64
	Date       time.Time
	Ticker     string
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	PL         float64
	Notes      string
}

// Open reports whether the position has not been exited yet.
func (e TradeLogEntry) Open() bool {
	return e.ExitPrice == 0
}
