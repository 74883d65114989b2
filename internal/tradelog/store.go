// Package tradelog persists the append-only trade log and derives the
// portfolio heat (open-position risk) from it.
package tradelog

import "github.com/M-Billingsley/day-trade-monitor/internal/model"

// Store persists trade log entries. Writes are sequential, triggered by
// discrete user actions; a write failure aborts only that action.
type Store interface {
	Append(entry model.TradeLogEntry) error
	All() ([]model.TradeLogEntry, error)
	Close() error
}

// OpenPositions filters the entries whose exit price has not been set.
func OpenPositions(entries []model.TradeLogEntry) []model.TradeLogEntry {
	var open []model.TradeLogEntry
	for _, e := range entries {
		if e.Open() {
			open = append(open, e)
		}
	}
	return open
}
