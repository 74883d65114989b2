package recorder

import (
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// CycleSnapshot holds one refresh cycle's output for persistence.
type CycleSnapshot struct {
	At           time.Time
	Regime       model.Regime
	BenchmarkChg float64 // benchmark change from previous close, percent
	Mode         model.StrategyMode
	Records      []model.SignalRecord
}

// Recorder persists historical evaluation data for later analysis.
type Recorder interface {
	RecordCycle(snap *CycleSnapshot) error
	RecordBacktest(ticker string, res *model.BacktestResult) error
	Close() error
}
