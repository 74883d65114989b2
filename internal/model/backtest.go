package model

import "math"

// BacktestResult summarizes one intraday simulation run.
//
// Signals counts every fired entry, including those that never resolved to a
// completed trade before their session ran out; WinRate and AvgPL divide by
// the signal count, not the resolved-trade count.
type BacktestResult struct {
	InsufficientData bool

	Signals       int
	Wins          int
	TotalPL       float64   // sum of resolved-trade P/L, percentage points
	TradePL       []float64 // resolved trades in chronological order
	MaxWinStreak  int
	MaxLossStreak int
	WinRate       float64
	AvgPL         float64
	AvgWin        float64
	AvgLoss       float64
	ProfitFactor  float64 // +Inf when there are no losing trades
}

// NoLosses reports whether the profit factor is the infinite marker.
func (r *BacktestResult) NoLosses() bool {
	return math.IsInf(r.ProfitFactor, 1)
}
