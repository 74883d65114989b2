package tradelog

import (
	"log"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// estRiskPct is the assumed risk on any open position: 2% of its exposure.
const estRiskPct = 0.02

// PriceFunc resolves the current price for a ticker.
type PriceFunc func(ticker string) (float64, error)

// PositionHeat is the per-position breakdown of the heat report.
type PositionHeat struct {
	Ticker        string
	Shares        int
	Entry         float64
	Current       float64
	UnrealizedPL  float64
	UnrealizedPct float64
	ExposurePct   float64
	PriceKnown    bool // false when the current price could not be fetched
}

// HeatReport aggregates estimated risk across all open positions as a
// percentage of the account. Positions whose price lookup failed still
// appear in the breakdown but are excluded from the totals.
type HeatReport struct {
	Positions     []PositionHeat
	TotalExposure float64
	TotalRisk     float64
	HeatPct       float64
}

// ComputeHeat reads the open positions out of the log entries and prices them.
func ComputeHeat(entries []model.TradeLogEntry, accountSize float64, price PriceFunc) *HeatReport {
	report := &HeatReport{}
	for _, trade := range OpenPositions(entries) {
		pos := PositionHeat{
			Ticker: trade.Ticker,
			Shares: int(trade.Shares),
			Entry:  trade.EntryPrice,
		}
		curr, err := price(trade.Ticker)
		if err != nil || curr <= 0 {
			if err != nil {
				log.Printf("[WARN] heat: price %s: %v", trade.Ticker, err)
			}
			report.Positions = append(report.Positions, pos)
			continue
		}

		pos.PriceKnown = true
		pos.Current = curr
		pos.UnrealizedPL = trade.Shares * (curr - trade.EntryPrice)
		if trade.EntryPrice > 0 {
			pos.UnrealizedPct = (curr - trade.EntryPrice) / trade.EntryPrice * 100
		}
		exposure := trade.Shares * curr
		if accountSize > 0 {
			pos.ExposurePct = exposure / accountSize * 100
		}
		report.TotalExposure += exposure
		report.TotalRisk += exposure * estRiskPct
		report.Positions = append(report.Positions, pos)
	}
	if accountSize > 0 {
		report.HeatPct = report.TotalRisk / accountSize * 100
	}
	return report
}
