package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/collector"
	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	"github.com/M-Billingsley/day-trade-monitor/internal/tradelog"
)

// FormatMarketSnapshot renders the broad-index one-liner.
func FormatMarketSnapshot(quotes []collector.IndexQuote) string {
	parts := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if !q.OK {
			parts = append(parts, fmt.Sprintf("%s —", q.Name))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %+.1f%%", q.Name, q.Change))
	}
	return "🗽 Market Snapshot: " + strings.Join(parts, " | ")
}

// FormatRegime renders the market-regime banner line.
func FormatRegime(regime model.Regime, benchmarkChg float64) string {
	var label string
	switch regime {
	case model.RegimeBullish:
		label = "🟢 Bullish Day – Trade Aggressively"
	case model.RegimeNeutral:
		label = "🟡 Neutral Day – Stick to Strong Buys"
	default:
		label = "🔴 Choppy/Bearish Day – Caution Advised"
	}
	return fmt.Sprintf("%s (QQQ %+.1f%%)", label, benchmarkChg)
}

// FormatAlert renders the per-ticker STRONG BUY alert message.
func FormatAlert(rec model.SignalRecord, et time.Time) string {
	return fmt.Sprintf("🚀 STRONG BUY %s @ $%.2f (%+.1f%%) — %s ET",
		rec.Ticker, rec.Price, rec.ChangeFromOpen, et.Format("15:04"))
}

// FormatCycleReport renders all ticker cards of one evaluation cycle.
func FormatCycleReport(regime model.Regime, benchmarkChg float64, records []model.SignalRecord) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Trade Signals</b> | %s\n", FormatRegime(regime, benchmarkChg)))
	if len(records) == 0 {
		b.WriteString("\nNo tickers evaluated this cycle\n")
		return b.String()
	}
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("\n%s <b>%s</b> $%.2f (%+.1f%%) — %s %d/9",
			labelIcon(rec.Label), rec.Ticker, rec.Price, rec.ChangeFromOpen, rec.Label, rec.Strength))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatMorningSummary renders the morning digest: the regime plus every
// STRONG BUY, or a "none" line.
func FormatMorningSummary(regime model.Regime, benchmarkChg float64, records []model.SignalRecord) string {
	var b strings.Builder
	b.WriteString("📈 Day Trade Monitor Morning Summary\n\n")
	b.WriteString(fmt.Sprintf("Market Regime: %s\n\n", FormatRegime(regime, benchmarkChg)))
	b.WriteString("STRONG BUY Signals:\n")
	found := false
	for _, rec := range records {
		if rec.Label != model.LabelStrongBuy {
			continue
		}
		found = true
		b.WriteString(fmt.Sprintf("• %s @ $%.2f (%+.1f%%) — %d/9\n",
			rec.Ticker, rec.Price, rec.ChangeFromOpen, rec.Strength))
	}
	if !found {
		b.WriteString("None right now\n")
	}
	return b.String()
}

// FormatGates renders the pass/fail breakdown of the nine entry gates.
func FormatGates(g model.GateResult) string {
	rows := []struct {
		name string
		pass bool
	}{
		{"Bullish Trend", g.BullishTrend},
		{"Volume OK", g.VolumeConfirmed},
		{"RSI OK", g.RSIOK},
		{"Pullback OK", g.PullbackOK},
		{"Near 9-EMA", g.Near9EMA},
		{"Time Window", g.TimeWindowOK},
		{"MACD Bullish", g.MACDBullish},
		{"Histogram OK", g.HistogramOK},
		{"QQQ Rel Strength", g.RelativeStrengthOK},
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>9 Trade Gates</b> — %d/9\n", g.Strength))
	for _, row := range rows {
		mark := "❌ FAIL"
		if row.pass {
			mark = "✅ PASS"
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", row.name, mark))
	}
	return b.String()
}

// FormatPlan renders the execution instructions for a buy signal.
func FormatPlan(rec model.SignalRecord, plan *model.ExecutionPlan) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>Execution Instructions – BUY LONG %s</b>\n\n", rec.Ticker))
	b.WriteString(fmt.Sprintf("Buy Order: %d shares at $%.2f\n", plan.Shares, plan.SuggestedBuy))
	b.WriteString(fmt.Sprintf("Total Cost: $%.2f\n", plan.TotalCost))
	b.WriteString(fmt.Sprintf("Limit range: $%.2f – $%.2f\n\n", plan.BuyLow, plan.BuyHigh))

	b.WriteString("Take-Profit Targets (GTC):\n")
	for _, tgt := range plan.Targets {
		b.WriteString(fmt.Sprintf("• Sell at $%.2f (+%d%%) → $%.2f profit\n",
			tgt.Price, int(tgt.Pct), tgt.Profit))
	}

	b.WriteString(fmt.Sprintf("\nProtective Stop: $%.2f\n", plan.StopPrice))
	b.WriteString(fmt.Sprintf("Max risk this trade ≈ $%.0f (%.1f%%)\n", plan.RiskDollars, plan.RiskPct))
	b.WriteString(fmt.Sprintf("Once the +3%% target is hit, move the stop to $%.2f\n", plan.TrailingStop))
	return b.String()
}

// FormatBacktestReport renders one simulation run's statistics.
func FormatBacktestReport(ticker string, res *model.BacktestResult) string {
	if res.InsufficientData {
		return fmt.Sprintf("📊 Backtest %s: not enough intraday data", ticker)
	}
	if res.Signals == 0 {
		return fmt.Sprintf("📊 Backtest %s: no BUY signals in the lookback window", ticker)
	}
	pf := "∞"
	if !math.IsInf(res.ProfitFactor, 1) {
		pf = fmt.Sprintf("%.2f", res.ProfitFactor)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Intraday Backtest – %s</b>\n\n", ticker))
	b.WriteString(fmt.Sprintf("Signals: %d | Win Rate: %.1f%%\n", res.Signals, res.WinRate))
	b.WriteString(fmt.Sprintf("Avg P/L: %.2f%% | Avg Win: +%.2f%% | Avg Loss: %.2f%%\n",
		res.AvgPL, res.AvgWin, res.AvgLoss))
	b.WriteString(fmt.Sprintf("Profit Factor: %s\n", pf))
	b.WriteString(fmt.Sprintf("Max Win Streak: %d | Max Loss Streak: %d\n",
		res.MaxWinStreak, res.MaxLossStreak))
	b.WriteString(fmt.Sprintf("Total Hypothetical Return: %.1f%%\n", res.TotalPL))
	return b.String()
}

// FormatHeatReport renders the open-position risk summary.
func FormatHeatReport(report *tradelog.HeatReport) string {
	if len(report.Positions) == 0 {
		return "✅ No open positions – Account Heat: 0%"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔥 <b>Portfolio Heat</b>: %.1f%%\n", report.HeatPct))
	for _, pos := range report.Positions {
		if !pos.PriceKnown {
			b.WriteString(fmt.Sprintf("\n%s: %d @ $%.2f → — (price unavailable)",
				pos.Ticker, pos.Shares, pos.Entry))
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s: %d @ $%.2f → $%.2f | P/L $%.0f (%+.1f%%) | Exposure %.1f%%",
			pos.Ticker, pos.Shares, pos.Entry, pos.Current,
			pos.UnrealizedPL, pos.UnrealizedPct, pos.ExposurePct))
	}
	b.WriteString("\n")
	return b.String()
}

func labelIcon(label model.Label) string {
	switch label {
	case model.LabelStrongBuy:
		return "🟢"
	case model.LabelBuy:
		return "🟩"
	case model.LabelSit:
		return "🟧"
	default:
		return "🟥"
	}
}
