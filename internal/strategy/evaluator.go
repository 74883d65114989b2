package strategy

import (
	"math"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/calculator"
	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// Evaluator scores one ticker's recent price series against the nine entry
// gates and classifies the result. The reference time is an explicit input so
// the time-window gate is deterministic under test.
type Evaluator struct {
	Mode model.StrategyMode
	Loc  *time.Location
}

// NewEvaluator builds an evaluator pinned to US Eastern time.
func NewEvaluator(mode model.StrategyMode) (*Evaluator, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &Evaluator{Mode: mode, Loc: loc}, nil
}

// Evaluate produces a SignalRecord for the ticker, or ok=false when the
// series is empty or today's open is unusable. A skipped ticker never fails
// the batch; the caller just gets no record for it this cycle.
func (e *Evaluator) Evaluate(series *model.PriceSeries, benchmarkChgFromOpen float64, now time.Time) (model.SignalRecord, bool) {
	today, ok := series.Last()
	if !ok || today.Open <= 0 {
		return model.SignalRecord{}, false
	}

	th := modeThresholds(e.Mode)
	closes := series.Closes()
	curr := today.Close
	chgFromOpen := (curr - today.Open) / today.Open * 100

	prevVolume := 0.0
	if n := len(series.Bars); n > 1 {
		prevVolume = series.Bars[n-2].Volume
	}

	snap := model.IndicatorSnapshot{
		RSI:    calculator.CalculateRSI(closes, 14),
		EMA9:   calculator.CalculateEMA(closes, 9),
		EMA50:  calculator.CalculateEMA(closes, 50),
		EMA200: calculator.CalculateEMA(closes, 200),
	}
	macd := calculator.CalculateMACD(closes, 12, 26, 9)
	snap.MACDLine = macd.Line
	snap.SignalLine = macd.Signal
	snap.Histogram = macd.Histogram
	snap.HistogramPrev = macd.HistogramPrev

	gates := model.GateResult{
		BullishTrend:       snap.EMA50 > snap.EMA200,
		VolumeConfirmed:    today.Volume > prevVolume*th.volumeMult,
		RSIOK:              snap.RSI < th.rsiMax,
		PullbackOK:         chgFromOpen < th.pullbackMax,
		TimeWindowOK:       th.window.Contains(now.In(e.Loc)),
		MACDBullish:        macd.Line > macd.Signal,
		RelativeStrengthOK: chgFromOpen > benchmarkChgFromOpen-0.5,
	}
	if snap.EMA9 > 0 {
		gates.Near9EMA = math.Abs(curr-snap.EMA9)/snap.EMA9 < th.near9EMAPct
	}
	histogramOK := macd.Histogram > 0
	if e.Mode == model.ModeStrict {
		histogramOK = histogramOK && macd.Rising()
	}
	gates.HistogramOK = histogramOK

	gates.Strength = countGates(gates)

	return model.SignalRecord{
		Ticker:         series.Symbol,
		Price:          curr,
		ChangeFromOpen: chgFromOpen,
		Strength:       gates.Strength,
		Label:          classify(gates, chgFromOpen, snap.RSI),
		RSI:            snap.RSI,
		Gates:          gates,
	}, true
}

func countGates(g model.GateResult) int {
	n := 0
	for _, pass := range []bool{
		g.BullishTrend, g.VolumeConfirmed, g.RSIOK, g.PullbackOK, g.Near9EMA,
		g.TimeWindowOK, g.MACDBullish, g.HistogramOK, g.RelativeStrengthOK,
	} {
		if pass {
			n++
		}
	}
	return n
}

// classify maps the gate count to a label, first match wins. BUY requires the
// time gate on top of the 7-of-9 count even though the time gate is already
// one of the nine; the double count is part of the rule set.
func classify(g model.GateResult, chgFromOpen, rsi float64) model.Label {
	switch {
	case g.Strength == 9:
		return model.LabelStrongBuy
	case g.Strength >= 7 && g.TimeWindowOK:
		return model.LabelBuy
	case chgFromOpen > 6 || rsi >= 82:
		return model.LabelSit
	default:
		return model.LabelShort
	}
}
