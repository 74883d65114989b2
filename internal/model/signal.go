package model

// StrategyMode selects the gate thresholds for an evaluation pass.
type StrategyMode string

const (
	ModeBalanced StrategyMode = "balanced" // more opportunities
	ModeStrict   StrategyMode = "strict"   // higher win rate
)

// Label classifies a ticker for the current cycle.
type Label string

const (
	LabelStrongBuy Label = "STRONG BUY"
	LabelBuy       Label = "BUY"
	LabelSit       Label = "SIT"
	LabelShort     Label = "SHORT"
)

// Actionable reports whether the label calls for a long entry.
func (l Label) Actionable() bool {
	return l == LabelStrongBuy || l == LabelBuy
}

// Regime is the qualitative market-wide directional label.
type Regime string

const (
	RegimeBullish Regime = "BULLISH"
	RegimeNeutral Regime = "NEUTRAL"
	RegimeChoppy  Regime = "CHOPPY"
)

// IndicatorSnapshot holds the point-in-time indicator values for one ticker.
type IndicatorSnapshot struct {
	RSI           float64
	EMA9          float64
	EMA50         float64
	EMA200        float64
	MACDLine      float64
	SignalLine    float64
	Histogram     float64
	HistogramPrev float64
}

// GateResult records the nine entry gates and how many passed.
type GateResult struct {
	BullishTrend       bool
	VolumeConfirmed    bool
	RSIOK              bool
	PullbackOK         bool
	Near9EMA           bool
	TimeWindowOK       bool
	MACDBullish        bool
	HistogramOK        bool
	RelativeStrengthOK bool
	Strength           int // count of true gates, 0~9
}

// SignalRecord is the per-ticker, per-cycle evaluation output.
type SignalRecord struct {
	Ticker         string
	Price          float64
	ChangeFromOpen float64 // percent vs today's open
	Strength       int
	Label          Label
	RSI            float64
	Gates          GateResult
}
