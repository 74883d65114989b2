package strategy

import (
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// TimeWindow is an inclusive intraday window in the reference timezone.
type TimeWindow struct {
	StartHour, StartMinute int
	EndHour, EndMinute     int
}

// Contains reports whether t's wall-clock time lies inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.StartHour*60+w.StartMinute && m <= w.EndHour*60+w.EndMinute
}

// thresholds are the per-mode gate parameters.
type thresholds struct {
	volumeMult  float64 // current volume must exceed prev volume * this
	rsiMax      float64
	near9EMAPct float64 // max relative distance from the 9-EMA
	pullbackMax float64 // max change-from-open percent
	window      TimeWindow
}

func modeThresholds(mode model.StrategyMode) thresholds {
	if mode == model.ModeStrict {
		return thresholds{
			volumeMult:  1.8,
			rsiMax:      75,
			near9EMAPct: 0.015,
			pullbackMax: 3.0,
			window:      TimeWindow{9, 45, 11, 30},
		}
	}
	return thresholds{
		volumeMult:  1.5,
		rsiMax:      78,
		near9EMAPct: 0.02,
		pullbackMax: 4.5,
		window:      TimeWindow{9, 30, 12, 0},
	}
}

// EntryRule is the reduced entry condition shared with the intraday backtest:
// a pullback cap on change-from-open inside a morning time window. The live
// evaluator layers the remaining gates on top; the backtest applies only this.
type EntryRule struct {
	MaxChangeFromOpen float64
	Window            TimeWindow
}

// BacktestEntryRule returns the entry rule the simulator replays historically.
func BacktestEntryRule() EntryRule {
	return EntryRule{MaxChangeFromOpen: 4.5, Window: TimeWindow{9, 45, 11, 30}}
}

// Allows reports whether an entry may fire at the given move and time.
func (r EntryRule) Allows(chgFromOpen float64, t time.Time) bool {
	return r.Window.Contains(t) && chgFromOpen < r.MaxChangeFromOpen
}
