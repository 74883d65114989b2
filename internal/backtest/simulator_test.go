package backtest

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

func et(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	return loc
}

func bar(loc *time.Location, day time.Time, hour, min int, open, close float64) model.PriceBar {
	ts := time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc)
	return model.PriceBar{Time: ts, Open: open, High: close + 1, Low: close - 1, Close: close, Volume: 50000}
}

// paddingDays emits afternoon-only sessions: every bar is past noon, so no
// entry can fire. 8 bars per day.
func paddingDays(loc *time.Location, start time.Time, days int) []model.PriceBar {
	var bars []model.PriceBar
	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for b := 0; b < 8; b++ {
			bars = append(bars, bar(loc, day, 13+b/4, (b%4)*15, 100, 100))
		}
	}
	return bars
}

func newSim(t *testing.T) *Simulator {
	t.Helper()
	sim, err := NewSimulator()
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	return sim
}

func TestRun_InsufficientData(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	bars := paddingDays(loc, time.Date(2026, 3, 2, 0, 0, 0, 0, loc), 10) // 80 bars

	res := sim.Run(bars, nil)
	if !res.InsufficientData {
		t.Fatal("expected insufficient-data result below 200 bars")
	}
	if res.Signals != 0 || len(res.TradePL) != 0 {
		t.Errorf("insufficient run must compute nothing, got %+v", res)
	}
}

func TestRun_AllWinners(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	bars := paddingDays(loc, start, 25) // 200 bars
	active := start.AddDate(0, 0, 30)
	bars = append(bars,
		bar(loc, active, 10, 0, 100, 100),     // signal 1, entry 100
		bar(loc, active, 10, 15, 100, 103),    // resolves 1 at +3%; signal 2, entry 103
		bar(loc, active, 10, 30, 103, 106.09), // resolves 2 at +3%
	)

	res := sim.Run(bars, nil)
	if res.InsufficientData {
		t.Fatal("unexpected insufficient-data result")
	}
	if res.Signals != 2 || res.Wins != 2 {
		t.Fatalf("signals/wins = %d/%d, want 2/2", res.Signals, res.Wins)
	}
	if res.WinRate != 100.0 {
		t.Errorf("win rate = %.1f, want 100.0", res.WinRate)
	}
	if res.TotalPL != 6.0 || res.AvgPL != 3.0 || res.AvgWin != 3.0 {
		t.Errorf("pl aggregates = %.2f/%.2f/%.2f, want 6/3/3", res.TotalPL, res.AvgPL, res.AvgWin)
	}
	if !math.IsInf(res.ProfitFactor, 1) {
		t.Errorf("profit factor = %v, want +Inf with no losses", res.ProfitFactor)
	}
	if res.MaxWinStreak != 2 || res.MaxLossStreak != 0 {
		t.Errorf("streaks = %d/%d, want 2/0", res.MaxWinStreak, res.MaxLossStreak)
	}
}

func TestRun_LossAndTimeStopExits(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	bars := paddingDays(loc, start, 25)
	active := start.AddDate(0, 0, 30)
	bars = append(bars,
		bar(loc, active, 10, 0, 100, 100),    // signal 1, entry 100
		bar(loc, active, 10, 15, 100, 97.9),  // resolves 1 capped at -2%; signal 2, entry 97.9
		bar(loc, active, 12, 0, 97.9, 98.5),  // time-stop exit for signal 2, uncapped
	)

	res := sim.Run(bars, nil)
	if res.Signals != 2 || res.Wins != 1 {
		t.Fatalf("signals/wins = %d/%d, want 2/1", res.Signals, res.Wins)
	}
	if len(res.TradePL) != 2 || res.TradePL[0] != -2.0 {
		t.Fatalf("trade pl = %v, want capped -2 first", res.TradePL)
	}
	wantTimeStop := (98.5 - 97.9) / 97.9 * 100
	if math.Abs(res.TradePL[1]-wantTimeStop) > 1e-9 {
		t.Errorf("time-stop pl = %.6f, want %.6f", res.TradePL[1], wantTimeStop)
	}
	if res.WinRate != 50.0 {
		t.Errorf("win rate = %.1f, want 50.0", res.WinRate)
	}
	if res.MaxWinStreak != 1 || res.MaxLossStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", res.MaxWinStreak, res.MaxLossStreak)
	}
	wantPF := wantTimeStop / 2.0
	if math.Abs(res.ProfitFactor-wantPF) > 1e-9 {
		t.Errorf("profit factor = %.6f, want %.6f", res.ProfitFactor, wantPF)
	}
}

func TestRun_UnresolvedSignalStaysInDenominator(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	bars := paddingDays(loc, start, 25)
	active := start.AddDate(0, 0, 30)
	// both bars fire, neither reaches an exit level, and the session ends
	// before noon: the signals vanish from every aggregate but the count
	bars = append(bars,
		bar(loc, active, 11, 15, 100, 100),
		bar(loc, active, 11, 30, 100, 100.5),
	)

	res := sim.Run(bars, nil)
	if res.Signals != 2 {
		t.Fatalf("signals = %d, want 2", res.Signals)
	}
	if res.Wins != 0 || len(res.TradePL) != 0 || res.TotalPL != 0 {
		t.Errorf("unresolved signals must not produce trades, got %+v", res)
	}
	if res.WinRate != 0 {
		t.Errorf("win rate = %.1f, want 0 over the signal denominator", res.WinRate)
	}
}

func TestRun_MorningWindowFilters(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	bars := paddingDays(loc, start, 25)
	active := start.AddDate(0, 0, 30)
	bars = append(bars,
		bar(loc, active, 9, 45, 100, 100),  // inside the window but hour 9: excluded
		bar(loc, active, 11, 45, 100, 100), // past 11:30: excluded
		bar(loc, active, 12, 30, 100, 100), // afternoon: excluded
	)

	res := sim.Run(bars, nil)
	if res.Signals != 0 {
		t.Errorf("signals = %d, want 0 outside the effective window", res.Signals)
	}
}

func TestRun_LookbackTrimsOldSessions(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)
	active := start.AddDate(0, 0, -5)
	bars := []model.PriceBar{
		bar(loc, active, 10, 0, 100, 100),
		bar(loc, active, 10, 15, 100, 103),
	}
	bars = append(bars, paddingDays(loc, start, LookbackSessions)...)

	res := sim.Run(bars, nil)
	if res.Signals != 0 {
		t.Errorf("signals = %d, want 0 once the signal day falls out of the lookback", res.Signals)
	}
}

func TestRun_Deterministic(t *testing.T) {
	loc := et(t)
	sim := newSim(t)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	bars := paddingDays(loc, start, 25)
	active := start.AddDate(0, 0, 30)
	bars = append(bars,
		bar(loc, active, 10, 0, 100, 100),
		bar(loc, active, 10, 15, 100, 101),
		bar(loc, active, 10, 30, 101, 97.5),
		bar(loc, active, 12, 0, 97.5, 99),
	)

	first := sim.Run(bars, nil)
	second := sim.Run(bars, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}
