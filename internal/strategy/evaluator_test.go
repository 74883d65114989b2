package strategy

import (
	"testing"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// allGatesSeries returns a 5-bar series that passes every gate at 10:00 ET
// against a flat benchmark: mild uptrend, mixed diffs keeping RSI moderate,
// a 2x volume spike on the last bar, and a close hugging the 9-EMA.
func allGatesSeries() *model.PriceSeries {
	day := time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC)
	closes := []float64{100, 99, 101, 100, 101.5}
	opens := []float64{100, 100, 99.5, 100.5, 99}
	bars := make([]model.PriceBar, len(closes))
	for i := range closes {
		vol := 100000.0
		if i == len(closes)-1 {
			vol = 200000.0
		}
		bars[i] = model.PriceBar{
			Time:   day.AddDate(0, 0, i-len(closes)+1),
			Open:   opens[i],
			High:   closes[i] + 1,
			Low:    closes[i] - 1,
			Close:  closes[i],
			Volume: vol,
		}
	}
	return &model.PriceSeries{Symbol: "SOXL", Bars: bars}
}

func eastern(t *testing.T, hour, min int) (time.Time, *time.Location) {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	return time.Date(2026, 1, 5, hour, min, 0, 0, loc), loc
}

func TestEvaluate_AllGatesStrongBuy(t *testing.T) {
	ev, err := NewEvaluator(model.ModeBalanced)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	now, _ := eastern(t, 10, 0)

	rec, ok := ev.Evaluate(allGatesSeries(), 0, now)
	if !ok {
		t.Fatal("expected a signal record")
	}
	if rec.Strength != 9 {
		t.Fatalf("strength = %d, want 9 (gates %+v)", rec.Strength, rec.Gates)
	}
	if rec.Label != model.LabelStrongBuy {
		t.Errorf("label = %s, want STRONG BUY", rec.Label)
	}
	if rec.ChangeFromOpen < 2.5 || rec.ChangeFromOpen > 2.6 {
		t.Errorf("change from open = %.3f, want ~2.525", rec.ChangeFromOpen)
	}
}

func TestEvaluate_OutsideWindowDowngrades(t *testing.T) {
	ev, err := NewEvaluator(model.ModeBalanced)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	// 14:00 ET: the time gate fails, so strength drops to 8 and the 7-of-9
	// BUY path is also blocked because it requires the time gate itself.
	now, _ := eastern(t, 14, 0)

	rec, ok := ev.Evaluate(allGatesSeries(), 0, now)
	if !ok {
		t.Fatal("expected a signal record")
	}
	if rec.Strength != 8 {
		t.Fatalf("strength = %d, want 8", rec.Strength)
	}
	if rec.Label == model.LabelStrongBuy || rec.Label == model.LabelBuy {
		t.Errorf("label = %s, want a non-buy label outside the window", rec.Label)
	}
}

func TestEvaluate_StrictThresholds(t *testing.T) {
	ev, err := NewEvaluator(model.ModeStrict)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	now, _ := eastern(t, 10, 0)

	rec, ok := ev.Evaluate(allGatesSeries(), 0, now)
	if !ok {
		t.Fatal("expected a signal record")
	}
	// The same series passes strict volume (2x > 1.8x) and the rising
	// histogram requirement; 10:00 sits inside the strict window too.
	if !rec.Gates.VolumeConfirmed || !rec.Gates.HistogramOK || !rec.Gates.TimeWindowOK {
		t.Errorf("strict gates failed unexpectedly: %+v", rec.Gates)
	}
}

func TestEvaluate_SkipsUnusableSeries(t *testing.T) {
	ev, err := NewEvaluator(model.ModeBalanced)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	now, _ := eastern(t, 10, 0)

	if _, ok := ev.Evaluate(&model.PriceSeries{Symbol: "TQQQ"}, 0, now); ok {
		t.Error("empty series must be skipped")
	}
	zeroOpen := &model.PriceSeries{Symbol: "TQQQ", Bars: []model.PriceBar{{Close: 50}}}
	if _, ok := ev.Evaluate(zeroOpen, 0, now); ok {
		t.Error("zero open must be skipped")
	}
}

func TestEvaluate_RelativeStrengthGate(t *testing.T) {
	ev, err := NewEvaluator(model.ModeBalanced)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	now, _ := eastern(t, 10, 0)
	series := allGatesSeries() // chg_from_open ~ +2.53%

	rec, _ := ev.Evaluate(series, 2.9, now)
	if !rec.Gates.RelativeStrengthOK {
		t.Error("chg within 0.5 of the benchmark should pass")
	}
	rec, _ = ev.Evaluate(series, 3.2, now)
	if rec.Gates.RelativeStrengthOK {
		t.Error("lagging the benchmark by more than 0.5 should fail")
	}
}

func TestClassify_PrecedenceAndFallthrough(t *testing.T) {
	tests := []struct {
		name     string
		gates    model.GateResult
		chg      float64
		rsi      float64
		want     model.Label
	}{
		{"nine gates beat the SIT overflow", model.GateResult{Strength: 9, TimeWindowOK: true}, 7.0, 50, model.LabelStrongBuy},
		{"seven plus time gate is a buy", model.GateResult{Strength: 7, TimeWindowOK: true}, 1.0, 50, model.LabelBuy},
		{"eight without time gate is not a buy", model.GateResult{Strength: 8}, 1.0, 50, model.LabelShort},
		{"overextended day sits out", model.GateResult{Strength: 4}, 6.5, 50, model.LabelSit},
		{"hot rsi sits out", model.GateResult{Strength: 4}, 1.0, 82, model.LabelSit},
		{"default is short", model.GateResult{Strength: 4}, 1.0, 50, model.LabelShort},
	}
	for _, tt := range tests {
		if got := classify(tt.gates, tt.chg, tt.rsi); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestTimeWindow_Boundaries(t *testing.T) {
	w := TimeWindow{9, 30, 12, 0}
	tests := []struct {
		hour, min int
		want      bool
	}{
		{9, 29, false},
		{9, 30, true},
		{12, 0, true},
		{12, 1, false},
	}
	for _, tt := range tests {
		ts, _ := eastern(t, tt.hour, tt.min)
		if got := w.Contains(ts); got != tt.want {
			t.Errorf("%02d:%02d: got %v, want %v", tt.hour, tt.min, got, tt.want)
		}
	}
}

func TestBacktestEntryRule(t *testing.T) {
	rule := BacktestEntryRule()
	in, _ := eastern(t, 10, 15)
	out, _ := eastern(t, 13, 0)

	if !rule.Allows(2.0, in) {
		t.Error("pullback inside the window should fire")
	}
	if rule.Allows(4.5, in) {
		t.Error("cap is exclusive: 4.5 must not fire")
	}
	if rule.Allows(2.0, out) {
		t.Error("afternoon bars must not fire")
	}
}
