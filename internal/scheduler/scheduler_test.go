package scheduler

import (
	"strings"
	"testing"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/backtest"
	"github.com/M-Billingsley/day-trade-monitor/internal/collector"
	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	"github.com/M-Billingsley/day-trade-monitor/internal/notifier"
	"github.com/M-Billingsley/day-trade-monitor/internal/recorder"
	"github.com/M-Billingsley/day-trade-monitor/internal/strategy"
	"github.com/M-Billingsley/day-trade-monitor/internal/tradelog"
)

func newTestScheduler(t *testing.T, fetcher collector.Fetcher) *Scheduler {
	t.Helper()
	eval, err := strategy.NewEvaluator(model.ModeBalanced)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}
	al, err := notifier.NewAlerter(nil)
	if err != nil {
		t.Fatalf("new alerter: %v", err)
	}
	sim, err := backtest.NewSimulator()
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	col := collector.NewCollector(fetcher, "QQQ")
	return NewScheduler(col, eval, al, sim, &recorder.NoopRecorder{}, &tradelog.NoopStore{},
		[]string{"SOXL", "TQQQ"}, 175000)
}

func TestRefreshCycle_PopulatesSignalBoard(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Price: 30})

	if reply := s.HandleCommand("/signals"); !strings.Contains(reply, "/scan") {
		t.Errorf("before any cycle /signals should point at /scan, got %q", reply)
	}

	s.RunCycleNow()

	reply := s.HandleCommand("/signals")
	for _, ticker := range []string{"SOXL", "TQQQ"} {
		if !strings.Contains(reply, ticker) {
			t.Errorf("signal board missing %s:\n%s", ticker, reply)
		}
	}
}

func TestRefreshCycle_EvaluatesDailySessionMove(t *testing.T) {
	now := time.Now()
	soxl := []model.PriceBar{
		{Time: now.AddDate(0, 0, -1), Open: 99, Close: 100, Volume: 100000},
		{Time: now, Open: 100, Close: 110, Volume: 100000},
	}
	s := newTestScheduler(t, &collector.MockFetcher{
		Price: 30,
		Daily: map[string][]model.PriceBar{"SOXL": soxl},
	})
	s.Tickers = []string{"SOXL"}
	s.RunCycleNow()

	rec, ok := s.lastRecord("SOXL")
	if !ok {
		t.Fatal("expected a SOXL record")
	}
	// the evaluator works on session opens and closes; a 100 -> 110 day is a
	// +10% move no matter how the day traded bar by bar
	if rec.ChangeFromOpen < 9.99 || rec.ChangeFromOpen > 10.01 {
		t.Fatalf("change from open = %.3f, want the +10%% session move", rec.ChangeFromOpen)
	}
	if rec.Gates.PullbackOK {
		t.Error("a +10% day must fail the pullback gate")
	}
	if rec.Label != model.LabelSit {
		t.Errorf("label = %s, want SIT for an overheated day", rec.Label)
	}
}

func TestScheduler_CronRunsInEasternTime(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Price: 30})
	if s.Loc == nil || s.Loc.String() != "America/New_York" {
		t.Fatalf("scheduler location = %v, want America/New_York", s.Loc)
	}
}

func TestRefreshCycle_SortsByStrengthAndSkipsFailures(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Price: 30,
		Daily: map[string][]model.PriceBar{"TQQQ": nil}, // empty fetch, skipped
	}
	s := newTestScheduler(t, fetcher)
	s.RunCycleNow()

	s.mu.Lock()
	records := s.lastRecords
	s.mu.Unlock()
	for _, rec := range records {
		if rec.Ticker == "TQQQ" {
			t.Error("a ticker with no data must be skipped, not scored")
		}
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].Strength < records[i].Strength {
			t.Errorf("records not sorted by strength: %v before %v",
				records[i-1].Strength, records[i].Strength)
		}
	}
}

func TestHandleCommand_Backtest(t *testing.T) {
	short := []model.PriceBar{{Time: time.Now(), Open: 30, Close: 30, Volume: 1}}
	fetcher := &collector.MockFetcher{
		Price:    30,
		Intraday: map[string][]model.PriceBar{"SOXL": short, "QQQ": short},
	}
	s := newTestScheduler(t, fetcher)

	if reply := s.HandleCommand("/backtest"); !strings.Contains(reply, "Usage") {
		t.Errorf("bare /backtest should print usage, got %q", reply)
	}
	reply := s.HandleCommand("/backtest soxl")
	if !strings.Contains(reply, "not enough intraday data") {
		t.Errorf("short history should report insufficient data, got %q", reply)
	}
}

type recordingStore struct {
	tradelog.NoopStore
	entries []model.TradeLogEntry
}

func (r *recordingStore) Append(e model.TradeLogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func TestHandleCommand_LogTrade(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Price: 30})
	store := &recordingStore{}
	s.TradeLog = store

	reply := s.HandleCommand("/log soxl 30.00 31.50 100 first scalp")
	if !strings.Contains(reply, "P/L $150.00") {
		t.Errorf("closed trade reply = %q, want computed P/L", reply)
	}
	if len(store.entries) != 1 {
		t.Fatalf("appended %d entries, want 1", len(store.entries))
	}
	e := store.entries[0]
	if e.Ticker != "SOXL" || e.PL != 150 || e.Notes != "first scalp" {
		t.Errorf("logged entry = %+v", e)
	}

	reply = s.HandleCommand("/log TQQQ 80 0 50")
	if !strings.Contains(reply, "(open)") {
		t.Errorf("open trade reply = %q", reply)
	}
	if got := store.entries[1]; !got.Open() || got.PL != 0 {
		t.Errorf("open entry = %+v, want zero exit and P/L", got)
	}

	for _, bad := range []string{"/log", "/log SOXL 30", "/log SOXL abc 0 100", "/log SOXL -1 0 100"} {
		if reply := s.HandleCommand(bad); !strings.Contains(reply, "Usage") {
			t.Errorf("%q reply = %q, want usage", bad, reply)
		}
	}
}

func TestHandleCommand_TestNotification(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Price: 30})
	if reply := s.HandleCommand("/test"); !strings.Contains(reply, "No notification channel") {
		t.Errorf("/test with no senders = %q", reply)
	}
}

func TestHandleCommand_HeatAndHelp(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Price: 30})

	if reply := s.HandleCommand("/heat"); !strings.Contains(reply, "No open positions") {
		t.Errorf("empty trade log should report zero heat, got %q", reply)
	}
	if reply := s.HandleCommand("/bogus"); !strings.Contains(reply, "Commands:") {
		t.Errorf("unknown command should print help, got %q", reply)
	}
	if reply := s.HandleCommand("/plan SOXL"); !strings.Contains(reply, "/scan") {
		t.Errorf("/plan before a cycle should point at /scan, got %q", reply)
	}
}
