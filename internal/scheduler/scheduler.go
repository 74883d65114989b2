package scheduler

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/M-Billingsley/day-trade-monitor/internal/backtest"
	"github.com/M-Billingsley/day-trade-monitor/internal/collector"
	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	"github.com/M-Billingsley/day-trade-monitor/internal/notifier"
	"github.com/M-Billingsley/day-trade-monitor/internal/recorder"
	"github.com/M-Billingsley/day-trade-monitor/internal/strategy"
	"github.com/M-Billingsley/day-trade-monitor/internal/tradelog"
)

const (
	// historyDays is how many daily sessions feed each evaluation; the gates
	// work on session opens and closes, not intraday bars.
	historyDays = 5
	// backtestDays is how many days of 15-minute bars feed a simulation run.
	backtestDays = 60
)

// indexNames are the broad indexes shown in the morning snapshot line.
var indexNames = []string{"DOW", "NASDAQ", "SP500"}

// Scheduler manages the cron tasks and the shared evaluation state.
// Cron expressions and the session gates share US Eastern time.
type Scheduler struct {
	Cron        *cron.Cron
	Loc         *time.Location
	Collector   *collector.Collector
	Evaluator   *strategy.Evaluator
	Alerter     *notifier.Alerter
	Simulator   *backtest.Simulator
	Recorder    recorder.Recorder
	TradeLog    tradelog.Store
	Tickers     []string
	AccountSize float64

	mu           sync.Mutex
	lastRecords  []model.SignalRecord
	lastRegime   model.Regime
	lastBenchChg float64
	lastCycle    time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(col *collector.Collector, eval *strategy.Evaluator, al *notifier.Alerter,
	sim *backtest.Simulator, rec recorder.Recorder, tl tradelog.Store,
	tickers []string, accountSize float64) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds(), cron.WithLocation(eval.Loc)),
		Loc:         eval.Loc,
		Collector:   col,
		Evaluator:   eval,
		Alerter:     al,
		Simulator:   sim,
		Recorder:    rec,
		TradeLog:    tl,
		Tickers:     tickers,
		AccountSize: accountSize,
	}
}

// RegisterAll registers the refresh and morning-summary tasks.
func (s *Scheduler) RegisterAll(refreshCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshCycle); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(summaryCron, s.morningSummary); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunCycleNow executes one refresh cycle immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunCycleNow() {
	s.refreshCycle()
}

// refreshCycle re-evaluates the whole universe: benchmark first, then every
// ticker against it, strongest signals first. STRONG BUYs go through the
// alerter; the full cycle is persisted.
func (s *Scheduler) refreshCycle() {
	log.Println("[INFO] running refresh cycle")
	now := time.Now()

	benchFromOpen, benchFromPrevClose := s.Collector.BenchmarkChanges()
	regime := strategy.ClassifyRegime(benchFromPrevClose)

	var records []model.SignalRecord
	for _, ticker := range s.Tickers {
		series, err := s.Collector.History(ticker, historyDays)
		if err != nil {
			log.Printf("[WARN] %s history: %v", ticker, err)
			continue
		}
		rec, ok := s.Evaluator.Evaluate(series, benchFromOpen, now)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Strength > records[j].Strength
	})

	for _, rec := range records {
		s.Alerter.MaybeAlert(rec, now)
	}

	s.mu.Lock()
	s.lastRecords = records
	s.lastRegime = regime
	s.lastBenchChg = benchFromPrevClose
	s.lastCycle = now
	s.mu.Unlock()

	if err := s.Recorder.RecordCycle(&recorder.CycleSnapshot{
		At:           now,
		Regime:       regime,
		BenchmarkChg: benchFromPrevClose,
		Mode:         s.Evaluator.Mode,
		Records:      records,
	}); err != nil {
		log.Printf("[ERROR] record cycle: %v", err)
	}
	log.Printf("[INFO] cycle done: regime=%s, %d/%d tickers evaluated",
		regime, len(records), len(s.Tickers))
}

// morningSummary refreshes and pushes the STRONG BUY digest to all senders.
func (s *Scheduler) morningSummary() {
	log.Println("[INFO] running morning summary")
	s.refreshCycle()

	s.mu.Lock()
	msg := notifier.FormatMorningSummary(s.lastRegime, s.lastBenchChg, s.lastRecords)
	s.mu.Unlock()
	msg += "\n" + notifier.FormatMarketSnapshot(s.Collector.SnapshotIndexes(indexNames))

	for _, sender := range s.Alerter.Senders {
		if err := sender.Send(msg); err != nil {
			log.Printf("[ERROR] %s morning summary: %v", sender.Name(), err)
		}
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd, args := splitCommand(command)
	switch cmd {
	case "/scan":
		s.refreshCycle()
		fallthrough
	case "/signals":
		return s.signalsReply()
	case "/gates":
		return s.gatesReply(firstArg(args))
	case "/plan":
		return s.planReply(firstArg(args))
	case "/backtest":
		return s.backtestReply(firstArg(args))
	case "/heat":
		return s.heatReply()
	case "/log":
		return s.logReply(args)
	case "/test":
		return s.testReply()
	default:
		return "Commands:\n• /signals – last cycle's signal board\n" +
			"• /scan – re-evaluate now\n" +
			"• /gates TICKER – 9-gate breakdown\n" +
			"• /plan TICKER – execution instructions\n" +
			"• /backtest TICKER – 60-day intraday replay\n" +
			"• /heat – open position risk\n" +
			"• /log TICKER ENTRY EXIT SHARES [NOTES] – record a trade (EXIT 0 = still open)\n" +
			"• /test – push a test notification"
	}
}

func (s *Scheduler) signalsReply() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastCycle.IsZero() {
		return "No evaluation cycle has run yet – try /scan"
	}
	return notifier.FormatCycleReport(s.lastRegime, s.lastBenchChg, s.lastRecords)
}

func (s *Scheduler) gatesReply(ticker string) string {
	if ticker == "" {
		return "Usage: /gates TICKER"
	}
	rec, ok := s.lastRecord(ticker)
	if !ok {
		return fmt.Sprintf("%s was not in the last cycle – try /scan", ticker)
	}
	return notifier.FormatGates(rec.Gates)
}

func (s *Scheduler) planReply(ticker string) string {
	if ticker == "" {
		return "Usage: /plan TICKER"
	}
	rec, ok := s.lastRecord(ticker)
	if !ok {
		return fmt.Sprintf("%s was not in the last cycle – try /scan", ticker)
	}
	plan, err := strategy.BuildPlan(&rec, s.AccountSize)
	if err != nil {
		return fmt.Sprintf("%s is %s – no long entry plan", rec.Ticker, rec.Label)
	}
	return notifier.FormatPlan(rec, plan)
}

func (s *Scheduler) backtestReply(ticker string) string {
	if ticker == "" {
		return "Usage: /backtest TICKER"
	}
	bars, err := s.Collector.IntradayHistory(ticker, backtestDays)
	if err != nil {
		return fmt.Sprintf("❌ %s intraday history: %v", ticker, err)
	}
	bench, err := s.Collector.IntradayHistory(s.Collector.Benchmark, backtestDays)
	if err != nil {
		log.Printf("[WARN] benchmark intraday history: %v", err)
	}
	res := s.Simulator.Run(bars, bench)
	if err := s.Recorder.RecordBacktest(ticker, res); err != nil {
		log.Printf("[ERROR] record backtest: %v", err)
	}
	return notifier.FormatBacktestReport(ticker, res)
}

func (s *Scheduler) heatReply() string {
	entries, err := s.TradeLog.All()
	if err != nil {
		return fmt.Sprintf("❌ read trade log: %v", err)
	}
	report := tradelog.ComputeHeat(entries, s.AccountSize, s.Collector.CurrentPrice)
	return notifier.FormatHeatReport(report)
}

// logReply appends one trade to the log: ticker, entry, exit (0 keeps the
// position open), share count, optional free-form notes. P/L is computed
// only for closed trades.
func (s *Scheduler) logReply(args []string) string {
	const usage = "Usage: /log TICKER ENTRY EXIT SHARES [NOTES]"
	if len(args) < 4 {
		return usage
	}
	entry, err1 := strconv.ParseFloat(args[1], 64)
	exit, err2 := strconv.ParseFloat(args[2], 64)
	shares, err3 := strconv.ParseFloat(args[3], 64)
	if err1 != nil || err2 != nil || err3 != nil || entry <= 0 || shares <= 0 || exit < 0 {
		return usage
	}
	e := model.TradeLogEntry{
		Ticker:     strings.ToUpper(args[0]),
		EntryPrice: entry,
		ExitPrice:  exit,
		Shares:     shares,
		Notes:      strings.Join(args[4:], " "),
	}
	if exit > 0 {
		e.PL = (exit - entry) * shares
	}
	if err := s.TradeLog.Append(e); err != nil {
		return fmt.Sprintf("❌ log trade: %v", err)
	}
	if e.Open() {
		return fmt.Sprintf("📝 Logged %s: %.0f @ $%.2f (open)", e.Ticker, e.Shares, e.EntryPrice)
	}
	return fmt.Sprintf("📝 Logged %s: %.0f @ $%.2f → $%.2f | P/L $%.2f",
		e.Ticker, e.Shares, e.EntryPrice, e.ExitPrice, e.PL)
}

// testReply pushes a test message through every configured channel.
func (s *Scheduler) testReply() string {
	if len(s.Alerter.Senders) == 0 {
		return "No notification channel configured"
	}
	var b strings.Builder
	for _, sender := range s.Alerter.Senders {
		if err := sender.Send("✅ Test notification from day-trade-monitor"); err != nil {
			b.WriteString(fmt.Sprintf("❌ %s: %v\n", sender.Name(), err))
		} else {
			b.WriteString(fmt.Sprintf("✅ %s: sent\n", sender.Name()))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Scheduler) lastRecord(ticker string) (model.SignalRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.lastRecords {
		if rec.Ticker == ticker {
			return rec, true
		}
	}
	return model.SignalRecord{}, false
}

func splitCommand(command string) (cmd string, args []string) {
	fields := strings.Fields(strings.TrimSpace(command))
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.ToUpper(args[0])
}
