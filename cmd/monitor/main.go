package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/M-Billingsley/day-trade-monitor/internal/backtest"
	"github.com/M-Billingsley/day-trade-monitor/internal/collector"
	"github.com/M-Billingsley/day-trade-monitor/internal/config"
	"github.com/M-Billingsley/day-trade-monitor/internal/notifier"
	"github.com/M-Billingsley/day-trade-monitor/internal/recorder"
	"github.com/M-Billingsley/day-trade-monitor/internal/scheduler"
	"github.com/M-Billingsley/day-trade-monitor/internal/strategy"
	"github.com/M-Billingsley/day-trade-monitor/internal/tradelog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] day-trade-monitor starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.Monitor.Benchmark)

	// Init evaluation engine
	eval, err := strategy.NewEvaluator(cfg.Mode())
	if err != nil {
		log.Fatalf("[FATAL] init evaluator: %v", err)
	}
	sim, err := backtest.NewSimulator()
	if err != nil {
		log.Fatalf("[FATAL] init simulator: %v", err)
	}
	log.Printf("[INFO] mode=%s, universe=%d tickers, benchmark=%s",
		cfg.Monitor.Mode, len(cfg.Monitor.Tickers), cfg.Monitor.Benchmark)

	// Init senders and alerter
	var senders []notifier.Sender
	tg := notifier.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if tg.Configured() {
		senders = append(senders, tg)
	}
	tw := notifier.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken,
		cfg.Twilio.From, cfg.Twilio.To, cfg.Proxy)
	if tw.Configured() {
		senders = append(senders, tw)
	}
	if len(senders) == 0 {
		log.Println("[WARN] no notification channel configured, alerts will be logged only")
	}
	al, err := notifier.NewAlerter(senders)
	if err != nil {
		log.Fatalf("[FATAL] init alerter: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init trade log store
	var store tradelog.Store
	if cfg.Database.TradeLogPath != "" {
		st, err := tradelog.NewSQLiteStore(cfg.Database.TradeLogPath)
		if err != nil {
			log.Printf("[WARN] init trade log failed, using noop: %v", err)
			store = tradelog.NewNoopStore()
		} else {
			store = st
			defer st.Close()
		}
	} else {
		store = tradelog.NewNoopStore()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(col, eval, al, sim, rec, store,
		cfg.Monitor.Tickers, cfg.Monitor.AccountSize)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram command polling
	go tg.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing refresh cycle now")
		go sched.RunCycleNow()
	}

	log.Println("[INFO] day-trade-monitor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] day-trade-monitor stopped")
}
