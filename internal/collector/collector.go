package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// Collector wraps a Fetcher with the per-ticker windows the signal engine
// needs. A failed or empty fetch for one ticker never fails a batch; the
// caller receives an error for that ticker and moves on.
type Collector struct {
	Fetcher   Fetcher
	Benchmark string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, benchmark string) *Collector {
	return &Collector{Fetcher: fetcher, Benchmark: benchmark}
}

// History fetches a ticker's recent daily series.
func (c *Collector) History(ticker string, days int) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ticker, days)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("history %s: %w", ticker, ErrNoData)
	}
	return &model.PriceSeries{Symbol: ticker, Bars: bars, FetchedAt: time.Now()}, nil
}

// IntradayHistory fetches a ticker's 15-minute bars for the backtest window.
func (c *Collector) IntradayHistory(ticker string, days int) ([]model.PriceBar, error) {
	bars, err := c.Fetcher.FetchIntradayBars(ticker, days)
	if err != nil {
		return nil, fmt.Errorf("intraday %s: %w", ticker, err)
	}
	return bars, nil
}

// BenchmarkChanges returns the benchmark's change from today's open and from
// the previous close, in percent. Both default to 0 when the benchmark cannot
// be fetched; a monitoring cycle proceeds without it.
func (c *Collector) BenchmarkChanges() (fromOpen, fromPrevClose float64) {
	series, err := c.History(c.Benchmark, 5)
	if err != nil {
		if errors.Is(err, ErrNoData) {
			log.Printf("[WARN] benchmark %s returned no data", c.Benchmark)
		} else {
			log.Printf("[WARN] benchmark fetch failed: %v", err)
		}
		return 0, 0
	}
	return series.ChangeFromOpen(), series.ChangeFromPrevClose()
}

// IndexQuote is one market-index line of the snapshot.
type IndexQuote struct {
	Name   string
	Change float64 // percent vs previous close
	OK     bool
}

// SnapshotIndexes fetches prev-close changes for the named indexes. A failed
// index keeps its row, marked unknown.
func (c *Collector) SnapshotIndexes(names []string) []IndexQuote {
	quotes := make([]IndexQuote, 0, len(names))
	for _, name := range names {
		series, err := c.History(name, 5)
		if err != nil {
			log.Printf("[WARN] index %s: %v", name, err)
			quotes = append(quotes, IndexQuote{Name: name})
			continue
		}
		quotes = append(quotes, IndexQuote{Name: name, Change: series.ChangeFromPrevClose(), OK: true})
	}
	return quotes
}

// CurrentPrice returns the latest close for a symbol.
func (c *Collector) CurrentPrice(symbol string) (float64, error) {
	return c.Fetcher.FetchCurrentPrice(symbol)
}
