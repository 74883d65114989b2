package collector

import (
	"errors"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// ErrNoData marks a fetch that completed but returned nothing for the symbol,
// as opposed to a transport failure. Callers skip the ticker either way but
// can log the two cases apart.
var ErrNoData = errors.New("no data for symbol")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to `days` daily bars, ascending by time.
	FetchDailyBars(symbol string, days int) ([]model.PriceBar, error)
	// FetchIntradayBars returns 15-minute bars covering roughly `days`
	// calendar days, ascending by time.
	FetchIntradayBars(symbol string, days int) ([]model.PriceBar, error)
	// FetchCurrentPrice returns the latest close for the symbol.
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
