package collector

import (
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price    float64
	Daily    map[string][]model.PriceBar
	Intraday map[string][]model.PriceBar
	Err      error // returned by every call when set
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Daily[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchIntradayBars(symbol string, days int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Intraday[symbol]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, days*26), nil
}

func (m *MockFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if bars, ok := m.Daily[symbol]; ok && len(bars) > 0 {
		return bars[len(bars)-1].Close, nil
	}
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
