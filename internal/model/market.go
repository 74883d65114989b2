package model

import "time"

// PriceBar represents a single candlestick bar.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds one ticker's bars over a requested window, ascending by time.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	FetchedAt time.Time
}

// Closes extracts the closing prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar. The second value is false when the series is empty.
func (s *PriceSeries) Last() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// ChangeFromOpen returns the most recent bar's close-vs-open move in percent.
// Returns 0 when the series is empty or the open is unusable.
func (s *PriceSeries) ChangeFromOpen() float64 {
	last, ok := s.Last()
	if !ok || last.Open <= 0 {
		return 0
	}
	return (last.Close - last.Open) / last.Open * 100
}

// ChangeFromPrevClose returns the last close vs the previous session's close in percent.
// Returns 0 when fewer than two bars are available.
func (s *PriceSeries) ChangeFromPrevClose() float64 {
	n := len(s.Bars)
	if n < 2 || s.Bars[n-2].Close <= 0 {
		return 0
	}
	prev := s.Bars[n-2].Close
	return (s.Bars[n-1].Close - prev) / prev * 100
}
