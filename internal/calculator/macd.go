package calculator

// MACD holds the trailing MACD values needed by the signal gates: the last
// MACD/signal pair plus the last two histogram points for rise detection.
type MACD struct {
	Line          float64
	Signal        float64
	Histogram     float64
	HistogramPrev float64
}

// Rising reports whether the histogram increased from the previous point.
// With a single histogram point it is false.
func (m MACD) Rising() bool {
	return m.Histogram > m.HistogramPrev
}

// CalculateMACD computes MACD from the closing prices: line = EMA(fast)-EMA(slow),
// signal = EMA(line, signalSpan), histogram = line - signal. Short input degrades
// with the EMAs rather than erroring; an empty input returns the zero value.
func CalculateMACD(closes []float64, fast, slow, signalSpan int) MACD {
	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)
	if len(fastEMA) == 0 || len(slowEMA) == 0 {
		return MACD{}
	}

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signal := emaSeries(line, signalSpan)

	n := len(closes)
	m := MACD{
		Line:      line[n-1],
		Signal:    signal[n-1],
		Histogram: line[n-1] - signal[n-1],
	}
	if n > 1 {
		m.HistogramPrev = line[n-2] - signal[n-2]
	} else {
		m.HistogramPrev = m.Histogram
	}
	return m
}
