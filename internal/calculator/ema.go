package calculator

// emaSeries computes the exponential moving average over the whole input,
// seeded at the first value: ema[0] = values[0], ema[i] = a*v[i] + (1-a)*ema[i-1]
// with a = 2/(span+1). No adjustment or centering is applied.
func emaSeries(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// CalculateEMA returns the last exponential moving average value for the
// given span. Short input degrades toward the raw series rather than erroring;
// an empty input returns 0.
func CalculateEMA(values []float64, span int) float64 {
	ema := emaSeries(values, span)
	if len(ema) == 0 {
		return 0
	}
	return ema[len(ema)-1]
}
