package calculator

// lossEpsilon replaces an average loss of exactly zero before the RS division.
// This is a deliberate clamp rather than a true Wilder RSI: an all-gains series
// yields an RSI just under 100 instead of raising a division error.
const lossEpsilon = 1e-10

// CalculateRSI computes RSI over a simple rolling mean of the last `period`
// close-to-close gains and losses (no Wilder smoothing). Fewer differences
// than the period degrade to the window that is available; fewer than two
// closes return the neutral 50. The result is clamped to [0,100].
func CalculateRSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < 2 {
		return 50.0
	}
	window := period
	if diffs := len(closes) - 1; diffs < window {
		window = diffs
	}

	var gain, loss float64
	for i := len(closes) - window; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change // make positive
		}
	}
	avgGain := gain / float64(window)
	avgLoss := loss / float64(window)
	if avgLoss == 0 {
		avgLoss = lossEpsilon
	}

	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	if rsi < 0 {
		rsi = 0
	}
	if rsi > 100 {
		rsi = 100
	}
	return rsi
}
