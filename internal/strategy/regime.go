package strategy

import "github.com/M-Billingsley/day-trade-monitor/internal/model"

// ClassifyRegime maps the benchmark's change from the previous close (in
// percent) to a market regime label. Informational only; it gates nothing.
func ClassifyRegime(change float64) model.Regime {
	switch {
	case change > 0.8:
		return model.RegimeBullish
	case change > -0.8:
		return model.RegimeNeutral
	default:
		return model.RegimeChoppy
	}
}
