package strategy

import (
	"errors"
	"math"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// ErrNotActionable is returned when a plan is requested for a non-buy signal.
var ErrNotActionable = errors.New("signal is not a buy")

// targetPcts are the GTC take-profit levels above the suggested buy.
var targetPcts = []float64{3.0, 5.0}

// BuildPlan sizes a long entry from a buy signal and the account size.
// Conviction overrides the user's risk selection: a STRONG BUY risks 2% of
// the account, a regular BUY 1%. Prices round to the cent, shares to the
// nearest multiple of 25 with a 25-share floor.
func BuildPlan(rec *model.SignalRecord, accountSize float64) (*model.ExecutionPlan, error) {
	if !rec.Label.Actionable() {
		return nil, ErrNotActionable
	}

	riskPct := 1.0
	trailPct := 0.5
	if rec.Label == model.LabelStrongBuy {
		riskPct = 2.0
		trailPct = 1.0
	}
	riskDollars := accountSize * riskPct / 100

	buyLow := roundCents(rec.Price * 0.97)
	buyHigh := roundCents(rec.Price * 0.985)
	suggested := roundCents((buyLow + buyHigh) / 2)

	// The per-share risk assumption and the protective stop are both pinned
	// at 2% of the suggested buy, but stay separate computations.
	riskPerShare := roundCents(suggested * 0.02)
	shares := int(riskDollars / riskPerShare)
	shares = int(math.Round(float64(shares)/25)) * 25
	if shares < 25 {
		shares = 25
	}

	plan := &model.ExecutionPlan{
		Shares:       shares,
		SuggestedBuy: suggested,
		BuyLow:       buyLow,
		BuyHigh:      buyHigh,
		TotalCost:    roundCents(float64(shares) * suggested),
		StopPrice:    roundCents(suggested * 0.98),
		TrailPct:     trailPct,
		TrailingStop: roundCents(suggested * (1 + trailPct/100)),
		RiskDollars:  riskDollars,
		RiskPct:      riskPct,
	}
	for _, pct := range targetPcts {
		price := roundCents(suggested * (1 + pct/100))
		plan.Targets = append(plan.Targets, model.ProfitTarget{
			Pct:    pct,
			Price:  price,
			Profit: roundCents((price - suggested) * float64(shares)),
		})
	}
	return plan, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
