package model

// ProfitTarget is one GTC take-profit level of an execution plan.
type ProfitTarget struct {
	Pct    float64 // percent above the suggested buy
	Price  float64
	Profit float64 // absolute dollars at the planned share count
}

// ExecutionPlan is the sizing and order guidance derived from a buy signal.
type ExecutionPlan struct {
	Shares       int
	SuggestedBuy float64
	BuyLow       float64
	BuyHigh      float64
	TotalCost    float64
	StopPrice    float64
	Targets      []ProfitTarget
	TrailPct     float64 // trail percent applied once the first target is touched
	TrailingStop float64
	RiskDollars  float64
	RiskPct      float64
}
