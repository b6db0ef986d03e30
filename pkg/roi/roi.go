// Package roi estimates the monthly economics of an EV charging station.
package roi

import "math"

const daysPerMonth = 30

type Input struct {
	DailySessions    float64
	AvgKWhPerSession float64
	TariffPerKWh     float64
	CostPerKWh       float64
	StationCost      float64
	OpexPerMonth     float64
}

type Result struct {
	MonthlyRevenue float64  `json:"monthly_revenue"`
	MonthlyCost    float64  `json:"monthly_cost"`
	MonthlyProfit  float64  `json:"monthly_profit"`
	PaybackMonths  *float64 `json:"payback_months"`
}

// Calculate is pure. Negative inputs are not rejected; they flow through the
// arithmetic unchanged. PaybackMonths is nil unless profit and station cost
// are both positive.
func Calculate(in Input) Result {
	sessionsPerMonth := in.DailySessions * daysPerMonth
	energySold := sessionsPerMonth * in.AvgKWhPerSession
	revenue := energySold * in.TariffPerKWh
	energyCost := energySold * in.CostPerKWh
	monthlyCost := energyCost + in.OpexPerMonth
	profit := revenue - monthlyCost

	var payback *float64
	if profit > 0 && in.StationCost > 0 {
		months := Round2(in.StationCost / profit)
		payback = &months
	}

	return Result{
		MonthlyRevenue: Round2(revenue),
		MonthlyCost:    Round2(monthlyCost),
		MonthlyProfit:  Round2(profit),
		PaybackMonths:  payback,
	}
}

// roundLimit is well past the last magnitude with any fractional digits;
// scaling beyond it can overflow.
const roundLimit = 1e15

// Round2 rounds half away from zero at two decimal places. Values too large
// to carry cents, and non-finite values, are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.Abs(v) > roundLimit {
		return v
	}
	return math.Round(v*100) / 100
}

// Finite reports whether every figure can be encoded as a JSON number.
// Inputs near the float64 limit can overflow the arithmetic to Inf.
func (r Result) Finite() bool {
	figures := []float64{r.MonthlyRevenue, r.MonthlyCost, r.MonthlyProfit}
	if r.PaybackMonths != nil {
		figures = append(figures, *r.PaybackMonths)
	}
	for _, f := range figures {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}
