package costing

import (
	"github.com/shopspring/decimal"

	"quotecore/internal"
)

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Rounded returns a copy of costs with every amount rounded for display or
// export. The engine's own results are never rounded.
func Rounded(costs internal.CalculatedCosts, places int32) internal.CalculatedCosts {
	r := func(v float64) float64 { return Round(v, places) }
	out := internal.CalculatedCosts{
		MaterialCost:           r(costs.MaterialCost),
		TotalManufacturingCost: r(costs.TotalManufacturingCost),
		LaborCost:              r(costs.LaborCost),
		MachineCost:            r(costs.MachineCost),
		FreightCost:            r(costs.FreightCost),
		TotalProjectCost:       r(costs.TotalProjectCost),
		ProfitValue:            r(costs.ProfitValue),
		FinalValue:             r(costs.FinalValue),
		TotalWeight:            r(costs.TotalWeight),
	}
	if costs.Lines != nil {
		out.Lines = make([]internal.LineCost, len(costs.Lines))
		for i, l := range costs.Lines {
			l.ComponentsCost = r(l.ComponentsCost)
			l.EffectiveUnitCost = r(l.EffectiveUnitCost)
			l.MaterialCost = r(l.MaterialCost)
			l.ManufacturingCost = r(l.ManufacturingCost)
			l.Weight = r(l.Weight)
			out.Lines[i] = l
		}
	}
	return out
}
