// Package costing prices a quote from its line items, labor, machine time,
// freight and margin.
package costing

import (
	"quotecore/internal"
)

// ComponentsCost sums the unit cost of every component once. A component
// record stands for a single instance.
func ComponentsCost(m internal.Material) float64 {
	var sum float64
	for _, c := range m.Components {
		sum += c.UnitCost
	}
	return sum
}

// EffectiveUnitCost is the components total when it is positive, the
// material's own unit cost otherwise.
func EffectiveUnitCost(m internal.Material) float64 {
	if cc := ComponentsCost(m); cc > 0 {
		return cc
	}
	return m.UnitCost
}

// ComputeQuoteCosts prices a quote. Items whose material is missing add
// nothing. No input is validated: negative or zero values are priced as given.
//
// TotalManufacturingCost adds the components cost on top of MaterialCost,
// so component costs count twice for materials that have components.
func ComputeQuoteCosts(q internal.Quote, materials []internal.Material) internal.CalculatedCosts {
	byID := make(map[string]internal.Material, len(materials))
	for _, m := range materials {
		if _, dup := byID[m.ID]; !dup {
			byID[m.ID] = m
		}
	}

	var out internal.CalculatedCosts
	for _, item := range q.Items {
		line := internal.LineCost{MaterialID: item.MaterialID, Quantity: item.Quantity}
		m, ok := byID[item.MaterialID]
		if ok {
			qty := float64(item.Quantity)
			line.Found = true
			line.MaterialName = m.Name
			line.ComponentsCost = ComponentsCost(m)
			line.EffectiveUnitCost = EffectiveUnitCost(m)
			line.MaterialCost = line.EffectiveUnitCost * qty
			line.ManufacturingCost = line.ComponentsCost * qty
			line.Weight = m.UnitWeight * qty

			out.MaterialCost += line.MaterialCost
			out.TotalManufacturingCost += line.ManufacturingCost
			out.TotalWeight += line.Weight
		}
		out.Lines = append(out.Lines, line)
	}

	out.LaborCost = q.LaborHours * q.LaborHourlyRate * q.NumberOfWorkers
	out.MachineCost = q.MachineHours * q.MachineHourlyRate * q.NumberOfMachines
	if q.IsFreightEnabled {
		out.FreightCost = q.FreightCost
	}

	out.TotalProjectCost = out.MaterialCost + out.TotalManufacturingCost + out.LaborCost + out.MachineCost + out.FreightCost
	out.ProfitValue = out.TotalProjectCost * (q.ProfitMargin / 100)
	out.FinalValue = out.TotalProjectCost + out.ProfitValue
	return out
}
