package solver

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Interpretation is the audited reading of a solved result. Every
// money and usage figure is recomputed from the rounded integral
// decisions, never taken from the solver, so the breakdown is
// internally consistent. Discrepancy records how far the solver's
// reported objective sits from the recomputed net profit; Violations
// lists any constraint the rounded plan breaks. Neither is ever
// repaired or hidden.
type Interpretation struct {
	Plan        entities.ProductionPlan
	Breakdown   entities.Breakdown
	Discrepancy decimal.Decimal
	Violations  []string
}

// Interpret converts a solved result into integral decisions and a
// recomputed breakdown. Results with any status other than Optimal or
// OptimalInaccurate cannot be interpreted; callers surface those
// verdicts directly.
func Interpret(s *entities.Scenario, res *Result) (*Interpretation, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if res == nil {
		return nil, fmt.Errorf("result is nil")
	}
	if !res.Status.Solved() {
		return nil, fmt.Errorf("cannot interpret a result with status %s", res.Status)
	}
	if len(res.X) != len(s.Products) {
		return nil, fmt.Errorf("solver returned %d quantities for %d products", len(res.X), len(s.Products))
	}
	if len(res.Y) != s.PremiumCount() {
		return nil, fmt.Errorf("solver returned %d activations for %d premium products", len(res.Y), s.PremiumCount())
	}

	interp := &Interpretation{}

	// round ties-to-even before any arithmetic
	quantities := make([]int64, len(res.X))
	for i, raw := range res.X {
		quantities[i] = int64(math.RoundToEven(raw))
	}
	activations := make([]bool, len(res.Y))
	for j, raw := range res.Y {
		activations[j] = math.RoundToEven(raw) >= 1
	}
	interp.Plan = entities.ProductionPlan{
		Quantities:  quantities,
		Activations: activations,
	}

	totalRevenue := decimal.Zero
	totalVariable := decimal.Zero
	totalFixed := decimal.Zero

	products := make([]entities.ProductProfit, len(s.Products))
	for i, p := range s.Products {
		q := decimal.NewFromInt(quantities[i])
		revenue := decimal.NewFromFloat(p.RevenueCoeff).Mul(q).
			Sub(decimal.NewFromFloat(p.SaturationCoeff).Mul(q).Mul(q))
		variable := decimal.NewFromFloat(p.VariableCost).Mul(q)

		profit := entities.ProductProfit{
			Name:         p.Name,
			Category:     p.Category.String(),
			Quantity:     quantities[i],
			Revenue:      revenue,
			VariableCost: variable,
			Net:          revenue.Sub(variable),
		}

		if j := s.PremiumIndex(i); j >= 0 {
			profit.Activated = activations[j]
			if activations[j] {
				totalFixed = totalFixed.Add(decimal.NewFromFloat(p.ActivationCost))
			}
			if quantities[i] > 0 && !activations[j] {
				interp.Violations = append(interp.Violations,
					fmt.Sprintf("premium product %s produces %d units without activation", p.Name, quantities[i]))
			}
			if activations[j] && float64(quantities[i]) > s.BigM {
				interp.Violations = append(interp.Violations,
					fmt.Sprintf("premium product %s produces %d units, above the big-M limit %g", p.Name, quantities[i], s.BigM))
			}
		}
		if quantities[i] < 0 {
			interp.Violations = append(interp.Violations,
				fmt.Sprintf("product %s has negative quantity %d", p.Name, quantities[i]))
		}

		totalRevenue = totalRevenue.Add(revenue)
		totalVariable = totalVariable.Add(variable)
		products[i] = profit
	}

	resources := make([]entities.ResourceUsage, len(s.Resources))
	for k, r := range s.Resources {
		used := decimal.Zero
		for i := range s.Products {
			rate := decimal.NewFromFloat(s.Consumption[k][i])
			used = used.Add(rate.Mul(decimal.NewFromInt(quantities[i])))
		}
		capacity := decimal.NewFromFloat(r.Capacity)

		utilization := 0.0
		if r.Capacity > 0 {
			utilization = used.InexactFloat64() / r.Capacity * 100
		}

		resources[k] = entities.ResourceUsage{
			Name:           r.Name,
			Capacity:       r.Capacity,
			Used:           used,
			Remaining:      capacity.Sub(used),
			UtilizationPct: utilization,
		}

		if used.GreaterThan(capacity) {
			interp.Violations = append(interp.Violations,
				fmt.Sprintf("resource %s over capacity: used %s of %g", r.Name, used.String(), r.Capacity))
		}
	}

	netProfit := totalRevenue.Sub(totalVariable).Sub(totalFixed)
	interp.Breakdown = entities.Breakdown{
		Products:          products,
		TotalRevenue:      totalRevenue,
		TotalVariableCost: totalVariable,
		TotalFixedCost:    totalFixed,
		NetProfit:         netProfit,
		Resources:         resources,
	}
	interp.Discrepancy = decimal.NewFromFloat(res.Objective).Sub(netProfit)

	return interp, nil
}
