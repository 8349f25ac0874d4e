package entities

// ProductionPlan holds the integral production decisions recovered
// from a solver result: one quantity per product and one activation
// flag per premium product, in product order.
type ProductionPlan struct {
	Quantities  []int64 `json:"quantities"`
	Activations []bool  `json:"activations"`
}

// TotalUnits returns the total number of units across all products
func (p *ProductionPlan) TotalUnits() int64 {
	var total int64
	for _, q := range p.Quantities {
		total += q
	}
	return total
}

// ActiveCount returns how many premium products are activated
func (p *ProductionPlan) ActiveCount() int {
	count := 0
	for _, a := range p.Activations {
		if a {
			count++
		}
	}
	return count
}
