package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Model is the numeric form of one planning scenario: objective
// coefficient vectors, the consumption matrix, capacity bounds and the
// big-M constant. Products are indexed with standard products first
// and premium products after; premium ordinal j maps to product index
// NumStandard()+j. A Model never aliases scenario storage, so building
// one cannot mutate its inputs.
//
// Concavity precondition: every Saturation entry is expected to be
// non-negative. The builder does not reject negative entries (the
// pipeline's validator already has), but with a negative entry the
// per-product revenue term is no longer concave and backends degrade
// to best effort.
type Model struct {
	NumProducts int
	NumPremium  int
	Revenue     []float64
	Saturation  []float64
	UnitCost    []float64
	Activation  []float64
	Capacity    []float64
	Consumption *mat.Dense
	BigM        float64
}

// BuildModel extracts the numeric model from a scenario. It errors
// only on structural problems that would make indexing unsafe: shape
// mismatches and a product list not ordered standard-then-premium.
func BuildModel(s *entities.Scenario) (*Model, error) {
	if s == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	n := len(s.Products)
	if n == 0 {
		return nil, fmt.Errorf("scenario has no products")
	}
	if len(s.Consumption) != len(s.Resources) {
		return nil, fmt.Errorf("consumption matrix has %d rows, want %d", len(s.Consumption), len(s.Resources))
	}

	m := &Model{
		NumProducts: n,
		NumPremium:  s.PremiumCount(),
		Revenue:     make([]float64, n),
		Saturation:  make([]float64, n),
		UnitCost:    make([]float64, n),
		Activation:  make([]float64, 0, s.PremiumCount()),
		Capacity:    make([]float64, len(s.Resources)),
		BigM:        s.BigM,
	}

	seenPremium := false
	for i, p := range s.Products {
		m.Revenue[i] = p.RevenueCoeff
		m.Saturation[i] = p.SaturationCoeff
		m.UnitCost[i] = p.VariableCost
		if p.Category == entities.Premium {
			seenPremium = true
			m.Activation = append(m.Activation, p.ActivationCost)
		} else if seenPremium {
			return nil, fmt.Errorf("product %q: standard products must precede premium products", p.Name)
		}
	}

	for k, r := range s.Resources {
		m.Capacity[k] = r.Capacity
	}

	if len(s.Resources) > 0 {
		data := make([]float64, 0, len(s.Resources)*n)
		for k, row := range s.Consumption {
			if len(row) != n {
				return nil, fmt.Errorf("consumption row %d has %d entries, want %d", k, len(row), n)
			}
			data = append(data, row...)
		}
		m.Consumption = mat.NewDense(len(s.Resources), n, data)
	}

	return m, nil
}

// NumStandard returns the number of standard products
func (m *Model) NumStandard() int {
	return m.NumProducts - m.NumPremium
}

// NumResources returns the number of capacity constraints
func (m *Model) NumResources() int {
	return len(m.Capacity)
}

// premiumOrdinal maps a product index to its premium ordinal, or -1
func (m *Model) premiumOrdinal(i int) int {
	if i < m.NumStandard() {
		return -1
	}
	return i - m.NumStandard()
}

// ConsumptionRow returns row k of the consumption matrix as a slice
func (m *Model) ConsumptionRow(k int) []float64 {
	if m.Consumption == nil {
		return nil
	}
	return mat.Row(nil, k, m.Consumption)
}

// ObjectiveValue evaluates the objective for integral decisions
func (m *Model) ObjectiveValue(x []int64, y []bool) float64 {
	total := 0.0
	for i := 0; i < m.NumProducts && i < len(x); i++ {
		q := float64(x[i])
		total += (m.Revenue[i]-m.UnitCost[i])*q - m.Saturation[i]*q*q
	}
	for j := 0; j < m.NumPremium && j < len(y); j++ {
		if y[j] {
			total -= m.Activation[j]
		}
	}
	return total
}

// Feasible reports whether integral decisions satisfy every
// constraint: non-negativity, resource capacities, and the big-M link
// between premium quantities and activations.
func (m *Model) Feasible(x []int64, y []bool) bool {
	if len(x) != m.NumProducts || len(y) != m.NumPremium {
		return false
	}
	for _, q := range x {
		if q < 0 {
			return false
		}
	}
	for k := 0; k < m.NumResources(); k++ {
		used := 0.0
		for i := 0; i < m.NumProducts; i++ {
			used += m.Consumption.At(k, i) * float64(x[i])
		}
		if used > m.Capacity[k] {
			return false
		}
	}
	for i := m.NumStandard(); i < m.NumProducts; i++ {
		j := i - m.NumStandard()
		limit := 0.0
		if y[j] {
			limit = m.BigM
		}
		if float64(x[i]) > limit {
			return false
		}
	}
	return true
}

// upperBounds returns a per-product ceiling on quantities worth
// searching, plus the index of the first product with no finite
// ceiling (-1 when all are bounded). Ceilings come from resource
// quotients, the big-M link for premium products, and the concave
// vertex for saturating products.
func (m *Model) upperBounds() ([]int64, int) {
	ub := make([]int64, m.NumProducts)
	for i := 0; i < m.NumProducts; i++ {
		bound := math.Inf(1)
		for k := 0; k < m.NumResources(); k++ {
			rate := m.Consumption.At(k, i)
			if rate > 0 {
				if q := math.Floor(m.Capacity[k] / rate); q < bound {
					bound = q
				}
			}
		}
		if m.premiumOrdinal(i) >= 0 {
			if q := math.Floor(m.BigM); q < bound {
				bound = q
			}
		}
		if math.IsInf(bound, 1) {
			b := m.Saturation[i]
			margin := m.Revenue[i] - m.UnitCost[i]
			switch {
			case b > 0:
				// the concave term peaks at margin/(2b); no integer
				// beyond the next one can improve the objective
				v := math.Ceil(margin / (2 * b))
				if v < 0 {
					v = 0
				}
				bound = v + 1
			case b < 0:
				return ub, i
			case margin > 0:
				return ub, i
			default:
				bound = 0
			}
		}
		if bound < 0 {
			bound = 0
		}
		ub[i] = int64(bound)
	}
	return ub, -1
}
