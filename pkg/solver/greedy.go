package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// GreedyName is the configuration name of the heuristic backend
const GreedyName = "greedy"

// Greedy is a marginal-profit ascent heuristic: starting from zero
// production it repeatedly adds the single unit with the best positive
// marginal profit until no unit improves the objective. The result is
// always feasible but carries no optimality proof, so its status is
// OptimalInaccurate. Premium products whose activation cost exceeds
// their first unit's margin are never started, even when a larger
// batch would pay the activation off.
type Greedy struct{}

// NewGreedy creates the heuristic backend
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Verify interface compliance
var _ Backend = (*Greedy)(nil)

// Name returns the configuration name of this backend
func (g *Greedy) Name() string {
	return GreedyName
}

// Available reports whether the backend can run; it always can
func (g *Greedy) Available() bool {
	return true
}

// Solve climbs unit by unit to a local maximum
func (g *Greedy) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
	start := time.Now()

	if m == nil || m.NumProducts == 0 {
		return nil, fmt.Errorf("model has no products")
	}

	if res := preflight(m, start); res != nil {
		return res, nil
	}
	bounds, unbounded := m.upperBounds()
	if unbounded >= 0 {
		return &Result{
			Status:  entities.StatusUnbounded,
			Detail:  fmt.Sprintf("quantity of product %d can grow without limit", unbounded),
			Runtime: time.Since(start),
		}, nil
	}

	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = start.Add(opts.TimeBudget)
	}

	cols := make([][]float64, m.NumProducts)
	for i := 0; i < m.NumProducts; i++ {
		col := make([]float64, m.NumResources())
		for k := 0; k < m.NumResources(); k++ {
			col[k] = m.Consumption.At(k, i)
		}
		cols[i] = col
	}

	x := make([]int64, m.NumProducts)
	usage := make([]float64, m.NumResources())
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return &Result{
				Status:  entities.StatusTimeout,
				Detail:  fmt.Sprintf("time budget %s exceeded", opts.TimeBudget),
				Runtime: time.Since(start),
			}, nil
		}

		bestI := -1
		bestDelta := 0.0
		for i := 0; i < m.NumProducts; i++ {
			if x[i]+1 > bounds[i] || !fits(cols[i], usage, m.Capacity) {
				continue
			}
			// marginal profit of one more unit of product i
			delta := m.Revenue[i] - m.UnitCost[i] - m.Saturation[i]*float64(2*x[i]+1)
			if j := m.premiumOrdinal(i); j >= 0 && x[i] == 0 {
				delta -= m.Activation[j]
			}
			if delta > bestDelta {
				bestDelta = delta
				bestI = i
			}
		}
		if bestI < 0 {
			break
		}

		x[bestI]++
		for k, rate := range cols[bestI] {
			usage[k] += rate
		}
	}

	xf := make([]float64, m.NumProducts)
	for i, q := range x {
		xf[i] = float64(q)
	}
	y := make([]float64, m.NumPremium)
	yb := make([]bool, m.NumPremium)
	for j := 0; j < m.NumPremium; j++ {
		if x[m.NumStandard()+j] > 0 {
			y[j] = 1
			yb[j] = true
		}
	}

	return &Result{
		Status:    entities.StatusOptimalInaccurate,
		Objective: m.ObjectiveValue(x, yb),
		X:         xf,
		Y:         y,
		Runtime:   time.Since(start),
	}, nil
}

// fits reports whether one more unit with the given consumption rates
// stays inside every remaining capacity
func fits(rates, usage, capacity []float64) bool {
	for k, rate := range rates {
		if rate > 0 && usage[k]+rate > capacity[k]+1e-9 {
			return false
		}
	}
	return true
}
