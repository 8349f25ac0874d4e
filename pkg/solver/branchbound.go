package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// BranchBoundName is the configuration name of the exact backend
const BranchBoundName = "branch-and-bound"

// BranchBound is the exact backend: a depth-first search over
// integral quantities with concave suffix-bound pruning. Activations
// are derived rather than branched on, since activating a premium
// product that produces nothing only adds cost. Among equal-profit
// plans the search keeps the one with the smallest quantities.
type BranchBound struct{}

// NewBranchBound creates the exact search backend
func NewBranchBound() *BranchBound {
	return &BranchBound{}
}

// Verify interface compliance
var _ Backend = (*BranchBound)(nil)

// Name returns the configuration name of this backend
func (bb *BranchBound) Name() string {
	return BranchBoundName
}

// Available reports whether the backend can run; the search is pure
// Go, so it always can.
func (bb *BranchBound) Available() bool {
	return true
}

// Solve runs the model to a terminal verdict
func (bb *BranchBound) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
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

	s := newSearch(ctx, m, bounds, opts.TimeBudget)
	s.assign(0, 0)

	if s.ctxErr != nil {
		return nil, s.ctxErr
	}
	if s.timedOut {
		return &Result{
			Status:  entities.StatusTimeout,
			Detail:  fmt.Sprintf("time budget %s exceeded after %d nodes", opts.TimeBudget, s.nodes),
			Runtime: time.Since(start),
		}, nil
	}

	x := make([]float64, m.NumProducts)
	for i, q := range s.bestX {
		x[i] = float64(q)
	}
	y := make([]float64, m.NumPremium)
	for j := 0; j < m.NumPremium; j++ {
		if s.bestX[m.NumStandard()+j] > 0 {
			y[j] = 1
		}
	}

	return &Result{
		Status:    entities.StatusOptimal,
		Objective: s.bestVal,
		X:         x,
		Y:         y,
		Runtime:   time.Since(start),
	}, nil
}

// preflight rejects models that are infeasible before any search:
// with a negative capacity even the all-zero plan violates its row.
func preflight(m *Model, start time.Time) *Result {
	for k, capacity := range m.Capacity {
		if capacity < 0 {
			return &Result{
				Status:  entities.StatusInfeasible,
				Detail:  fmt.Sprintf("resource %d has negative capacity %g", k, capacity),
				Runtime: time.Since(start),
			}
		}
	}
	return nil
}

type search struct {
	ctx      context.Context
	m        *Model
	bounds   []int64
	cols     [][]float64 // consumption by product, indexed [product][resource]
	suffix   []float64   // optimistic profit still available from product i onward
	usage    []float64
	x        []int64
	bestX    []int64
	bestVal  float64
	deadline time.Time
	nodes    int64
	timedOut bool
	ctxErr   error
}

func newSearch(ctx context.Context, m *Model, bounds []int64, budget time.Duration) *search {
	s := &search{
		ctx:     ctx,
		m:       m,
		bounds:  bounds,
		usage:   make([]float64, m.NumResources()),
		x:       make([]int64, m.NumProducts),
		bestX:   make([]int64, m.NumProducts),
		bestVal: math.Inf(-1),
	}
	if budget > 0 {
		s.deadline = time.Now().Add(budget)
	}

	s.cols = make([][]float64, m.NumProducts)
	for i := 0; i < m.NumProducts; i++ {
		col := make([]float64, m.NumResources())
		for k := 0; k < m.NumResources(); k++ {
			col[k] = m.Consumption.At(k, i)
		}
		s.cols[i] = col
	}

	s.suffix = make([]float64, m.NumProducts+1)
	for i := m.NumProducts - 1; i >= 0; i-- {
		s.suffix[i] = s.suffix[i+1] + bestTerm(m, i, bounds[i])
	}
	return s
}

// bestTerm returns the largest value margin*q - b*q^2 can take for
// q in [0, ub], ignoring activation costs. Ignoring them keeps the
// bound optimistic, which is all pruning needs.
func bestTerm(m *Model, i int, ub int64) float64 {
	margin := m.Revenue[i] - m.UnitCost[i]
	b := m.Saturation[i]
	term := func(q int64) float64 {
		fq := float64(q)
		return margin*fq - b*fq*fq
	}

	best := term(0)
	if v := term(ub); v > best {
		best = v
	}
	if b > 0 {
		vertex := margin / (2 * b)
		for _, q := range []int64{int64(math.Floor(vertex)), int64(math.Ceil(vertex))} {
			if q < 0 {
				q = 0
			}
			if q > ub {
				q = ub
			}
			if v := term(q); v > best {
				best = v
			}
		}
	}
	return best
}

func (s *search) abort() bool {
	if s.timedOut || s.ctxErr != nil {
		return true
	}
	if s.nodes&63 == 1 {
		if err := s.ctx.Err(); err != nil {
			s.ctxErr = err
			return true
		}
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			s.timedOut = true
			return true
		}
	}
	return false
}

func (s *search) assign(i int, profit float64) {
	s.nodes++
	if s.abort() {
		return
	}

	if i == s.m.NumProducts {
		if profit > s.bestVal {
			s.bestVal = profit
			copy(s.bestX, s.x)
		}
		return
	}

	if profit+s.suffix[i] <= s.bestVal {
		return
	}

	// tighten the static ceiling by the capacity still unused
	maxq := s.bounds[i]
	col := s.cols[i]
	for k, rate := range col {
		if rate > 0 {
			if q := int64(math.Floor((s.m.Capacity[k] - s.usage[k]) / rate)); q < maxq {
				maxq = q
			}
		}
	}
	if maxq < 0 {
		maxq = 0
	}

	margin := s.m.Revenue[i] - s.m.UnitCost[i]
	b := s.m.Saturation[i]
	j := s.m.premiumOrdinal(i)

	for q := int64(0); q <= maxq; q++ {
		fq := float64(q)
		term := margin*fq - b*fq*fq
		if q > 0 && j >= 0 {
			term -= s.m.Activation[j]
		}

		child := profit + term
		if child+s.suffix[i+1] <= s.bestVal {
			continue
		}

		s.x[i] = q
		if q > 0 {
			for k, rate := range col {
				s.usage[k] += rate * fq
			}
		}

		s.assign(i+1, child)

		if q > 0 {
			for k, rate := range col {
				s.usage[k] -= rate * fq
			}
		}
		if s.timedOut || s.ctxErr != nil {
			break
		}
	}
	s.x[i] = 0
}
