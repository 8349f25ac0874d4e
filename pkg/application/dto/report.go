package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Report contains the complete output of one planning run: the
// integral production plan, the audited money breakdown recomputed
// from it, and provenance describing which backend produced the
// underlying solution.
type Report struct {
	RunID       uuid.UUID               `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Scenario    string                  `json:"scenario"`
	Currency    string                  `json:"currency"`
	Backend     string                  `json:"backend"`
	Status      string                  `json:"status"`
	SolveTime   time.Duration           `json:"solve_time_ns"`
	Objective   float64                 `json:"solver_objective"`
	Plan        entities.ProductionPlan `json:"plan"`
	Breakdown   entities.Breakdown      `json:"breakdown"`
	Discrepancy decimal.Decimal         `json:"discrepancy"`
	Violations  []string                `json:"violations,omitempty"`
	Bottlenecks []entities.Bottleneck   `json:"bottlenecks,omitempty"`
}

// Summary returns a one-line description suitable for batch listings
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %s, net profit %s %s, %d units across %d products",
		r.Scenario,
		r.Status,
		r.Breakdown.NetProfit.String(),
		r.Currency,
		r.Plan.TotalUnits(),
		len(r.Breakdown.Products))
}
