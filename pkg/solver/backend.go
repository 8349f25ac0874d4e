package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Options carries per-solve tuning passed through to a backend.
// A zero TimeBudget means no limit.
type Options struct {
	TimeBudget time.Duration
}

// Result is the normalized outcome of one backend run. X and Y are
// the raw variable values, which may be fractional within solver
// tolerance; Interpret recovers the integral decisions. Detail
// carries backend-provided context for Error, Unbounded and Timeout
// verdicts.
type Result struct {
	Status    entities.SolveStatus
	Objective float64
	X         []float64
	Y         []float64
	Backend   string
	Runtime   time.Duration
	Detail    string
}

// Solved reports whether the result carries a usable solution
func (r *Result) Solved() bool {
	return r != nil && r.Status.Solved()
}

// Backend is one mixed-integer solving strategy. Available reports
// whether the backend can run in this process at all; Solve runs the
// model to a terminal verdict. A (nil, error) return means the
// backend failed to run, which the Adapter treats like
// unavailability; a Result with a non-success status is a definitive
// verdict and is never retried.
type Backend interface {
	Name() string
	Available() bool
	Solve(ctx context.Context, m *Model, opts Options) (*Result, error)
}

// NewBackend maps a configured backend name to an implementation.
// There is no process-wide registry: callers assemble an explicit
// priority list and hand it to NewAdapter.
func NewBackend(name string) (Backend, error) {
	switch name {
	case BranchBoundName:
		return NewBranchBound(), nil
	case GreedyName:
		return NewGreedy(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (known: %s, %s)", name, BranchBoundName, GreedyName)
	}
}

// DefaultBackends returns the standard priority order: the exact
// search first, the heuristic as fallback.
func DefaultBackends() []Backend {
	return []Backend{NewBranchBound(), NewGreedy()}
}
