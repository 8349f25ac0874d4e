package solver

import (
	"context"
	"fmt"
	"strings"
)

// Attempt records one backend that could not run and why
type Attempt struct {
	Backend string
	Reason  string
}

// NoSolverAvailableError means every configured backend was skipped or
// failed to run, so no verdict of any kind was produced.
type NoSolverAvailableError struct {
	Attempts []Attempt
}

func (e *NoSolverAvailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "no solver available: no backends configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s (%s)", a.Backend, a.Reason))
	}
	return "no solver available: tried " + strings.Join(parts, ", ")
}

// Adapter presents a model to an ordered list of backends. Fallback
// compensates only for backends that cannot run; the first backend
// that runs to completion decides the solve, whatever its verdict.
// Each backend is tried at most once.
type Adapter struct {
	backends []Backend
}

// NewAdapter creates an adapter over an explicit backend priority list
func NewAdapter(backends ...Backend) *Adapter {
	return &Adapter{backends: backends}
}

// Names returns the configured backend names in priority order
func (a *Adapter) Names() []string {
	names := make([]string, len(a.backends))
	for i, b := range a.backends {
		names[i] = b.Name()
	}
	return names
}

// Solve tries each backend in order and returns the first result from
// a backend that ran. Context cancellation aborts the fallback loop
// with the context error rather than counting as unavailability.
func (a *Adapter) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
	var attempts []Attempt

	for _, b := range a.backends {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solve cancelled: %w", err)
		}

		if !b.Available() {
			attempts = append(attempts, Attempt{Backend: b.Name(), Reason: "unavailable"})
			continue
		}

		res, err := b.Solve(ctx, m, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("solve cancelled: %w", ctx.Err())
			}
			attempts = append(attempts, Attempt{Backend: b.Name(), Reason: err.Error()})
			continue
		}

		res.Backend = b.Name()
		return res, nil
	}

	return nil, &NoSolverAvailableError{Attempts: attempts}
}
