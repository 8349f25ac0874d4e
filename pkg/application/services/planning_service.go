package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/mixplan/pkg/application/dto"
	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/domain/services"
	"github.com/vsinha/mixplan/pkg/solver"
)

// PlanningConfig holds configuration for one planning pipeline
type PlanningConfig struct {
	// Backends are tried in priority order. Empty means
	// solver.DefaultBackends().
	Backends []solver.Backend
	// Options are passed through unchanged to whichever backend runs
	Options solver.Options
}

// SolveFailedError reports a definitive solver verdict that produced
// no usable plan. The full result, including the backend name and any
// detail message, rides along for callers that want to present it.
type SolveFailedError struct {
	Result *solver.Result
}

func (e *SolveFailedError) Error() string {
	if e.Result.Detail != "" {
		return fmt.Sprintf("solve finished without a plan: %s (%s)", e.Result.Status, e.Result.Detail)
	}
	return fmt.Sprintf("solve finished without a plan: %s", e.Result.Status)
}

// PlanningService runs the full planning pipeline for one scenario:
// validate, build the model, solve with backend fallback, then round
// and audit the solution into a report. The service holds no mutable
// state, so one instance can plan many scenarios concurrently.
type PlanningService struct {
	config      PlanningConfig
	validator   *services.ScenarioValidator
	bottlenecks *BottleneckService
}

// NewPlanningService creates a planning service with default configuration
func NewPlanningService() *PlanningService {
	return NewPlanningServiceWithConfig(PlanningConfig{})
}

// NewPlanningServiceWithConfig creates a planning service with custom configuration
func NewPlanningServiceWithConfig(config PlanningConfig) *PlanningService {
	return &PlanningService{
		config:      config,
		validator:   services.NewScenarioValidator(),
		bottlenecks: NewBottleneckService(),
	}
}

// Plan produces a production plan report for the given scenario.
//
// Validation failures come back as *services.ValidationError naming
// the offending field. Definitive non-solutions (infeasible,
// unbounded, timeout, backend error) come back as *SolveFailedError
// carrying the verdict. When every backend is unavailable the
// *solver.NoSolverAvailableError lists what was tried.
func (s *PlanningService) Plan(ctx context.Context, scenario *entities.Scenario) (*dto.Report, error) {
	// Step 1: Validate the scenario aggregate
	if err := s.validator.Validate(scenario); err != nil {
		return nil, err
	}

	// Step 2: Build the optimization model
	model, err := solver.BuildModel(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to build model for %s: %w", scenario.Name, err)
	}

	// Step 3: Solve, falling over to the next backend only when one
	// is unavailable. Definitive verdicts stop the fallback chain.
	backends := s.config.Backends
	if len(backends) == 0 {
		backends = solver.DefaultBackends()
	}
	adapter := solver.NewAdapter(backends...)
	result, err := adapter.Solve(ctx, model, s.config.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to solve %s: %w", scenario.Name, err)
	}
	if !result.Status.Solved() {
		return nil, &SolveFailedError{Result: result}
	}

	// Step 4: Round to integral decisions and recompute the audited breakdown
	interp, err := solver.Interpret(scenario, result)
	if err != nil {
		return nil, fmt.Errorf("failed to interpret solution for %s: %w", scenario.Name, err)
	}

	// Step 5: Assemble the report
	return &dto.Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now(),
		Scenario:    scenario.Name,
		Currency:    scenario.Currency,
		Backend:     result.Backend,
		Status:      result.Status.String(),
		SolveTime:   result.Runtime,
		Objective:   result.Objective,
		Plan:        interp.Plan,
		Breakdown:   interp.Breakdown,
		Discrepancy: interp.Discrepancy,
		Violations:  interp.Violations,
		Bottlenecks: s.bottlenecks.Analyze(scenario, &interp.Breakdown),
	}, nil
}

// BackendNames returns the names of the backends this service will
// try, in priority order.
func (s *PlanningService) BackendNames() []string {
	backends := s.config.Backends
	if len(backends) == 0 {
		backends = solver.DefaultBackends()
	}
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name()
	}
	return names
}
