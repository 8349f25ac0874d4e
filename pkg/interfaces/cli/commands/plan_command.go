package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vsinha/mixplan/pkg/application/dto"
	"github.com/vsinha/mixplan/pkg/application/services"
	"github.com/vsinha/mixplan/pkg/domain/entities"
	domainservices "github.com/vsinha/mixplan/pkg/domain/services"
	"github.com/vsinha/mixplan/pkg/infrastructure/events"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/yaml"
	"github.com/vsinha/mixplan/pkg/interfaces/cli/output"
	"github.com/vsinha/mixplan/pkg/solver"
)

// PlanConfig holds configuration for the plan command
type PlanConfig struct {
	ScenarioFile string
	ScenarioDir  string
	Backends     []string
	TimeBudget   time.Duration
	OutputDir    string
	Format       string
	Verbose      bool
}

// PlanCommand runs the full planning pipeline for one scenario
type PlanCommand struct {
	config PlanConfig
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config PlanConfig) *PlanCommand {
	return &PlanCommand{
		config: config,
	}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	scenario, source, err := c.loadScenario()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loaded scenario %q from %s\n", scenario.Name, source)
		fmt.Printf("  Products: %d (%d premium)\n", len(scenario.Products), scenario.PremiumCount())
		fmt.Printf("  Resources: %d\n", len(scenario.Resources))
		fmt.Printf("  Big-M: %g\n\n", scenario.BigM)
	}

	backends, err := c.resolveBackends()
	if err != nil {
		return err
	}

	planConfig := services.PlanningConfig{
		Backends: backends,
		Options:  solver.Options{TimeBudget: c.config.TimeBudget},
	}

	var report *dto.Report
	if c.config.Verbose {
		// verbose mode narrates the run's lifecycle from the event stream
		store := events.NewInMemoryEventStore()
		lifecycle := []string{
			events.SolveStartedEvent,
			events.ScenarioValidatedEvent,
			events.ModelBuiltEvent,
			events.SolveCompletedEvent,
			events.SolveFailedEvent,
			events.ReportBuiltEvent,
		}
		if err := store.Subscribe(lifecycle, &consoleEventHandler{}); err != nil {
			return fmt.Errorf("failed to subscribe progress handler: %w", err)
		}
		planner := services.NewEventDrivenPlanningServiceWithConfig(planConfig, store)
		report, err = planner.Plan(ctx, scenario)
	} else {
		planner := services.NewPlanningServiceWithConfig(planConfig)
		report, err = planner.Plan(ctx, scenario)
	}
	if err != nil {
		return c.explainFailure(err)
	}

	if c.config.Verbose {
		fmt.Println()
	}

	return output.Generate(report, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// loadScenario reads the scenario from whichever source is configured
func (c *PlanCommand) loadScenario() (*entities.Scenario, string, error) {
	switch {
	case c.config.ScenarioFile != "" && c.config.ScenarioDir != "":
		return nil, "", fmt.Errorf("specify either a scenario file or a scenario directory, not both")
	case c.config.ScenarioFile != "":
		scenario, err := yaml.NewLoader().Load(c.config.ScenarioFile)
		if err != nil {
			return nil, "", fmt.Errorf("error loading scenario: %w", err)
		}
		return scenario, c.config.ScenarioFile, nil
	case c.config.ScenarioDir != "":
		scenario, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir)
		if err != nil {
			return nil, "", fmt.Errorf("error loading scenario: %w", err)
		}
		return scenario, c.config.ScenarioDir, nil
	default:
		return nil, "", fmt.Errorf("no scenario specified: use --scenario for a YAML file or --scenario-dir for a CSV directory")
	}
}

// resolveBackends maps configured backend names to implementations,
// preserving the configured priority order. An empty list means the
// default order.
func (c *PlanCommand) resolveBackends() ([]solver.Backend, error) {
	if len(c.config.Backends) == 0 {
		return nil, nil
	}
	backends := make([]solver.Backend, 0, len(c.config.Backends))
	for _, name := range c.config.Backends {
		b, err := solver.NewBackend(name)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}
	return backends, nil
}

// explainFailure turns the pipeline's error taxonomy into actionable
// messages rather than bare error chains
func (c *PlanCommand) explainFailure(err error) error {
	var validationErr *domainservices.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("scenario rejected before solving: %w", err)
	}

	var noSolver *solver.NoSolverAvailableError
	if errors.As(err, &noSolver) {
		return fmt.Errorf("%w; check the backends setting", noSolver)
	}

	var failed *services.SolveFailedError
	if errors.As(err, &failed) {
		switch failed.Result.Status {
		case entities.StatusInfeasible:
			return fmt.Errorf("%w; no production plan satisfies the resource capacities", err)
		case entities.StatusUnbounded:
			return fmt.Errorf("%w; check saturation coefficients and consumption rates", err)
		case entities.StatusTimeout:
			return fmt.Errorf("%w; retry with a larger time budget", err)
		}
	}

	return err
}

// consoleEventHandler narrates planning lifecycle events to stdout
type consoleEventHandler struct{}

func (h *consoleEventHandler) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.SolveStarted:
		fmt.Printf("🚀 Solving %s (backends: %v)\n", data.Scenario, data.Backends)
	case events.ScenarioValidated:
		fmt.Printf("✅ Scenario validated: %d products, %d resources\n", data.Products, data.Resources)
	case events.ModelBuilt:
		fmt.Printf("🔧 Model built: %d products (%d premium), %d capacity constraints\n",
			data.Products, data.Premium, data.Resources)
	case events.SolveCompleted:
		fmt.Printf("🎯 %s solved by %s in %v (objective %g)\n",
			data.Status, data.Backend, data.Runtime, data.Objective)
	case events.SolveFailed:
		fmt.Printf("❌ Solve failed: %s\n", data.Reason)
	case events.ReportBuilt:
		fmt.Printf("📊 Report %s built: net profit %s\n", data.RunID, data.NetProfit)
	}
	return nil
}

func (h *consoleEventHandler) CanHandle(eventType string) bool {
	return true
}
