package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vsinha/mixplan/pkg/application/services"
	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/yaml"
	"github.com/vsinha/mixplan/pkg/interfaces/cli/output"
	"github.com/vsinha/mixplan/pkg/solver"
)

// BatchConfig holds configuration for the batch command
type BatchConfig struct {
	ScenarioGlob string
	Backends     []string
	TimeBudget   time.Duration
	Workers      int
	OutputDir    string
	Format       string
	Verbose      bool
}

// BatchCommand evaluates many scenario files concurrently and prints
// a profit comparison across them
type BatchCommand struct {
	config BatchConfig
}

// NewBatchCommand creates a new batch command with the given configuration
func NewBatchCommand(config BatchConfig) *BatchCommand {
	return &BatchCommand{
		config: config,
	}
}

// Execute runs the batch command
func (c *BatchCommand) Execute(ctx context.Context) error {
	paths, err := filepath.Glob(c.config.ScenarioGlob)
	if err != nil {
		return fmt.Errorf("bad scenario glob %q: %w", c.config.ScenarioGlob, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no scenario files match %q", c.config.ScenarioGlob)
	}
	sort.Strings(paths)

	loader := yaml.NewLoader()
	scenarios := make([]*entities.Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := loader.Load(path)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", path, err)
		}
		scenarios = append(scenarios, scenario)
	}

	if c.config.Verbose {
		fmt.Printf("📂 Loaded %d scenarios from %s\n", len(scenarios), c.config.ScenarioGlob)
		fmt.Printf("⚙️  Evaluating with %d workers\n\n", c.workers())
	}

	backends := make([]solver.Backend, 0, len(c.config.Backends))
	for _, name := range c.config.Backends {
		b, err := solver.NewBackend(name)
		if err != nil {
			return err
		}
		backends = append(backends, b)
	}

	planner := services.NewPlanningServiceWithConfig(services.PlanningConfig{
		Backends: backends,
		Options:  solver.Options{TimeBudget: c.config.TimeBudget},
	})
	batch := services.NewBatchService(planner, c.workers())

	start := time.Now()
	results := batch.PlanAll(ctx, scenarios)
	elapsed := time.Since(start)

	c.printComparison(results, elapsed)

	if c.config.OutputDir != "" {
		for _, r := range results {
			if r.Report == nil {
				continue
			}
			dir := filepath.Join(c.config.OutputDir, sanitizeName(r.Scenario))
			err := output.Generate(r.Report, output.Config{
				Format:    c.config.Format,
				OutputDir: dir,
				Verbose:   false,
			})
			if err != nil {
				return fmt.Errorf("error writing report for %s: %w", r.Scenario, err)
			}
		}
		if c.config.Verbose {
			fmt.Printf("💾 Per-scenario reports saved under: %s\n", c.config.OutputDir)
		}
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("batch finished with failures, first was %s: %w", r.Scenario, r.Err)
		}
	}
	return nil
}

func (c *BatchCommand) workers() int {
	if c.config.Workers < 1 {
		return 4
	}
	return c.config.Workers
}

// printComparison renders one line per scenario, best net profit first
func (c *BatchCommand) printComparison(results []services.BatchResult, elapsed time.Duration) {
	ranked := make([]services.BatchResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Report == nil {
			return false
		}
		if ranked[j].Report == nil {
			return true
		}
		return ranked[i].Report.Breakdown.NetProfit.GreaterThan(ranked[j].Report.Breakdown.NetProfit)
	})

	fmt.Printf("📊 Batch Results (%d scenarios in %v)\n", len(results), elapsed)
	fmt.Printf("%-20s %-18s %-10s %-12s %s\n",
		"Scenario", "Status", "Units", "Net Profit", "Backend")
	fmt.Printf("%-20s %-18s %-10s %-12s %s\n",
		"--------------------", "------------------", "----------", "------------", "----------")

	for _, r := range ranked {
		if r.Err != nil {
			fmt.Printf("%-20s %-18s %-10s %-12s %s\n", r.Scenario, "Failed", "-", "-", r.Err)
			continue
		}
		fmt.Printf("%-20s %-18s %-10d %-12s %s\n",
			r.Scenario,
			r.Report.Status,
			r.Report.Plan.TotalUnits(),
			r.Report.Breakdown.NetProfit.String(),
			r.Report.Backend)
	}
	fmt.Println()
}

// sanitizeName makes a scenario name safe to use as a directory name
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", string(filepath.Separator), "_")
	return replacer.Replace(name)
}
