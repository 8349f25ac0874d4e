package commands

import (
	"context"
	"fmt"

	"github.com/vsinha/mixplan/pkg/domain/services"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/yaml"
	"github.com/vsinha/mixplan/pkg/interfaces/tui"
)

// NewConfig holds configuration for the interactive scenario builder
type NewConfig struct {
	OutputFile string
	Verbose    bool
}

// NewCommand walks the user through entering a scenario field by
// field, validates it, and saves it as a YAML file for later planning
type NewCommand struct {
	config NewConfig
}

// NewNewCommand creates a new interactive scenario command
func NewNewCommand(config NewConfig) *NewCommand {
	return &NewCommand{
		config: config,
	}
}

// Execute runs the interactive scenario builder
func (c *NewCommand) Execute(ctx context.Context) error {
	if c.config.OutputFile == "" {
		return fmt.Errorf("no output file specified for the new scenario")
	}

	scenario, err := tui.BuildScenario()
	if err != nil {
		return fmt.Errorf("scenario entry failed: %w", err)
	}

	// reject bad input now, not at plan time
	if err := services.NewScenarioValidator().Validate(scenario); err != nil {
		return err
	}

	if err := yaml.NewLoader().Save(scenario, c.config.OutputFile); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("💾 Scenario %q saved to: %s\n", scenario.Name, c.config.OutputFile)
		fmt.Printf("   Run it with: mixplan plan --scenario %s\n", c.config.OutputFile)
	}
	return nil
}
