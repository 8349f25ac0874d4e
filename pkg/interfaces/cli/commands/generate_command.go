package commands

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/yaml"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Name       string  // Scenario name
	Currency   string  // Currency label carried into the scenario
	Standard   int     // Number of standard products
	Premium    int     // Number of premium products
	Resources  int     // Number of shared resources
	Tightness  float64 // Capacity multiplier (e.g. 0.5 = scarce, 4.0 = slack)
	Seed       int64   // Random seed for reproducible generation
	OutputFile string  // YAML destination; mutually exclusive with OutputDir
	OutputDir  string  // CSV scenario directory destination
	Verbose    bool
}

// GenerateCommand writes a randomized but well-formed scenario, used
// for demos and for stressing the solver at larger sizes
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	config.Seed = seed

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (c *GenerateCommand) Execute(ctx context.Context) error {
	if err := c.validateConfig(); err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("🔧 Generating %q: %d standard + %d premium products, %d resources, %.1fx capacity\n",
			c.config.Name, c.config.Standard, c.config.Premium, c.config.Resources, c.config.Tightness)
		fmt.Printf("🎲 Random seed: %d\n", c.config.Seed)
	}

	scenario, err := c.buildScenario()
	if err != nil {
		return fmt.Errorf("failed to generate scenario: %w", err)
	}

	if c.config.OutputFile != "" {
		if err := yaml.NewLoader().Save(scenario, c.config.OutputFile); err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("💾 Scenario saved to: %s\n", c.config.OutputFile)
		}
		return nil
	}

	if err := csv.NewLoader().SaveScenario(scenario, c.config.OutputDir); err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Printf("💾 Scenario saved to: %s\n", c.config.OutputDir)
	}
	return nil
}

func (c *GenerateCommand) validateConfig() error {
	if c.config.Standard < 1 {
		return fmt.Errorf("at least one standard product is required, got %d", c.config.Standard)
	}
	if c.config.Premium < 0 {
		return fmt.Errorf("premium product count cannot be negative, got %d", c.config.Premium)
	}
	if c.config.Resources < 1 {
		return fmt.Errorf("at least one resource is required, got %d", c.config.Resources)
	}
	if c.config.Tightness <= 0 {
		return fmt.Errorf("tightness must be positive, got %g", c.config.Tightness)
	}
	if c.config.OutputFile == "" && c.config.OutputDir == "" {
		return fmt.Errorf("specify an output file (YAML) or an output directory (CSV)")
	}
	if c.config.OutputFile != "" && c.config.OutputDir != "" {
		return fmt.Errorf("specify either an output file or an output directory, not both")
	}
	return nil
}

// buildScenario draws coefficients from ranges that keep the problem
// interesting: every product has positive margin at low volume, every
// premium activation is worth paying at sufficient volume, and
// capacities scale with expected usage times the tightness knob.
func (c *GenerateCommand) buildScenario() (*entities.Scenario, error) {
	total := c.config.Standard + c.config.Premium
	products := make([]entities.Product, 0, total)

	for i := 0; i < c.config.Standard; i++ {
		revenue := 20 + c.rand.Float64()*80
		products = append(products, entities.Product{
			Name:            fmt.Sprintf("STD-%03d", i+1),
			Category:        entities.Standard,
			RevenueCoeff:    revenue,
			SaturationCoeff: 0.1 + c.rand.Float64()*2,
			VariableCost:    revenue * (0.2 + c.rand.Float64()*0.4),
		})
	}
	for j := 0; j < c.config.Premium; j++ {
		revenue := 50 + c.rand.Float64()*150
		products = append(products, entities.Product{
			Name:            fmt.Sprintf("PRM-%03d", j+1),
			Category:        entities.Premium,
			RevenueCoeff:    revenue,
			SaturationCoeff: 0.5 + c.rand.Float64()*3,
			VariableCost:    revenue * (0.2 + c.rand.Float64()*0.4),
			ActivationCost:  revenue * (1 + c.rand.Float64()*4),
		})
	}

	// rates first, so capacities can be scaled to typical usage
	consumption := make([][]float64, c.config.Resources)
	for k := range consumption {
		row := make([]float64, total)
		for i := range row {
			if c.rand.Float64() < 0.25 {
				continue // this product does not touch this resource
			}
			row[i] = 0.5 + c.rand.Float64()*4
		}
		consumption[k] = row
	}

	resources := make([]entities.Resource, 0, c.config.Resources)
	for k := 0; k < c.config.Resources; k++ {
		expected := 0.0
		for i := range products {
			expected += consumption[k][i] * unconstrainedVolume(&products[i])
		}
		resources = append(resources, entities.Resource{
			Name:     fmt.Sprintf("RES-%02d", k+1),
			Capacity: expected * c.config.Tightness,
		})
	}

	bigM := 10.0
	for i := range products {
		if v := unconstrainedVolume(&products[i]) * 2; v > bigM {
			bigM = v
		}
	}

	name := c.config.Name
	if name == "" {
		name = fmt.Sprintf("generated-%d", c.config.Seed)
	}
	currency := c.config.Currency
	if currency == "" {
		currency = "USD"
	}
	return entities.NewScenario(name, currency, products, resources, consumption, bigM)
}

// unconstrainedVolume is the vertex of the product's concave profit
// curve, the volume it would run at with unlimited capacity
func unconstrainedVolume(p *entities.Product) float64 {
	if p.SaturationCoeff <= 0 {
		return 10
	}
	v := (p.RevenueCoeff - p.VariableCost) / (2 * p.SaturationCoeff)
	if v < 0 {
		return 0
	}
	return v
}
