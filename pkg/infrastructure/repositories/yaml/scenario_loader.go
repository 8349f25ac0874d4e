package yaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Loader reads and writes whole scenarios as single YAML files. The
// consumption matrix is stored as nested maps keyed by resource then
// product name, so files stay readable and entries may be sparse:
// a missing pair means the product does not consume that resource.
type Loader struct{}

// NewLoader creates a new YAML loader
func NewLoader() *Loader {
	return &Loader{}
}

type scenarioFile struct {
	Name        string                        `yaml:"name"`
	Currency    string                        `yaml:"currency,omitempty"`
	BigM        float64                       `yaml:"big_m,omitempty"`
	Products    []productFile                 `yaml:"products"`
	Resources   []resourceFile                `yaml:"resources,omitempty"`
	Consumption map[string]map[string]float64 `yaml:"consumption,omitempty"`
}

type productFile struct {
	Name            string  `yaml:"name"`
	Category        string  `yaml:"category"`
	RevenueCoeff    float64 `yaml:"revenue_coeff"`
	SaturationCoeff float64 `yaml:"saturation_coeff"`
	VariableCost    float64 `yaml:"variable_cost"`
	ActivationCost  float64 `yaml:"activation_cost,omitempty"`
}

type resourceFile struct {
	Name     string  `yaml:"name"`
	Capacity float64 `yaml:"capacity"`
}

// Load reads a scenario from a YAML file
func (l *Loader) Load(filename string) (*entities.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file %s: %w", filename, err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	products := make([]entities.Product, 0, len(file.Products))
	for i, p := range file.Products {
		category, err := parseCategory(p.Category)
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i+1, p.Name, err)
		}
		products = append(products, entities.Product{
			Name:            p.Name,
			Category:        category,
			RevenueCoeff:    p.RevenueCoeff,
			SaturationCoeff: p.SaturationCoeff,
			VariableCost:    p.VariableCost,
			ActivationCost:  p.ActivationCost,
		})
	}

	resources := make([]entities.Resource, 0, len(file.Resources))
	for _, r := range file.Resources {
		resources = append(resources, entities.Resource{
			Name:     r.Name,
			Capacity: r.Capacity,
		})
	}

	consumption, err := buildMatrix(file.Consumption, products, resources)
	if err != nil {
		return nil, err
	}

	return entities.NewScenario(file.Name, file.Currency, products, resources, consumption, file.BigM)
}

// Save writes a scenario as a YAML file
func (l *Loader) Save(scenario *entities.Scenario, filename string) error {
	if scenario == nil {
		return fmt.Errorf("scenario cannot be nil")
	}

	file := scenarioFile{
		Name:     scenario.Name,
		Currency: scenario.Currency,
		BigM:     scenario.BigM,
	}
	for _, p := range scenario.Products {
		file.Products = append(file.Products, productFile{
			Name:            p.Name,
			Category:        strings.ToLower(p.Category.String()),
			RevenueCoeff:    p.RevenueCoeff,
			SaturationCoeff: p.SaturationCoeff,
			VariableCost:    p.VariableCost,
			ActivationCost:  p.ActivationCost,
		})
	}
	for _, r := range scenario.Resources {
		file.Resources = append(file.Resources, resourceFile{
			Name:     r.Name,
			Capacity: r.Capacity,
		})
	}
	if len(scenario.Resources) > 0 {
		file.Consumption = make(map[string]map[string]float64, len(scenario.Resources))
		for k, r := range scenario.Resources {
			row := make(map[string]float64)
			for i, p := range scenario.Products {
				if k < len(scenario.Consumption) && i < len(scenario.Consumption[k]) && scenario.Consumption[k][i] != 0 {
					row[p.Name] = scenario.Consumption[k][i]
				}
			}
			file.Consumption[r.Name] = row
		}
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file %s: %w", filename, err)
	}
	return nil
}

// buildMatrix turns the sparse name-keyed consumption maps into the
// dense [resource][product] matrix, rejecting names that do not
// appear in the scenario.
func buildMatrix(sparse map[string]map[string]float64, products []entities.Product, resources []entities.Resource) ([][]float64, error) {
	productIndex := make(map[string]int, len(products))
	for i, p := range products {
		productIndex[p.Name] = i
	}
	resourceIndex := make(map[string]int, len(resources))
	for k, r := range resources {
		resourceIndex[r.Name] = k
	}

	matrix := make([][]float64, len(resources))
	for k := range matrix {
		matrix[k] = make([]float64, len(products))
	}

	for resourceName, row := range sparse {
		k, ok := resourceIndex[resourceName]
		if !ok {
			return nil, fmt.Errorf("consumption references unknown resource %q", resourceName)
		}
		for productName, rate := range row {
			i, ok := productIndex[productName]
			if !ok {
				return nil, fmt.Errorf("consumption for %s references unknown product %q", resourceName, productName)
			}
			matrix[k][i] = rate
		}
	}

	return matrix, nil
}

func parseCategory(s string) (entities.Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return entities.Standard, nil
	case "premium":
		return entities.Premium, nil
	default:
		return entities.Standard, fmt.Errorf("invalid category: %s (expected: standard or premium)", s)
	}
}
