package memory

import (
	"fmt"

	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/domain/repositories"
)

// ScenarioRepository provides in-memory scenario storage
type ScenarioRepository struct {
	scenarios []entities.Scenario
	byName    map[string]int
}

// NewScenarioRepository creates a new in-memory scenario repository
func NewScenarioRepository(expectedScenarios int) *ScenarioRepository {
	return &ScenarioRepository{
		scenarios: make([]entities.Scenario, 0, expectedScenarios),
		byName:    make(map[string]int, expectedScenarios),
	}
}

// Verify interface compliance
var _ repositories.ScenarioRepository = (*ScenarioRepository)(nil)

// LoadScenarios loads scenarios into the repository
func (r *ScenarioRepository) LoadScenarios(scenarios []*entities.Scenario) error {
	for _, scenario := range scenarios {
		if err := r.SaveScenario(scenario); err != nil {
			return err
		}
	}
	return nil
}

// SaveScenario saves a scenario, rejecting duplicate names
func (r *ScenarioRepository) SaveScenario(scenario *entities.Scenario) error {
	if scenario == nil {
		return fmt.Errorf("scenario cannot be nil")
	}
	if _, exists := r.byName[scenario.Name]; exists {
		return fmt.Errorf("duplicate scenario name: %s", scenario.Name)
	}
	r.byName[scenario.Name] = len(r.scenarios)
	r.scenarios = append(r.scenarios, *scenario)
	return nil
}

// GetScenario returns the scenario with the given name
func (r *ScenarioRepository) GetScenario(name string) (*entities.Scenario, error) {
	index, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("scenario not found: %s", name)
	}
	return &r.scenarios[index], nil
}

// GetAllScenarios returns all scenarios in insertion order
func (r *ScenarioRepository) GetAllScenarios() ([]*entities.Scenario, error) {
	var scenarios []*entities.Scenario
	for i := range r.scenarios {
		scenarios = append(scenarios, &r.scenarios[i])
	}
	return scenarios, nil
}
