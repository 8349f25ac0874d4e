package repositories

import "github.com/vsinha/mixplan/pkg/domain/entities"

// ScenarioRepository provides access to loaded planning scenarios
type ScenarioRepository interface {
	GetScenario(name string) (*entities.Scenario, error)
	GetAllScenarios() ([]*entities.Scenario, error)
	SaveScenario(scenario *entities.Scenario) error
}
