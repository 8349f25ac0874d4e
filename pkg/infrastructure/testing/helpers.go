package testing

import (
	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/infrastructure/repositories/memory"
)

// BuildVineyardScenario builds a small winery planning scenario with
// two standard wines, one premium wine, and two shared resources. The
// numbers are chosen so the optimum is easy to verify by hand.
func BuildVineyardScenario() *entities.Scenario {
	products := []entities.Product{
		{Name: "TABLE_WHITE", Category: entities.Standard, RevenueCoeff: 12, SaturationCoeff: 0.5, VariableCost: 4},
		{Name: "TABLE_RED", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
		{Name: "RESERVE_RED", Category: entities.Premium, RevenueCoeff: 30, SaturationCoeff: 2, VariableCost: 6, ActivationCost: 25},
	}
	resources := []entities.Resource{
		{Name: "GRAPES_KG", Capacity: 40},
		{Name: "BOTTLING_HRS", Capacity: 12},
	}
	consumption := [][]float64{
		{1, 1.5, 3},
		{0.5, 0.5, 1},
	}

	scenario, err := entities.NewScenario("VINEYARD", "USD", products, resources, consumption, 50)
	if err != nil {
		panic(err)
	}
	return scenario
}

// BuildSaturatingScenario builds a single-product scenario where
// revenue saturation, not capacity, sets the optimum: one standard
// wine with ample grapes. The best plan makes 4 units for a profit
// of 16.
func BuildSaturatingScenario() *entities.Scenario {
	products := []entities.Product{
		{Name: "TABLE_RED", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
	}
	resources := []entities.Resource{
		{Name: "GRAPES_KG", Capacity: 1000},
	}
	consumption := [][]float64{{1}}

	scenario, err := entities.NewScenario("SATURATION", "USD", products, resources, consumption, 0)
	if err != nil {
		panic(err)
	}
	return scenario
}

// BuildPremiumScenario builds a single premium product scenario whose
// activation pays for itself: capacity allows 5 units, linear revenue,
// activation cost 3. The best plan activates and makes all 5 units for
// a net profit of 17.
func BuildPremiumScenario() *entities.Scenario {
	products := []entities.Product{
		{Name: "RESERVE_RED", Category: entities.Premium, RevenueCoeff: 5, SaturationCoeff: 0, VariableCost: 1, ActivationCost: 3},
	}
	resources := []entities.Resource{
		{Name: "GRAPES_KG", Capacity: 5},
	}
	consumption := [][]float64{{1}}

	scenario, err := entities.NewScenario("PREMIUM", "USD", products, resources, consumption, 10)
	if err != nil {
		panic(err)
	}
	return scenario
}

// BuildIdleScenario is BuildPremiumScenario with the grapes removed:
// zero capacity forces the whole plan to zero.
func BuildIdleScenario() *entities.Scenario {
	scenario := BuildPremiumScenario()
	scenario.Name = "IDLE"
	scenario.Resources[0].Capacity = 0
	return scenario
}

// BuildScenarioRepository builds an in-memory repository preloaded
// with every test scenario above.
func BuildScenarioRepository() *memory.ScenarioRepository {
	repo := memory.NewScenarioRepository(4)
	err := repo.LoadScenarios([]*entities.Scenario{
		BuildVineyardScenario(),
		BuildSaturatingScenario(),
		BuildPremiumScenario(),
		BuildIdleScenario(),
	})
	if err != nil {
		panic(err)
	}
	return repo
}
