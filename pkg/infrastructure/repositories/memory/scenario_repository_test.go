package memory

import (
	"strings"
	"testing"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

func testScenario(name string) *entities.Scenario {
	return &entities.Scenario{
		Name:     name,
		Currency: "AMD",
		Products: []entities.Product{
			{Name: "TABLE_WHITE", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
		},
		Resources:   []entities.Resource{{Name: "GRAPES_KG", Capacity: 1000}},
		Consumption: [][]float64{{1}},
	}
}

func TestScenarioRepository_SaveAndGet(t *testing.T) {
	repo := NewScenarioRepository(10)

	scenario := testScenario("HARVEST_2025")
	if err := repo.SaveScenario(scenario); err != nil {
		t.Fatalf("Failed to save scenario: %v", err)
	}

	retrieved, err := repo.GetScenario("HARVEST_2025")
	if err != nil {
		t.Fatalf("Failed to get scenario: %v", err)
	}

	if retrieved.Name != scenario.Name {
		t.Errorf("Expected name %s, got %s", scenario.Name, retrieved.Name)
	}
	if len(retrieved.Products) != 1 {
		t.Errorf("Expected 1 product, got %d", len(retrieved.Products))
	}
	if retrieved.Currency != "AMD" {
		t.Errorf("Expected currency AMD, got %s", retrieved.Currency)
	}
}

func TestScenarioRepository_SaveScenario_Duplicate(t *testing.T) {
	repo := NewScenarioRepository(10)

	if err := repo.SaveScenario(testScenario("HARVEST_2025")); err != nil {
		t.Fatalf("Failed to save scenario first time: %v", err)
	}

	// same name again must be rejected
	err := repo.SaveScenario(testScenario("HARVEST_2025"))
	if err == nil {
		t.Error("Expected error when saving duplicate scenario name, got none")
	}
	if !strings.Contains(err.Error(), "duplicate scenario name") {
		t.Errorf("Expected error message to contain 'duplicate scenario name', got: %v", err)
	}
}

func TestScenarioRepository_LoadScenarios(t *testing.T) {
	repo := NewScenarioRepository(10)

	scenarios := []*entities.Scenario{
		testScenario("SPRING"),
		testScenario("AUTUMN"),
	}
	if err := repo.LoadScenarios(scenarios); err != nil {
		t.Fatalf("Failed to load scenarios: %v", err)
	}

	all, err := repo.GetAllScenarios()
	if err != nil {
		t.Fatalf("Failed to get all scenarios: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(all))
	}
	if all[0].Name != "SPRING" || all[1].Name != "AUTUMN" {
		t.Errorf("Expected insertion order SPRING, AUTUMN, got %s, %s", all[0].Name, all[1].Name)
	}
}

func TestScenarioRepository_GetScenario_NotFound(t *testing.T) {
	repo := NewScenarioRepository(10)

	_, err := repo.GetScenario("NONEXISTENT")
	if err == nil {
		t.Error("Expected error for nonexistent scenario, got none")
	}
	if !strings.Contains(err.Error(), "scenario not found") {
		t.Errorf("Expected error message to contain 'scenario not found', got: %v", err)
	}
}
