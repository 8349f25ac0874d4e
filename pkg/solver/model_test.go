package solver

import (
	"testing"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

func singleStandardScenario() *entities.Scenario {
	return &entities.Scenario{
		Name:     "SINGLE_STANDARD",
		Currency: "AMD",
		Products: []entities.Product{
			{Name: "TABLE_RED", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
		},
		Resources:   []entities.Resource{{Name: "GRAPES_KG", Capacity: 1000}},
		Consumption: [][]float64{{1}},
		BigM:        0,
	}
}

func singlePremiumScenario() *entities.Scenario {
	return &entities.Scenario{
		Name:     "SINGLE_PREMIUM",
		Currency: "AMD",
		Products: []entities.Product{
			{Name: "RESERVE_RED", Category: entities.Premium, RevenueCoeff: 5, SaturationCoeff: 0, VariableCost: 1, ActivationCost: 3},
		},
		Resources:   []entities.Resource{{Name: "GRAPES_KG", Capacity: 5}},
		Consumption: [][]float64{{1}},
		BigM:        10,
	}
}

func mixedScenario() *entities.Scenario {
	return &entities.Scenario{
		Name:     "MIXED",
		Currency: "AMD",
		Products: []entities.Product{
			{Name: "TABLE_WHITE", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
			{Name: "TABLE_RED", Category: entities.Standard, RevenueCoeff: 12, SaturationCoeff: 1, VariableCost: 3},
			{Name: "RESERVE_RED", Category: entities.Premium, RevenueCoeff: 30, SaturationCoeff: 2, VariableCost: 8, ActivationCost: 25},
		},
		Resources: []entities.Resource{
			{Name: "GRAPES_KG", Capacity: 40},
			{Name: "BOTTLING_HRS", Capacity: 12},
		},
		Consumption: [][]float64{
			{1, 1.5, 3},
			{0.5, 0.5, 1},
		},
		BigM: 50,
	}
}

func TestBuildModel_CopiesScenario(t *testing.T) {
	scenario := mixedScenario()

	m, err := BuildModel(scenario)
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}

	if m.NumProducts != 3 {
		t.Errorf("Expected 3 products, got %d", m.NumProducts)
	}
	if m.NumPremium != 1 {
		t.Errorf("Expected 1 premium product, got %d", m.NumPremium)
	}
	if m.NumStandard() != 2 {
		t.Errorf("Expected 2 standard products, got %d", m.NumStandard())
	}
	if m.NumResources() != 2 {
		t.Errorf("Expected 2 resources, got %d", m.NumResources())
	}
	if m.Revenue[2] != 30 || m.UnitCost[2] != 8 {
		t.Errorf("Unexpected premium coefficients: revenue %g, cost %g", m.Revenue[2], m.UnitCost[2])
	}
	if len(m.Activation) != 1 || m.Activation[0] != 25 {
		t.Errorf("Unexpected activation costs: %v", m.Activation)
	}
	if got := m.Consumption.At(1, 2); got != 1 {
		t.Errorf("Expected consumption rate 1 at (1,2), got %g", got)
	}

	// mutating the model must not touch the scenario
	m.Revenue[0] = 999
	m.Consumption.Set(0, 0, 999)
	if scenario.Products[0].RevenueCoeff != 10 {
		t.Error("Model mutation leaked into scenario products")
	}
	if scenario.Consumption[0][0] != 1 {
		t.Error("Model mutation leaked into scenario consumption")
	}
}

func TestBuildModel_StructuralErrors(t *testing.T) {
	tests := []struct {
		name     string
		scenario *entities.Scenario
	}{
		{"nil scenario", nil},
		{"no products", &entities.Scenario{Name: "EMPTY"}},
		{
			"row count mismatch",
			&entities.Scenario{
				Name:        "BAD_ROWS",
				Products:    []entities.Product{{Name: "P", Category: entities.Standard}},
				Resources:   []entities.Resource{{Name: "R", Capacity: 1}},
				Consumption: nil,
			},
		},
		{
			"column count mismatch",
			&entities.Scenario{
				Name:        "BAD_COLS",
				Products:    []entities.Product{{Name: "P", Category: entities.Standard}},
				Resources:   []entities.Resource{{Name: "R", Capacity: 1}},
				Consumption: [][]float64{{1, 2}},
			},
		},
		{
			"standard after premium",
			&entities.Scenario{
				Name: "BAD_ORDER",
				Products: []entities.Product{
					{Name: "P1", Category: entities.Premium},
					{Name: "P2", Category: entities.Standard},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildModel(tt.scenario); err == nil {
				t.Errorf("Expected error for %s, but got none", tt.name)
			}
		})
	}
}

func TestModel_ObjectiveValue(t *testing.T) {
	m, err := BuildModel(singlePremiumScenario())
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}

	// 5 units: revenue 25, variable cost 5, activation 3
	got := m.ObjectiveValue([]int64{5}, []bool{true})
	if got != 17 {
		t.Errorf("Expected objective 17, got %g", got)
	}

	// producing nothing and activating anyway only pays the fixed cost
	got = m.ObjectiveValue([]int64{0}, []bool{true})
	if got != -3 {
		t.Errorf("Expected objective -3, got %g", got)
	}
}

func TestModel_Feasible(t *testing.T) {
	m, err := BuildModel(singlePremiumScenario())
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}

	tests := []struct {
		name string
		x    []int64
		y    []bool
		want bool
	}{
		{"zero plan", []int64{0}, []bool{false}, true},
		{"full capacity", []int64{5}, []bool{true}, true},
		{"over capacity", []int64{6}, []bool{true}, false},
		{"production without activation", []int64{3}, []bool{false}, false},
		{"negative quantity", []int64{-1}, []bool{false}, false},
		{"wrong arity", []int64{1, 2}, []bool{true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Feasible(tt.x, tt.y); got != tt.want {
				t.Errorf("Feasible(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestModel_UpperBounds(t *testing.T) {
	tests := []struct {
		name     string
		scenario *entities.Scenario
		want     []int64
	}{
		{
			"resource quotient",
			singleStandardScenario(),
			[]int64{1000},
		},
		{
			"big-M tighter than capacity",
			func() *entities.Scenario {
				s := singlePremiumScenario()
				s.BigM = 3
				return s
			}(),
			[]int64{3},
		},
		{
			"zero big-M closes premium",
			func() *entities.Scenario {
				s := singlePremiumScenario()
				s.BigM = 0
				return s
			}(),
			[]int64{0},
		},
		{
			"concave vertex bounds an unconsumed product",
			&entities.Scenario{
				Name: "FREE",
				Products: []entities.Product{
					{Name: "P", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
				},
				Resources:   nil,
				Consumption: nil,
			},
			[]int64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := BuildModel(tt.scenario)
			if err != nil {
				t.Fatalf("Failed to build model: %v", err)
			}
			ub, unbounded := m.upperBounds()
			if unbounded >= 0 {
				t.Fatalf("Expected bounded model, got unbounded product %d", unbounded)
			}
			for i, want := range tt.want {
				if ub[i] != want {
					t.Errorf("Bound for product %d = %d, want %d", i, ub[i], want)
				}
			}
		})
	}
}

func TestModel_UpperBounds_Unbounded(t *testing.T) {
	scenario := &entities.Scenario{
		Name: "RUNAWAY",
		Products: []entities.Product{
			{Name: "P", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 0, VariableCost: 2},
		},
	}

	m, err := BuildModel(scenario)
	if err != nil {
		t.Fatalf("Failed to build model: %v", err)
	}
	if _, unbounded := m.upperBounds(); unbounded != 0 {
		t.Errorf("Expected product 0 to be unbounded, got %d", unbounded)
	}
}
