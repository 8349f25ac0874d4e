package yaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

const vineyardYAML = `name: HARVEST_2025
currency: AMD
big_m: 100
products:
  - name: TABLE_WHITE
    category: standard
    revenue_coeff: 10
    saturation_coeff: 1
    variable_cost: 2
  - name: TABLE_RED
    category: standard
    revenue_coeff: 12
    saturation_coeff: 1
    variable_cost: 3
  - name: RESERVE_RED
    category: premium
    revenue_coeff: 30
    saturation_coeff: 2
    variable_cost: 8
    activation_cost: 25
resources:
  - name: GRAPES_KG
    capacity: 40
  - name: BOTTLING_HRS
    capacity: 12
consumption:
  GRAPES_KG:
    TABLE_WHITE: 1
    TABLE_RED: 1.5
    RESERVE_RED: 3
  BOTTLING_HRS:
    TABLE_WHITE: 0.5
    TABLE_RED: 0.5
    RESERVE_RED: 1
`

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeYAML(t, vineyardYAML)

	scenario, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	if scenario.Name != "HARVEST_2025" || scenario.Currency != "AMD" {
		t.Errorf("Unexpected scenario header: %s / %s", scenario.Name, scenario.Currency)
	}
	if scenario.BigM != 100 {
		t.Errorf("Expected big-M 100, got %g", scenario.BigM)
	}
	if len(scenario.Products) != 3 || len(scenario.Resources) != 2 {
		t.Fatalf("Expected 3 products and 2 resources, got %d and %d",
			len(scenario.Products), len(scenario.Resources))
	}
	if scenario.Products[2].Category != entities.Premium || scenario.Products[2].ActivationCost != 25 {
		t.Errorf("Unexpected premium product: %+v", scenario.Products[2])
	}
	if scenario.Consumption[0][1] != 1.5 {
		t.Errorf("Expected GRAPES_KG rate 1.5 for TABLE_RED, got %g", scenario.Consumption[0][1])
	}
	if scenario.Consumption[1][2] != 1 {
		t.Errorf("Expected BOTTLING_HRS rate 1 for RESERVE_RED, got %g", scenario.Consumption[1][2])
	}
}

func TestLoader_Load_SparseConsumption(t *testing.T) {
	doc := `name: SPARSE
products:
  - name: A
    category: standard
    revenue_coeff: 5
    saturation_coeff: 1
    variable_cost: 1
  - name: B
    category: standard
    revenue_coeff: 5
    saturation_coeff: 1
    variable_cost: 1
resources:
  - name: R
    capacity: 10
consumption:
  R:
    A: 2
`
	scenario, err := NewLoader().Load(writeYAML(t, doc))
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	if scenario.Consumption[0][0] != 2 {
		t.Errorf("Expected rate 2 for A, got %g", scenario.Consumption[0][0])
	}
	// B never consumes R, so its rate defaults to zero
	if scenario.Consumption[0][1] != 0 {
		t.Errorf("Expected rate 0 for B, got %g", scenario.Consumption[0][1])
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		expectError string
	}{
		{
			"invalid category",
			"name: S\nproducts:\n  - name: A\n    category: reserve\n",
			"invalid category: reserve",
		},
		{
			"unknown resource in consumption",
			"name: S\nproducts:\n  - name: A\n    category: standard\nresources:\n  - name: R\n    capacity: 1\nconsumption:\n  CELLAR:\n    A: 1\n",
			"unknown resource \"CELLAR\"",
		},
		{
			"unknown product in consumption",
			"name: S\nproducts:\n  - name: A\n    category: standard\nresources:\n  - name: R\n    capacity: 1\nconsumption:\n  R:\n    B: 1\n",
			"unknown product \"B\"",
		},
		{
			"no products",
			"name: S\n",
			"at least one product",
		},
		{
			"malformed yaml",
			"name: [unclosed\n",
			"failed to parse scenario YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Load(writeYAML(t, tt.doc))
			if err == nil {
				t.Fatal("Expected error, but got none")
			}
			if !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("Expected error to contain %q, got: %v", tt.expectError, err)
			}
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file, but got none")
	}
	if !strings.Contains(err.Error(), "failed to open scenario file") {
		t.Errorf("Expected error to name the missing file, got: %v", err)
	}
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	loader := NewLoader()
	original, err := loader.Load(writeYAML(t, vineyardYAML))
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := loader.Save(original, path); err != nil {
		t.Fatalf("Failed to save scenario: %v", err)
	}

	reloaded, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Failed to reload saved scenario: %v", err)
	}

	if reloaded.Name != original.Name || reloaded.Currency != original.Currency || reloaded.BigM != original.BigM {
		t.Errorf("Scenario header changed across save/load: %+v", reloaded)
	}
	if len(reloaded.Products) != len(original.Products) {
		t.Fatalf("Product count changed: %d to %d", len(original.Products), len(reloaded.Products))
	}
	for i := range original.Products {
		if reloaded.Products[i] != original.Products[i] {
			t.Errorf("Product %d changed across save/load: %+v to %+v",
				i, original.Products[i], reloaded.Products[i])
		}
	}
	for k := range original.Consumption {
		for i := range original.Consumption[k] {
			if reloaded.Consumption[k][i] != original.Consumption[k][i] {
				t.Errorf("Consumption[%d][%d] changed: %g to %g",
					k, i, original.Consumption[k][i], reloaded.Consumption[k][i])
			}
		}
	}
}

func TestLoader_Save_NilScenario(t *testing.T) {
	err := NewLoader().Save(nil, filepath.Join(t.TempDir(), "out.yaml"))
	if err == nil {
		t.Fatal("Expected error for nil scenario, but got none")
	}
}
