package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mixplan/pkg/domain/entities"
	testhelpers "github.com/vsinha/mixplan/pkg/infrastructure/testing"
)

func TestBatchService_ResultsInInputOrder(t *testing.T) {
	service := NewBatchService(NewPlanningService(), 2)

	invalid := testhelpers.BuildPremiumScenario()
	invalid.Name = "BROKEN"
	invalid.Products[0].VariableCost = -1

	scenarios := []*entities.Scenario{
		testhelpers.BuildSaturatingScenario(),
		testhelpers.BuildPremiumScenario(),
		invalid,
		testhelpers.BuildIdleScenario(),
	}

	results := service.PlanAll(context.Background(), scenarios)
	if len(results) != len(scenarios) {
		t.Fatalf("Expected %d results, got %d", len(scenarios), len(results))
	}

	expectedNames := []string{"SATURATION", "PREMIUM", "BROKEN", "IDLE"}
	for i, want := range expectedNames {
		if results[i].Scenario != want {
			t.Errorf("Result %d: expected scenario %s, got %s", i, want, results[i].Scenario)
		}
	}

	expectedProfit := []int64{16, 17, 0}
	for i, idx := range []int{0, 1, 3} {
		r := results[idx]
		if r.Err != nil {
			t.Errorf("Scenario %s failed: %v", r.Scenario, r.Err)
			continue
		}
		if !r.Report.Breakdown.NetProfit.Equal(decimal.NewFromInt(expectedProfit[i])) {
			t.Errorf("Scenario %s: expected net profit %d, got %s",
				r.Scenario, expectedProfit[i], r.Report.Breakdown.NetProfit)
		}
	}

	if results[2].Err == nil {
		t.Error("Expected the broken scenario to fail")
	}
	if results[2].Report != nil {
		t.Error("Expected no report for the broken scenario")
	}
}

func TestBatchService_ConcurrentSolves(t *testing.T) {
	service := NewBatchService(NewPlanningService(), 8)

	scenarios := make([]*entities.Scenario, 16)
	for i := range scenarios {
		s := testhelpers.BuildPremiumScenario()
		s.Name = fmt.Sprintf("PREMIUM_%02d", i)
		scenarios[i] = s
	}

	results := service.PlanAll(context.Background(), scenarios)
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("Scenario %d failed: %v", i, r.Err)
			continue
		}
		if r.Scenario != scenarios[i].Name {
			t.Errorf("Result %d: expected %s, got %s", i, scenarios[i].Name, r.Scenario)
		}
		if !r.Report.Breakdown.NetProfit.Equal(decimal.NewFromInt(17)) {
			t.Errorf("Scenario %d: expected net profit 17, got %s", i, r.Report.Breakdown.NetProfit)
		}
	}
}

func TestBatchService_NilScenario(t *testing.T) {
	service := NewBatchService(NewPlanningService(), 2)

	results := service.PlanAll(context.Background(), []*entities.Scenario{nil})
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Err == nil {
		t.Error("Expected a nil scenario to fail validation")
	}
	if results[0].Scenario != "" {
		t.Errorf("Expected an empty scenario name, got %s", results[0].Scenario)
	}
}

func TestBatchService_WorkerFloor(t *testing.T) {
	service := NewBatchService(NewPlanningService(), 0)

	results := service.PlanAll(context.Background(), []*entities.Scenario{
		testhelpers.BuildPremiumScenario(),
		testhelpers.BuildSaturatingScenario(),
	})
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("Scenario %s failed: %v", r.Scenario, r.Err)
		}
	}
}

func TestBatchService_EmptyInput(t *testing.T) {
	service := NewBatchService(NewPlanningService(), 4)

	results := service.PlanAll(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}
