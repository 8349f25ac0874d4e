package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mixplan/pkg/infrastructure/events"
	testhelpers "github.com/vsinha/mixplan/pkg/infrastructure/testing"
	"github.com/vsinha/mixplan/pkg/solver"
)

// The vineyard scenario's unconstrained optimum happens to fit the
// capacities exactly: 8 white, 4 red, 6 reserve uses all 12 bottling
// hours and 32 of 40 kg of grapes, for a net profit of 95.
func TestPlanningIntegration_VineyardScenario(t *testing.T) {
	ctx := context.Background()
	service := NewPlanningService()

	report, err := service.Plan(ctx, testhelpers.BuildVineyardScenario())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	t.Logf("Planning Results Summary:")
	t.Logf("  Backend: %s", report.Backend)
	t.Logf("  Status: %s", report.Status)
	t.Logf("  Net Profit: %s %s", report.Breakdown.NetProfit, report.Currency)
	t.Logf("  Units: %d", report.Plan.TotalUnits())
	t.Logf("  Solve Time: %s", report.SolveTime)

	if report.Backend != solver.BranchBoundName {
		t.Errorf("Expected backend %s, got %s", solver.BranchBoundName, report.Backend)
	}
	if report.Status != "Optimal" {
		t.Errorf("Expected status Optimal, got %s", report.Status)
	}

	expectedQty := []int64{8, 4, 6}
	for i, want := range expectedQty {
		if report.Plan.Quantities[i] != want {
			t.Errorf("Product %d: expected %d units, got %d", i, want, report.Plan.Quantities[i])
		}
	}
	if len(report.Plan.Activations) != 1 || !report.Plan.Activations[0] {
		t.Errorf("Expected the reserve wine activated, got %v", report.Plan.Activations)
	}

	if !report.Breakdown.TotalRevenue.Equal(decimal.NewFromInt(196)) {
		t.Errorf("Expected revenue 196, got %s", report.Breakdown.TotalRevenue)
	}
	if !report.Breakdown.TotalVariableCost.Equal(decimal.NewFromInt(76)) {
		t.Errorf("Expected variable cost 76, got %s", report.Breakdown.TotalVariableCost)
	}
	if !report.Breakdown.TotalFixedCost.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected fixed cost 25, got %s", report.Breakdown.TotalFixedCost)
	}
	if !report.Breakdown.NetProfit.Equal(decimal.NewFromInt(95)) {
		t.Errorf("Expected net profit 95, got %s", report.Breakdown.NetProfit)
	}
	if !report.Discrepancy.IsZero() {
		t.Errorf("Expected zero discrepancy, got %s", report.Discrepancy)
	}
	if len(report.Violations) != 0 {
		t.Errorf("Expected no violations, got %v", report.Violations)
	}

	if len(report.Bottlenecks) != 2 {
		t.Fatalf("Expected 2 bottleneck entries, got %d", len(report.Bottlenecks))
	}
	bottling := report.Bottlenecks[0]
	if bottling.Resource != "BOTTLING_HRS" || !bottling.Binding || bottling.UtilizationPct != 100 {
		t.Errorf("Expected bottling hours binding at 100%%, got %+v", bottling)
	}
	grapes := report.Bottlenecks[1]
	if grapes.Resource != "GRAPES_KG" || grapes.Binding || grapes.UtilizationPct != 80 {
		t.Errorf("Expected grapes at 80%%, got %+v", grapes)
	}
	if bottling.TopConsumers[0].Product != "RESERVE_RED" || bottling.TopConsumers[0].Usage != 6 {
		t.Errorf("Expected the reserve wine to dominate bottling, got %+v", bottling.TopConsumers)
	}
}

func TestPlanningIntegration_EventDrivenVineyard(t *testing.T) {
	ctx := context.Background()
	store := events.NewInMemoryEventStore()
	service := NewEventDrivenPlanningService(store)

	report, err := service.Plan(ctx, testhelpers.BuildVineyardScenario())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !report.Breakdown.NetProfit.Equal(decimal.NewFromInt(95)) {
		t.Errorf("Expected net profit 95, got %s", report.Breakdown.NetProfit)
	}

	stream, err := store.ReadEvents("VINEYARD", 1)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}
	if len(stream) != 5 {
		t.Fatalf("Expected 5 lifecycle events, got %d", len(stream))
	}
	if stream[len(stream)-1].Type() != events.ReportBuiltEvent {
		t.Errorf("Expected the stream to end with %s, got %s",
			events.ReportBuiltEvent, stream[len(stream)-1].Type())
	}
}

func TestPlanningIntegration_RepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.BuildScenarioRepository()
	service := NewPlanningService()

	scenarios, err := repo.GetAllScenarios()
	if err != nil {
		t.Fatalf("Failed to list scenarios: %v", err)
	}
	if len(scenarios) != 4 {
		t.Fatalf("Expected 4 scenarios, got %d", len(scenarios))
	}

	for _, scenario := range scenarios {
		report, err := service.Plan(ctx, scenario)
		if err != nil {
			t.Errorf("Scenario %s failed: %v", scenario.Name, err)
			continue
		}
		t.Logf("  %s: %s net profit %s", scenario.Name, report.Status, report.Breakdown.NetProfit)
		if report.Scenario != scenario.Name {
			t.Errorf("Report names %s for scenario %s", report.Scenario, scenario.Name)
		}
	}
}
