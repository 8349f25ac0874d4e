package services

import (
	"context"
	"strings"
	"testing"

	"github.com/vsinha/mixplan/pkg/infrastructure/events"
	testhelpers "github.com/vsinha/mixplan/pkg/infrastructure/testing"
	"github.com/vsinha/mixplan/pkg/solver"
)

func TestEventDrivenPlanningService_PublishesLifecycle(t *testing.T) {
	store := events.NewInMemoryEventStore()
	service := NewEventDrivenPlanningService(store)

	report, err := service.Plan(context.Background(), testhelpers.BuildPremiumScenario())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	stream, err := store.ReadEvents("PREMIUM", 1)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}

	expectedTypes := []string{
		events.SolveStartedEvent,
		events.ScenarioValidatedEvent,
		events.ModelBuiltEvent,
		events.SolveCompletedEvent,
		events.ReportBuiltEvent,
	}
	if len(stream) != len(expectedTypes) {
		t.Fatalf("Expected %d events, got %d", len(expectedTypes), len(stream))
	}
	for i, want := range expectedTypes {
		if stream[i].Type() != want {
			t.Errorf("Event %d: expected %s, got %s", i, want, stream[i].Type())
		}
		if stream[i].Version() != i+1 {
			t.Errorf("Event %d: expected version %d, got %d", i, i+1, stream[i].Version())
		}
	}

	started := stream[0].Data().(events.SolveStarted)
	if len(started.Backends) != 2 || started.Backends[0] != solver.BranchBoundName {
		t.Errorf("Unexpected backends %v", started.Backends)
	}

	completed := stream[3].Data().(events.SolveCompleted)
	if completed.Backend != solver.BranchBoundName || completed.Status != "Optimal" || completed.Objective != 17 {
		t.Errorf("Unexpected completion payload %+v", completed)
	}

	built := stream[4].Data().(events.ReportBuilt)
	if built.RunID != report.RunID.String() {
		t.Errorf("Expected run ID %s, got %s", report.RunID, built.RunID)
	}
	if built.NetProfit != "17" {
		t.Errorf("Expected net profit 17, got %s", built.NetProfit)
	}
}

func TestEventDrivenPlanningService_PublishesFailure(t *testing.T) {
	store := events.NewInMemoryEventStore()
	service := NewEventDrivenPlanningServiceWithConfig(PlanningConfig{
		Backends: []solver.Backend{
			&solver.StubBackend{BackendName: "first", Unavailable: true},
		},
	}, store)

	_, err := service.Plan(context.Background(), testhelpers.BuildPremiumScenario())
	if err == nil {
		t.Fatal("Expected the plan to fail")
	}

	stream, readErr := store.ReadEvents("PREMIUM", 1)
	if readErr != nil {
		t.Fatalf("Failed to read events: %v", readErr)
	}
	if len(stream) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(stream))
	}
	if stream[0].Type() != events.SolveStartedEvent || stream[1].Type() != events.SolveFailedEvent {
		t.Errorf("Unexpected event types %s, %s", stream[0].Type(), stream[1].Type())
	}

	failed := stream[1].Data().(events.SolveFailed)
	if !strings.Contains(failed.Reason, "no solver available") {
		t.Errorf("Expected the reason to carry the solver error, got %q", failed.Reason)
	}
}

func TestEventDrivenPlanningService_ValidationFailure(t *testing.T) {
	store := events.NewInMemoryEventStore()
	service := NewEventDrivenPlanningService(store)
	scenario := testhelpers.BuildPremiumScenario()
	scenario.Products[0].RevenueCoeff = -1

	_, err := service.Plan(context.Background(), scenario)
	if err == nil {
		t.Fatal("Expected the plan to fail")
	}

	stream, _ := store.ReadEvents("PREMIUM", 1)
	if len(stream) != 2 || stream[1].Type() != events.SolveFailedEvent {
		t.Fatalf("Expected a failure event, got %d events", len(stream))
	}
	failed := stream[1].Data().(events.SolveFailed)
	if !strings.Contains(failed.Reason, "revenue_coeff") {
		t.Errorf("Expected the offending field in the reason, got %q", failed.Reason)
	}
}
