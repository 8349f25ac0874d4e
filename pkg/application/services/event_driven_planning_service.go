package services

import (
	"context"
	"fmt"

	"github.com/vsinha/mixplan/pkg/application/dto"
	"github.com/vsinha/mixplan/pkg/domain/entities"
	"github.com/vsinha/mixplan/pkg/infrastructure/events"
)

// EventDrivenPlanningService wraps PlanningService and publishes the
// run's lifecycle to an event store, one stream per scenario. Event
// publication is best effort: a failing store never fails the plan.
type EventDrivenPlanningService struct {
	planningService *PlanningService
	eventStore      events.EventStore
}

// NewEventDrivenPlanningService creates an event-driven planning service
// with default configuration
func NewEventDrivenPlanningService(eventStore events.EventStore) *EventDrivenPlanningService {
	return &EventDrivenPlanningService{
		planningService: NewPlanningService(),
		eventStore:      eventStore,
	}
}

// NewEventDrivenPlanningServiceWithConfig creates an event-driven planning
// service with custom configuration
func NewEventDrivenPlanningServiceWithConfig(
	config PlanningConfig,
	eventStore events.EventStore,
) *EventDrivenPlanningService {
	return &EventDrivenPlanningService{
		planningService: NewPlanningServiceWithConfig(config),
		eventStore:      eventStore,
	}
}

// Plan runs the planning pipeline and records its progress as events.
// A successful run leaves solve.started, scenario.validated,
// model.built, solve.completed and report.built on the scenario's
// stream; a failed run leaves solve.started and solve.failed.
func (s *EventDrivenPlanningService) Plan(ctx context.Context, scenario *entities.Scenario) (*dto.Report, error) {
	streamID := ""
	if scenario != nil {
		streamID = scenario.Name
	}

	s.publish(streamID, events.NewSolveStartedEvent(streamID, s.planningService.BackendNames()))

	report, err := s.planningService.Plan(ctx, scenario)
	if err != nil {
		s.publish(streamID, events.NewSolveFailedEvent(streamID, err.Error()))
		return nil, err
	}

	s.publish(streamID, events.NewScenarioValidatedEvent(scenario))
	s.publish(streamID, events.NewModelBuiltEvent(
		scenario.Name,
		len(scenario.Products),
		scenario.PremiumCount(),
		len(scenario.Resources),
	))
	s.publish(streamID, events.NewSolveCompletedEvent(
		scenario.Name,
		report.Backend,
		report.Status,
		report.Objective,
		report.SolveTime,
	))
	s.publish(streamID, events.NewReportBuiltEvent(
		scenario.Name,
		report.RunID.String(),
		report.Status,
		report.Breakdown.NetProfit.String(),
	))

	return report, nil
}

func (s *EventDrivenPlanningService) publish(streamID string, event events.Event) {
	if err := s.eventStore.AppendEvent(streamID, event); err != nil {
		fmt.Printf("Warning: failed to publish %s event: %v\n", event.Type(), err)
	}
}
