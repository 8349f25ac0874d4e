package events

import (
	"time"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

const (
	ScenarioValidatedEvent = "scenario.validated"
	ModelBuiltEvent        = "model.built"
	SolveStartedEvent      = "solve.started"
	SolveCompletedEvent    = "solve.completed"
	SolveFailedEvent       = "solve.failed"
	ReportBuiltEvent       = "report.built"
)

type ScenarioValidated struct {
	Scenario  string `json:"scenario"`
	Products  int    `json:"products"`
	Resources int    `json:"resources"`
}

type ModelBuilt struct {
	Scenario  string `json:"scenario"`
	Products  int    `json:"products"`
	Premium   int    `json:"premium"`
	Resources int    `json:"resources"`
}

type SolveStarted struct {
	Scenario string   `json:"scenario"`
	Backends []string `json:"backends"`
}

type SolveCompleted struct {
	Scenario  string        `json:"scenario"`
	Backend   string        `json:"backend"`
	Status    string        `json:"status"`
	Objective float64       `json:"objective"`
	Runtime   time.Duration `json:"runtime_ns"`
}

type SolveFailed struct {
	Scenario string `json:"scenario"`
	Reason   string `json:"reason"`
}

type ReportBuilt struct {
	Scenario  string `json:"scenario"`
	RunID     string `json:"run_id"`
	Status    string `json:"status"`
	NetProfit string `json:"net_profit"`
}

func NewScenarioValidatedEvent(scenario *entities.Scenario) Event {
	return NewEvent(ScenarioValidatedEvent, scenario.Name, ScenarioValidated{
		Scenario:  scenario.Name,
		Products:  len(scenario.Products),
		Resources: len(scenario.Resources),
	})
}

func NewModelBuiltEvent(scenario string, products, premium, resources int) Event {
	return NewEvent(ModelBuiltEvent, scenario, ModelBuilt{
		Scenario:  scenario,
		Products:  products,
		Premium:   premium,
		Resources: resources,
	})
}

func NewSolveStartedEvent(scenario string, backends []string) Event {
	return NewEvent(SolveStartedEvent, scenario, SolveStarted{
		Scenario: scenario,
		Backends: backends,
	})
}

func NewSolveCompletedEvent(scenario, backend, status string, objective float64, runtime time.Duration) Event {
	return NewEvent(SolveCompletedEvent, scenario, SolveCompleted{
		Scenario:  scenario,
		Backend:   backend,
		Status:    status,
		Objective: objective,
		Runtime:   runtime,
	})
}

func NewSolveFailedEvent(scenario, reason string) Event {
	return NewEvent(SolveFailedEvent, scenario, SolveFailed{
		Scenario: scenario,
		Reason:   reason,
	})
}

func NewReportBuiltEvent(scenario, runID, status, netProfit string) Event {
	return NewEvent(ReportBuiltEvent, scenario, ReportBuilt{
		Scenario:  scenario,
		RunID:     runID,
		Status:    status,
		NetProfit: netProfit,
	})
}
