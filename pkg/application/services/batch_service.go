package services

import (
	"context"
	"sync"

	"github.com/vsinha/mixplan/pkg/application/dto"
	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// BatchResult pairs one scenario with the outcome of its solve.
// Exactly one of Report and Err is set.
type BatchResult struct {
	Scenario string
	Report   *dto.Report
	Err      error
}

// BatchService plans many scenarios concurrently through a bounded
// worker pool. Solves are fully independent; one scenario failing
// never disturbs the others.
type BatchService struct {
	planner *PlanningService
	workers int
}

// NewBatchService creates a batch service running at most workers
// solves at a time
func NewBatchService(planner *PlanningService, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{
		planner: planner,
		workers: workers,
	}
}

// PlanAll solves every scenario and returns one result per input, in
// input order regardless of which solve finishes first.
func (s *BatchService) PlanAll(ctx context.Context, scenarios []*entities.Scenario) []BatchResult {
	results := make([]BatchResult, len(scenarios))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, scenario := range scenarios {
		wg.Add(1)
		go func(i int, scenario *entities.Scenario) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			name := ""
			if scenario != nil {
				name = scenario.Name
			}
			report, err := s.planner.Plan(ctx, scenario)
			results[i] = BatchResult{Scenario: name, Report: report, Err: err}
		}(i, scenario)
	}

	wg.Wait()
	return results
}
