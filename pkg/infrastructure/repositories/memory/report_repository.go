package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/mixplan/pkg/application/dto"
)

// ReportRepository keeps generated reports in memory, keyed by run ID.
// Batch runs write from multiple goroutines, so access is locked.
type ReportRepository struct {
	reports []dto.Report
	byRunID map[uuid.UUID]int
	mutex   sync.RWMutex
}

// NewReportRepository creates a new in-memory report repository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		reports: make([]dto.Report, 0),
		byRunID: make(map[uuid.UUID]int),
	}
}

// SaveReport stores a report under its run ID
func (r *ReportRepository) SaveReport(report *dto.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byRunID[report.RunID]; exists {
		return fmt.Errorf("duplicate run ID: %s", report.RunID)
	}
	r.byRunID[report.RunID] = len(r.reports)
	r.reports = append(r.reports, *report)
	return nil
}

// GetReport returns the report for a run ID
func (r *ReportRepository) GetReport(runID uuid.UUID) (*dto.Report, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	index, exists := r.byRunID[runID]
	if !exists {
		return nil, fmt.Errorf("report not found: %s", runID)
	}
	report := r.reports[index]
	return &report, nil
}

// GetReportsForScenario returns every stored report for a scenario
func (r *ReportRepository) GetReportsForScenario(scenario string) ([]*dto.Report, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var reports []*dto.Report
	for i := range r.reports {
		if r.reports[i].Scenario == scenario {
			report := r.reports[i]
			reports = append(reports, &report)
		}
	}
	return reports, nil
}
