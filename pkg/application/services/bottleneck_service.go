package services

import (
	"sort"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// bindingThresholdPct treats a resource as binding once its audited
// utilization reaches 100%, with a hair of slack for float division
const bindingThresholdPct = 100.0 - 1e-9

// maxTopConsumers caps how many products are attributed per resource
const maxTopConsumers = 3

// BottleneckService ranks the resources of a finished plan by how
// contended they are. Binding resources are the ones limiting profit;
// raising their capacity is the first lever worth pricing.
type BottleneckService struct{}

// NewBottleneckService creates a new bottleneck service
func NewBottleneckService() *BottleneckService {
	return &BottleneckService{}
}

// Analyze returns one entry per resource, ordered most contended
// first. Each entry carries the utilization from the audited
// breakdown, a binding flag, and the heaviest consumers of that
// resource under the plan.
func (s *BottleneckService) Analyze(scenario *entities.Scenario, breakdown *entities.Breakdown) []entities.Bottleneck {
	if scenario == nil || breakdown == nil || len(breakdown.Resources) == 0 {
		return nil
	}

	bottlenecks := make([]entities.Bottleneck, 0, len(breakdown.Resources))
	for k, usage := range breakdown.Resources {
		bottlenecks = append(bottlenecks, entities.Bottleneck{
			Resource:       usage.Name,
			UtilizationPct: usage.UtilizationPct,
			Binding:        usage.UtilizationPct >= bindingThresholdPct,
			TopConsumers:   s.topConsumers(scenario, breakdown, k),
		})
	}

	sort.SliceStable(bottlenecks, func(i, j int) bool {
		return bottlenecks[i].UtilizationPct > bottlenecks[j].UtilizationPct
	})
	return bottlenecks
}

// topConsumers attributes resource k's usage to the products drawing
// on it, largest draw first. Products that consume nothing or produce
// nothing are skipped.
func (s *BottleneckService) topConsumers(scenario *entities.Scenario, breakdown *entities.Breakdown, k int) []entities.ConsumerShare {
	used, _ := breakdown.Resources[k].Used.Float64()
	if used <= 0 {
		return nil
	}

	var shares []entities.ConsumerShare
	for i, p := range breakdown.Products {
		rate := scenario.Consumption[k][i]
		if rate <= 0 || p.Quantity <= 0 {
			continue
		}
		draw := rate * float64(p.Quantity)
		shares = append(shares, entities.ConsumerShare{
			Product:  p.Name,
			Quantity: p.Quantity,
			Usage:    draw,
			SharePct: draw / used * 100,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Usage > shares[j].Usage
	})
	if len(shares) > maxTopConsumers {
		shares = shares[:maxTopConsumers]
	}
	return shares
}
