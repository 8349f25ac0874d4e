package entities

import "github.com/shopspring/decimal"

// ProductProfit holds the audited per-product figures, recomputed from
// the rounded integral quantity rather than taken from the solver
type ProductProfit struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int64           `json:"quantity"`
	Activated    bool            `json:"activated,omitempty"`
	Revenue      decimal.Decimal `json:"revenue"`
	VariableCost decimal.Decimal `json:"variable_cost"`
	Net          decimal.Decimal `json:"net"`
}

// ResourceUsage holds the audited per-resource figures.
// UtilizationPct is Used/Capacity*100 for positive capacities and
// exactly 0 for zero-capacity resources.
type ResourceUsage struct {
	Name           string          `json:"name"`
	Capacity       float64         `json:"capacity"`
	Used           decimal.Decimal `json:"used"`
	Remaining      decimal.Decimal `json:"remaining"`
	UtilizationPct float64         `json:"utilization_pct"`
}

// Breakdown is the complete audited profit and resource picture for
// one production plan. Every figure is recomputed from the rounded
// integer quantities so the report is internally self-consistent.
type Breakdown struct {
	Products          []ProductProfit `json:"products"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalVariableCost decimal.Decimal `json:"total_variable_cost"`
	TotalFixedCost    decimal.Decimal `json:"total_fixed_cost"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	Resources         []ResourceUsage `json:"resources"`
}
