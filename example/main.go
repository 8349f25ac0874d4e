package main

import (
	"context"
	"fmt"

	"github.com/vsinha/mixplan/pkg/application/services"
	"github.com/vsinha/mixplan/pkg/domain/entities"
)

func main() {
	ctx := context.Background()

	// Set up a small winery: two everyday wines and one premium
	// reserve that pays a one-time activation cost if bottled at all
	products := []entities.Product{
		{Name: "TABLE_WHITE", Category: entities.Standard, RevenueCoeff: 12, SaturationCoeff: 0.5, VariableCost: 4},
		{Name: "TABLE_RED", Category: entities.Standard, RevenueCoeff: 10, SaturationCoeff: 1, VariableCost: 2},
		{Name: "RESERVE_RED", Category: entities.Premium, RevenueCoeff: 30, SaturationCoeff: 2, VariableCost: 6, ActivationCost: 25},
	}
	resources := []entities.Resource{
		{Name: "GRAPES_KG", Capacity: 40},
		{Name: "BOTTLING_HRS", Capacity: 12},
	}
	consumption := [][]float64{
		{1, 1.5, 3},   // kg of grapes per case
		{0.5, 0.5, 1}, // bottling hours per case
	}

	scenario, err := entities.NewScenario("VINEYARD", "USD", products, resources, consumption, 50)
	if err != nil {
		fmt.Printf("❌ Bad scenario: %v\n", err)
		return
	}

	fmt.Println("🍷 Planning the vineyard's production mix...")
	fmt.Printf("Products: %d (%d premium), Resources: %d\n\n",
		len(scenario.Products), scenario.PremiumCount(), len(scenario.Resources))

	planner := services.NewPlanningService()
	report, err := planner.Plan(ctx, scenario)
	if err != nil {
		fmt.Printf("❌ Planning failed: %v\n", err)
		return
	}

	fmt.Println("📊 Production Plan:")
	for _, p := range report.Breakdown.Products {
		note := ""
		if p.Category == "Premium" {
			if p.Activated {
				note = " (activated)"
			} else {
				note = " (not activated)"
			}
		}
		fmt.Printf("  %s: %d cases%s | revenue %s, net %s\n",
			p.Name, p.Quantity, note, p.Revenue, p.Net)
	}
	fmt.Println()

	fmt.Println("📦 Resource Utilization:")
	for _, r := range report.Breakdown.Resources {
		fmt.Printf("  %s: %s of %g used (%.1f%%)\n",
			r.Name, r.Used, r.Capacity, r.UtilizationPct)
	}
	fmt.Println()

	fmt.Printf("💰 Net profit: %s %s (revenue %s - variable %s - fixed %s)\n",
		report.Breakdown.NetProfit, report.Currency,
		report.Breakdown.TotalRevenue,
		report.Breakdown.TotalVariableCost,
		report.Breakdown.TotalFixedCost)
	fmt.Printf("🎯 Solved by %s in %v (status %s)\n",
		report.Backend, report.SolveTime, report.Status)

	if !report.Discrepancy.IsZero() {
		fmt.Printf("⚠️  Audited profit differs from the solver objective by %s\n", report.Discrepancy)
	}
	for _, bn := range report.Bottlenecks {
		if bn.Binding {
			fmt.Printf("🔍 %s is a binding bottleneck; more capacity there raises profit\n", bn.Resource)
		}
	}
}
