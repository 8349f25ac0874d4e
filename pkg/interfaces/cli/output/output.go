package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsinha/mixplan/pkg/application/dto"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

// Generate creates output in the specified format
func Generate(report *dto.Report, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	case "html":
		return generateHTMLOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.Report, config Config) error {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Production Plan Summary\n")
	fmt.Fprintf(&b, "==========================\n\n")

	fmt.Fprintf(&b, "Scenario: %s\n", report.Scenario)
	fmt.Fprintf(&b, "Status: %s (%s)\n", report.Status, report.Backend)
	fmt.Fprintf(&b, "Solve Time: %v\n", report.SolveTime)
	fmt.Fprintf(&b, "Net Profit: %s %s\n\n", report.Breakdown.NetProfit, report.Currency)

	if len(report.Breakdown.Products) > 0 {
		fmt.Fprintf(&b, "📋 Production Plan:\n")
		fmt.Fprintf(&b, "%-15s %-10s %-8s %-10s %-12s %-12s %-12s\n",
			"Product", "Category", "Qty", "Activated", "Revenue", "Var Cost", "Net")
		fmt.Fprintf(&b, "%-15s %-10s %-8s %-10s %-12s %-12s %-12s\n",
			"---------------", "----------", "--------", "----------", "------------", "------------", "------------")

		for _, p := range report.Breakdown.Products {
			activated := ""
			if p.Category == "Premium" {
				activated = strconv.FormatBool(p.Activated)
			}
			fmt.Fprintf(&b, "%-15s %-10s %-8d %-10s %-12s %-12s %-12s\n",
				p.Name,
				p.Category,
				p.Quantity,
				activated,
				p.Revenue,
				p.VariableCost,
				p.Net)
		}
		fmt.Fprintln(&b)

		fmt.Fprintf(&b, "Total Revenue: %s\n", report.Breakdown.TotalRevenue)
		fmt.Fprintf(&b, "Total Variable Cost: %s\n", report.Breakdown.TotalVariableCost)
		fmt.Fprintf(&b, "Total Fixed Cost: %s\n\n", report.Breakdown.TotalFixedCost)
	}

	if len(report.Breakdown.Resources) > 0 {
		fmt.Fprintf(&b, "📦 Resource Utilization:\n")
		fmt.Fprintf(&b, "%-15s %-10s %-10s %-10s %s\n",
			"Resource", "Capacity", "Used", "Remaining", "Utilization")
		fmt.Fprintf(&b, "%-15s %-10s %-10s %-10s %s\n",
			"---------------", "----------", "----------", "----------", "-----------")

		for _, r := range report.Breakdown.Resources {
			fmt.Fprintf(&b, "%-15s %-10g %-10s %-10s %s %5.1f%%\n",
				r.Name,
				r.Capacity,
				r.Used,
				r.Remaining,
				utilizationBar(r.UtilizationPct),
				r.UtilizationPct)
		}
		fmt.Fprintln(&b)
	}

	var binding []string
	for _, bn := range report.Bottlenecks {
		if bn.Binding {
			binding = append(binding, bn.Resource)
		}
	}
	if len(binding) > 0 {
		fmt.Fprintf(&b, "🔍 Binding resources: %s\n\n", strings.Join(binding, ", "))
	}

	if len(report.Violations) > 0 {
		fmt.Fprintf(&b, "⚠️  Constraint Violations:\n")
		for _, v := range report.Violations {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
		fmt.Fprintln(&b)
	}

	if !report.Discrepancy.IsZero() {
		fmt.Fprintf(&b, "⚠️  Solver objective %g differs from the audited profit %s by %s\n\n",
			report.Objective, report.Breakdown.NetProfit, report.Discrepancy)
	}

	fmt.Print(b.String())

	// Save to file if output directory specified
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "plan_report.txt")
		if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("failed to write text file: %w", err)
		}
		if config.Verbose {
			fmt.Printf("💾 Results saved to: %s\n", filename)
		}
	}

	return nil
}

// utilizationBar renders utilization as a fixed-width bar, capped at
// full even when a violation pushes usage past capacity
func utilizationBar(pct float64) string {
	const width = 20
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.Report, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "plan_report.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}

	return nil
}

// generateCSVOutput creates one CSV file per report section
func generateCSVOutput(report *dto.Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	planFile := filepath.Join(config.OutputDir, "production_plan.csv")
	if err := writePlanCSV(report, planFile); err != nil {
		return fmt.Errorf("failed to write production plan CSV: %w", err)
	}

	usageFile := filepath.Join(config.OutputDir, "resource_usage.csv")
	if err := writeUsageCSV(report, usageFile); err != nil {
		return fmt.Errorf("failed to write resource usage CSV: %w", err)
	}

	bottleneckFile := filepath.Join(config.OutputDir, "bottlenecks.csv")
	if err := writeBottlenecksCSV(report, bottleneckFile); err != nil {
		return fmt.Errorf("failed to write bottlenecks CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Production Plan: %s\n", planFile)
		fmt.Printf("  Resource Usage: %s\n", usageFile)
		fmt.Printf("  Bottlenecks: %s\n", bottleneckFile)
	}

	return nil
}

func writePlanCSV(report *dto.Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"product", "category", "quantity", "activated", "revenue", "variable_cost", "net"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range report.Breakdown.Products {
		row := []string{
			p.Name,
			p.Category,
			strconv.FormatInt(p.Quantity, 10),
			strconv.FormatBool(p.Activated),
			p.Revenue.String(),
			p.VariableCost.String(),
			p.Net.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeUsageCSV(report *dto.Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"resource", "capacity", "used", "remaining", "utilization_pct"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range report.Breakdown.Resources {
		row := []string{
			r.Name,
			strconv.FormatFloat(r.Capacity, 'g', -1, 64),
			r.Used.String(),
			r.Remaining.String(),
			strconv.FormatFloat(r.UtilizationPct, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeBottlenecksCSV(report *dto.Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"resource", "utilization_pct", "binding", "top_consumer", "top_consumer_share_pct"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, bn := range report.Bottlenecks {
		topConsumer := ""
		topShare := ""
		if len(bn.TopConsumers) > 0 {
			topConsumer = bn.TopConsumers[0].Product
			topShare = strconv.FormatFloat(bn.TopConsumers[0].SharePct, 'f', 2, 64)
		}
		row := []string{
			bn.Resource,
			strconv.FormatFloat(bn.UtilizationPct, 'f', 2, 64),
			strconv.FormatBool(bn.Binding),
			topConsumer,
			topShare,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
