package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// Conventional file names inside a scenario directory
const (
	ProductsFile    = "products.csv"
	ResourcesFile   = "resources.csv"
	ConsumptionFile = "consumption.csv"
	ScenarioFile    = "scenario.csv"
)

// ScenarioInfo carries the key/value settings from scenario.csv
type ScenarioInfo struct {
	Name     string
	Currency string
	BigM     float64
}

// Loader handles loading planning scenarios from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario reads the four conventional files from a scenario
// directory and assembles them into a scenario. Validation beyond
// shape and syntax is left to the scenario validator.
func (l *Loader) LoadScenario(dir string) (*entities.Scenario, error) {
	info, err := l.LoadScenarioInfo(filepath.Join(dir, ScenarioFile))
	if err != nil {
		return nil, err
	}

	products, err := l.LoadProducts(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, err
	}

	resources, err := l.LoadResources(filepath.Join(dir, ResourcesFile))
	if err != nil {
		return nil, err
	}

	consumption, err := l.LoadConsumption(filepath.Join(dir, ConsumptionFile), products, resources)
	if err != nil {
		return nil, err
	}

	return entities.NewScenario(info.Name, info.Currency, products, resources, consumption, info.BigM)
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]entities.Product, error) {
	records, err := readAll(filename, "products")
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("products CSV must have header and at least one data row")
	}

	expectedHeader := []string{"name", "category", "revenue_coeff", "saturation_coeff", "variable_cost", "activation_cost"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}

		products = append(products, product)
	}

	return products, nil
}

// LoadResources loads resources from a CSV file. A header-only file
// is valid: a scenario may have no capacity constraints.
func (l *Loader) LoadResources(filename string) ([]entities.Resource, error) {
	records, err := readAll(filename, "resources")
	if err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("resources CSV must have a header row")
	}

	expectedHeader := []string{"name", "capacity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("resources CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var resources []entities.Resource
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("resources CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		capacity, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("resources CSV row %d: invalid capacity: %s", i+2, record[1])
		}

		resources = append(resources, entities.Resource{
			Name:     record[0],
			Capacity: capacity,
		})
	}

	return resources, nil
}

// LoadConsumption loads the consumption matrix. The header names the
// products and each row names its resource, so a shuffled or stale
// file is rejected instead of silently misassigning rates.
func (l *Loader) LoadConsumption(filename string, products []entities.Product, resources []entities.Resource) ([][]float64, error) {
	records, err := readAll(filename, "consumption")
	if err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("consumption CSV must have a header row")
	}

	header := records[0]
	if len(header) != len(products)+1 || !strings.EqualFold(strings.TrimSpace(header[0]), "resource") {
		return nil, fmt.Errorf("consumption CSV header must be 'resource' followed by the %d product names, got %v", len(products), header)
	}
	for i, p := range products {
		if !strings.EqualFold(strings.TrimSpace(header[i+1]), p.Name) {
			return nil, fmt.Errorf("consumption CSV column %d is %q, expected product %q", i+2, header[i+1], p.Name)
		}
	}

	if len(records)-1 != len(resources) {
		return nil, fmt.Errorf("consumption CSV has %d rows for %d resources", len(records)-1, len(resources))
	}

	consumption := make([][]float64, len(resources))
	for k, record := range records[1:] {
		if len(record) != len(products)+1 {
			return nil, fmt.Errorf("consumption CSV row %d: expected %d columns, got %d", k+2, len(products)+1, len(record))
		}
		if !strings.EqualFold(strings.TrimSpace(record[0]), resources[k].Name) {
			return nil, fmt.Errorf("consumption CSV row %d is %q, expected resource %q", k+2, record[0], resources[k].Name)
		}

		row := make([]float64, len(products))
		for i, cell := range record[1:] {
			rate, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("consumption CSV row %d: invalid rate for %s: %s", k+2, products[i].Name, cell)
			}
			row[i] = rate
		}
		consumption[k] = row
	}

	return consumption, nil
}

// LoadScenarioInfo loads the key/value settings file
func (l *Loader) LoadScenarioInfo(filename string) (*ScenarioInfo, error) {
	records, err := readAll(filename, "scenario")
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("scenario CSV must have header and at least one data row")
	}

	expectedHeader := []string{"key", "value"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("scenario CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	info := &ScenarioInfo{Currency: "USD"}
	for i, record := range records[1:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("scenario CSV row %d: expected 2 columns, got %d", i+2, len(record))
		}

		key := strings.ToLower(strings.TrimSpace(record[0]))
		value := strings.TrimSpace(record[1])
		switch key {
		case "name":
			info.Name = value
		case "currency":
			info.Currency = value
		case "big_m":
			bigM, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("scenario CSV row %d: invalid big_m: %s", i+2, value)
			}
			info.BigM = bigM
		default:
			return nil, fmt.Errorf("scenario CSV row %d: unknown setting: %s", i+2, record[0])
		}
	}

	if info.Name == "" {
		return nil, fmt.Errorf("scenario CSV must set a name")
	}

	return info, nil
}

// Helper functions for parsing CSV records

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseProduct(record []string) (entities.Product, error) {
	category, err := parseCategory(record[1])
	if err != nil {
		return entities.Product{}, err
	}

	revenueCoeff, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid revenue_coeff: %s", record[2])
	}

	saturationCoeff, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid saturation_coeff: %s", record[3])
	}

	variableCost, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid variable_cost: %s", record[4])
	}

	activationCost, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return entities.Product{}, fmt.Errorf("invalid activation_cost: %s", record[5])
	}

	return entities.Product{
		Name:            record[0],
		Category:        category,
		RevenueCoeff:    revenueCoeff,
		SaturationCoeff: saturationCoeff,
		VariableCost:    variableCost,
		ActivationCost:  activationCost,
	}, nil
}

func parseCategory(s string) (entities.Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return entities.Standard, nil
	case "premium":
		return entities.Premium, nil
	default:
		return entities.Standard, fmt.Errorf("invalid category: %s (expected: standard or premium)", s)
	}
}

// SaveScenario writes a scenario as the four conventional files in
// dir, in the exact shape LoadScenario reads back
func (l *Loader) SaveScenario(scenario *entities.Scenario, dir string) error {
	if scenario == nil {
		return fmt.Errorf("scenario cannot be nil")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create scenario directory: %w", err)
	}

	info := [][]string{
		{"key", "value"},
		{"name", scenario.Name},
		{"currency", scenario.Currency},
		{"big_m", formatFloat(scenario.BigM)},
	}
	if err := writeAll(filepath.Join(dir, ScenarioFile), "scenario", info); err != nil {
		return err
	}

	products := [][]string{
		{"name", "category", "revenue_coeff", "saturation_coeff", "variable_cost", "activation_cost"},
	}
	for _, p := range scenario.Products {
		products = append(products, []string{
			p.Name,
			strings.ToLower(p.Category.String()),
			formatFloat(p.RevenueCoeff),
			formatFloat(p.SaturationCoeff),
			formatFloat(p.VariableCost),
			formatFloat(p.ActivationCost),
		})
	}
	if err := writeAll(filepath.Join(dir, ProductsFile), "products", products); err != nil {
		return err
	}

	resources := [][]string{{"name", "capacity"}}
	for _, r := range scenario.Resources {
		resources = append(resources, []string{r.Name, formatFloat(r.Capacity)})
	}
	if err := writeAll(filepath.Join(dir, ResourcesFile), "resources", resources); err != nil {
		return err
	}

	header := make([]string, 0, len(scenario.Products)+1)
	header = append(header, "resource")
	for _, p := range scenario.Products {
		header = append(header, p.Name)
	}
	consumption := [][]string{header}
	for k, r := range scenario.Resources {
		row := make([]string, 0, len(scenario.Products)+1)
		row = append(row, r.Name)
		for i := range scenario.Products {
			row = append(row, formatFloat(scenario.Consumption[k][i]))
		}
		consumption = append(consumption, row)
	}
	return writeAll(filepath.Join(dir, ConsumptionFile), "consumption", consumption)
}

func writeAll(filename, kind string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s CSV: %w", kind, err)
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
