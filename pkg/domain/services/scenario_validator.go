package services

import (
	"fmt"

	"github.com/vsinha/mixplan/pkg/domain/entities"
)

// ValidationError reports a malformed or inconsistent scenario input,
// naming the offending field. Validation rejects bad input before any
// model is built or any backend invoked.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// RawParameters is the array/scalar form of a scenario: coefficient
// arrays indexed by product (standard products first, premium after),
// one activation cost per premium product, one capacity per resource,
// and the consumption matrix indexed [resource][product].
type RawParameters struct {
	StandardCount int
	PremiumCount  int
	RevenueCoeff  []float64
	Saturation    []float64
	VariableCost  []float64
	Activation    []float64
	Capacity      []float64
	Consumption   [][]float64
	BigM          float64
}

// ScenarioValidator checks shape and sign consistency of planning
// inputs. Success leaves the input untouched; failure returns a
// *ValidationError and nothing downstream runs.
type ScenarioValidator struct{}

// NewScenarioValidator creates a new scenario validator
func NewScenarioValidator() *ScenarioValidator {
	return &ScenarioValidator{}
}

// Validate checks a scenario aggregate: product category split,
// coefficient signs, capacity signs, consumption matrix shape and
// signs, and the big-M constant.
func (v *ScenarioValidator) Validate(s *entities.Scenario) error {
	if s == nil {
		return &ValidationError{Field: "scenario", Message: "scenario is nil"}
	}
	if s.Name == "" {
		return &ValidationError{Field: "name", Message: "scenario name cannot be empty"}
	}
	if len(s.Products) == 0 {
		return &ValidationError{Field: "products", Message: "scenario must contain at least one product"}
	}

	seenPremium := false
	for i, p := range s.Products {
		switch p.Category {
		case entities.Premium:
			seenPremium = true
		case entities.Standard:
			if seenPremium {
				return &ValidationError{
					Field:   fmt.Sprintf("products[%d].category", i),
					Message: "standard product appears after a premium product; premium products must come last",
				}
			}
		default:
			return &ValidationError{
				Field:   fmt.Sprintf("products[%d].category", i),
				Message: fmt.Sprintf("unknown category %d", p.Category),
			}
		}

		if p.RevenueCoeff < 0 {
			return negativeField(fmt.Sprintf("products[%d].revenue_coeff", i), p.RevenueCoeff)
		}
		if p.SaturationCoeff < 0 {
			return negativeField(fmt.Sprintf("products[%d].saturation_coeff", i), p.SaturationCoeff)
		}
		if p.VariableCost < 0 {
			return negativeField(fmt.Sprintf("products[%d].variable_cost", i), p.VariableCost)
		}
		if p.ActivationCost < 0 {
			return negativeField(fmt.Sprintf("products[%d].activation_cost", i), p.ActivationCost)
		}
		if p.Category == entities.Standard && p.ActivationCost != 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("products[%d].activation_cost", i),
				Message: "standard product cannot carry an activation cost",
			}
		}
	}

	for k, r := range s.Resources {
		if r.Capacity < 0 {
			return negativeField(fmt.Sprintf("resources[%d].capacity", k), r.Capacity)
		}
	}

	if len(s.Consumption) != len(s.Resources) {
		return &ValidationError{
			Field:   "consumption",
			Message: fmt.Sprintf("expected %d rows, got %d", len(s.Resources), len(s.Consumption)),
		}
	}
	for k, row := range s.Consumption {
		if len(row) != len(s.Products) {
			return &ValidationError{
				Field:   fmt.Sprintf("consumption[%d]", k),
				Message: fmt.Sprintf("expected %d entries, got %d", len(s.Products), len(row)),
			}
		}
		for i, rate := range row {
			if rate < 0 {
				return negativeField(fmt.Sprintf("consumption[%d][%d]", k, i), rate)
			}
		}
	}

	if s.BigM < 0 {
		return negativeField("big_m", s.BigM)
	}

	return nil
}

// ValidateParameters checks the raw array form directly: the
// standard/premium counts must partition the coefficient arrays
// exactly, every array length must agree, and every coefficient that
// must be non-negative is checked.
func (v *ScenarioValidator) ValidateParameters(p *RawParameters) error {
	if p == nil {
		return &ValidationError{Field: "parameters", Message: "parameters are nil"}
	}
	if p.StandardCount < 0 {
		return &ValidationError{Field: "standard_count", Message: fmt.Sprintf("cannot be negative, got %d", p.StandardCount)}
	}
	if p.PremiumCount < 0 {
		return &ValidationError{Field: "premium_count", Message: fmt.Sprintf("cannot be negative, got %d", p.PremiumCount)}
	}

	total := p.StandardCount + p.PremiumCount
	if total == 0 {
		return &ValidationError{Field: "standard_count", Message: "at least one product is required"}
	}
	if len(p.RevenueCoeff) != total {
		return lengthMismatch("revenue_coeff", total, len(p.RevenueCoeff))
	}
	if len(p.Saturation) != total {
		return lengthMismatch("saturation_coeff", total, len(p.Saturation))
	}
	if len(p.VariableCost) != total {
		return lengthMismatch("variable_cost", total, len(p.VariableCost))
	}
	if len(p.Activation) != p.PremiumCount {
		return lengthMismatch("activation_cost", p.PremiumCount, len(p.Activation))
	}
	if len(p.Consumption) != len(p.Capacity) {
		return lengthMismatch("consumption", len(p.Capacity), len(p.Consumption))
	}

	for i, a := range p.RevenueCoeff {
		if a < 0 {
			return negativeField(fmt.Sprintf("revenue_coeff[%d]", i), a)
		}
	}
	for i, b := range p.Saturation {
		if b < 0 {
			return negativeField(fmt.Sprintf("saturation_coeff[%d]", i), b)
		}
	}
	for i, c := range p.VariableCost {
		if c < 0 {
			return negativeField(fmt.Sprintf("variable_cost[%d]", i), c)
		}
	}
	for j, f := range p.Activation {
		if f < 0 {
			return negativeField(fmt.Sprintf("activation_cost[%d]", j), f)
		}
	}
	for k, r := range p.Capacity {
		if r < 0 {
			return negativeField(fmt.Sprintf("capacity[%d]", k), r)
		}
	}
	for k, row := range p.Consumption {
		if len(row) != total {
			return &ValidationError{
				Field:   fmt.Sprintf("consumption[%d]", k),
				Message: fmt.Sprintf("expected %d entries, got %d", total, len(row)),
			}
		}
		for i, rate := range row {
			if rate < 0 {
				return negativeField(fmt.Sprintf("consumption[%d][%d]", k, i), rate)
			}
		}
	}

	if p.BigM < 0 {
		return negativeField("big_m", p.BigM)
	}

	return nil
}

func negativeField(field string, value float64) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("cannot be negative, got %g", value),
	}
}

func lengthMismatch(field string, want, got int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("expected %d entries, got %d", want, got),
	}
}
