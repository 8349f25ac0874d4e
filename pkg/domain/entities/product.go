package entities

import "fmt"

// Category represents the commercial category of a product
type Category int

const (
	Standard Category = iota
	Premium
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Standard:
		return "Standard"
	case Premium:
		return "Premium"
	default:
		return "Unknown"
	}
}

// Product represents one plannable good and its profit coefficients.
// Revenue follows a saturation curve: producing x units earns
// RevenueCoeff*x - SaturationCoeff*x^2, so each additional unit yields
// diminishing marginal revenue. VariableCost is charged per unit.
// Premium products additionally pay ActivationCost once if any units
// are produced at all.
type Product struct {
	Name            string
	Category        Category
	RevenueCoeff    float64
	SaturationCoeff float64
	VariableCost    float64
	ActivationCost  float64
}

// NewStandardProduct creates a validated standard product
func NewStandardProduct(name string, revenueCoeff, saturationCoeff, variableCost float64) (*Product, error) {
	return newProduct(name, Standard, revenueCoeff, saturationCoeff, variableCost, 0)
}

// NewPremiumProduct creates a validated premium product
func NewPremiumProduct(name string, revenueCoeff, saturationCoeff, variableCost, activationCost float64) (*Product, error) {
	return newProduct(name, Premium, revenueCoeff, saturationCoeff, variableCost, activationCost)
}

func newProduct(name string, category Category, revenueCoeff, saturationCoeff, variableCost, activationCost float64) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("product name cannot be empty")
	}
	if revenueCoeff < 0 {
		return nil, fmt.Errorf("revenue coefficient cannot be negative, got %g", revenueCoeff)
	}
	if saturationCoeff < 0 {
		return nil, fmt.Errorf("saturation coefficient cannot be negative, got %g", saturationCoeff)
	}
	if variableCost < 0 {
		return nil, fmt.Errorf("variable cost cannot be negative, got %g", variableCost)
	}
	if activationCost < 0 {
		return nil, fmt.Errorf("activation cost cannot be negative, got %g", activationCost)
	}
	if category == Standard && activationCost != 0 {
		return nil, fmt.Errorf("standard product cannot carry an activation cost, got %g", activationCost)
	}

	return &Product{
		Name:            name,
		Category:        category,
		RevenueCoeff:    revenueCoeff,
		SaturationCoeff: saturationCoeff,
		VariableCost:    variableCost,
		ActivationCost:  activationCost,
	}, nil
}
