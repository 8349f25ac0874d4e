package entities

import "fmt"

// Scenario is the complete immutable input to one planning run:
// the product list (standard products first, then premium products),
// the shared resources, the consumption rates of each product against
// each resource, and the big-M constant linking premium quantities to
// their activation decisions.
//
// Consumption is indexed [resource][product] and must have one row per
// resource and one column per product.
type Scenario struct {
	Name        string
	Currency    string
	Products    []Product
	Resources   []Resource
	Consumption [][]float64
	BigM        float64
}

// NewScenario creates a Scenario with basic structural checks.
// Deep shape and sign validation is the ScenarioValidator's job.
func NewScenario(name, currency string, products []Product, resources []Resource, consumption [][]float64, bigM float64) (*Scenario, error) {
	if name == "" {
		return nil, fmt.Errorf("scenario name cannot be empty")
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("scenario must contain at least one product")
	}

	return &Scenario{
		Name:        name,
		Currency:    currency,
		Products:    products,
		Resources:   resources,
		Consumption: consumption,
		BigM:        bigM,
	}, nil
}

// StandardCount returns the number of leading standard products.
// When the product list is well formed (premium products form a
// contiguous suffix) this is also the index of the first premium
// product.
func (s *Scenario) StandardCount() int {
	for i, p := range s.Products {
		if p.Category == Premium {
			return i
		}
	}
	return len(s.Products)
}

// PremiumCount returns the number of premium products
func (s *Scenario) PremiumCount() int {
	count := 0
	for _, p := range s.Products {
		if p.Category == Premium {
			count++
		}
	}
	return count
}

// PremiumIndex maps a product index to its premium ordinal, or -1 for
// standard products. Premium ordinal j corresponds to product index
// StandardCount()+j.
func (s *Scenario) PremiumIndex(i int) int {
	if i < 0 || i >= len(s.Products) || s.Products[i].Category != Premium {
		return -1
	}
	return i - s.StandardCount()
}

// Premium returns the premium products in product order
func (s *Scenario) Premium() []Product {
	var premium []Product
	for _, p := range s.Products {
		if p.Category == Premium {
			premium = append(premium, p)
		}
	}
	return premium
}
