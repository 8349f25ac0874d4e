package entities

import "fmt"

// Resource represents a shared production resource with finite capacity
type Resource struct {
	Name     string
	Capacity float64
}

// NewResource creates a validated Resource
func NewResource(name string, capacity float64) (*Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("resource name cannot be empty")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("resource capacity cannot be negative, got %g", capacity)
	}

	return &Resource{
		Name:     name,
		Capacity: capacity,
	}, nil
}
