package entities

// ConsumerShare attributes part of a resource's usage to one product
type ConsumerShare struct {
	Product  string  `json:"product"`
	Quantity int64   `json:"quantity"`
	Usage    float64 `json:"usage"`
	SharePct float64 `json:"share_pct"`
}

// Bottleneck describes how contended one resource is under a plan.
// Binding resources are the ones actually limiting profit; raising
// their capacity is the first lever to consider.
type Bottleneck struct {
	Resource       string          `json:"resource"`
	UtilizationPct float64         `json:"utilization_pct"`
	Binding        bool            `json:"binding"`
	TopConsumers   []ConsumerShare `json:"top_consumers,omitempty"`
}
