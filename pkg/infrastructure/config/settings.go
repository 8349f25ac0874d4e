package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/mixplan/pkg/solver"
)

// Settings holds planner configuration from a mixplan.yaml file.
// Command-line flags override whatever is loaded here.
type Settings struct {
	// Backends is the solver fallback order
	Backends []string `yaml:"backends"`
	// TimeBudget bounds each solve, as a Go duration string ("30s").
	// Empty means no limit.
	TimeBudget string `yaml:"time_budget,omitempty"`
	Format     string `yaml:"format"`
	OutputDir  string `yaml:"output_dir,omitempty"`
	Currency   string `yaml:"currency,omitempty"`
	Verbose    bool   `yaml:"verbose,omitempty"`
}

// DefaultSettings returns the configuration used when no settings
// file exists
func DefaultSettings() *Settings {
	return &Settings{
		Backends: []string{solver.BranchBoundName, solver.GreedyName},
		Format:   "text",
	}
}

// LoadSettings reads settings from path. A missing file is not an
// error: the defaults are returned so the planner runs out of the box.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return s, nil
}

// Validate checks that every setting can actually be acted on
func (s *Settings) Validate() error {
	if len(s.Backends) == 0 {
		return fmt.Errorf("at least one backend must be configured")
	}
	for _, name := range s.Backends {
		if _, err := solver.NewBackend(name); err != nil {
			return err
		}
	}

	switch s.Format {
	case "text", "json", "csv", "html":
	default:
		return fmt.Errorf("unsupported output format: %s", s.Format)
	}

	if _, err := s.Budget(); err != nil {
		return err
	}
	return nil
}

// Budget parses the configured time budget; empty means no limit
func (s *Settings) Budget() (time.Duration, error) {
	if s.TimeBudget == "" {
		return 0, nil
	}
	budget, err := time.ParseDuration(s.TimeBudget)
	if err != nil {
		return 0, fmt.Errorf("invalid time_budget %q: %w", s.TimeBudget, err)
	}
	if budget < 0 {
		return 0, fmt.Errorf("time_budget cannot be negative: %s", s.TimeBudget)
	}
	return budget, nil
}
