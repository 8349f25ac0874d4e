// mixplan plans production quantities for standard and premium goods
// under resource capacities, with saturating revenue and activation
// costs for premium lines.
//
// Usage:
//   mixplan plan --scenario winery.yaml [options]
//   mixplan batch --scenarios 'scenarios/*.yaml' [options]
//   mixplan generate --standard 5 --premium 2 --out big.yaml
//   mixplan new --out scenario.yaml
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/vsinha/mixplan/pkg/infrastructure/config"
	"github.com/vsinha/mixplan/pkg/interfaces/cli/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "mixplan",
		Usage:   "Production mix planner - profit-maximizing quantities under shared resource capacities",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "mixplan.yaml",
				Usage:   "Settings file (backend order, time budget, output defaults)",
				EnvVars: []string{"MIXPLAN_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose progress output",
				EnvVars: []string{"MIXPLAN_VERBOSE"},
			},
		},

		Commands: []*cli.Command{
			planCommand(),
			batchCommand(),
			generateCommand(),
			newCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Solve one scenario and report the production plan",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "Scenario YAML file",
			},
			&cli.StringFlag{
				Name:  "scenario-dir",
				Usage: "Scenario CSV directory (products.csv, resources.csv, consumption.csv, scenario.csv)",
			},
			&cli.StringSliceFlag{
				Name:  "backend",
				Usage: "Solver backend priority order (repeatable); overrides the settings file",
			},
			&cli.DurationFlag{
				Name:  "time-budget",
				Usage: "Per-solve time budget (e.g. 30s); overrides the settings file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, csv or html",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory for report files",
			},
		},
		Action: func(c *cli.Context) error {
			settings, budget, err := loadSettings(c)
			if err != nil {
				return err
			}
			cmd := commands.NewPlanCommand(commands.PlanConfig{
				ScenarioFile: c.String("scenario"),
				ScenarioDir:  c.String("scenario-dir"),
				Backends:     pick(c.StringSlice("backend"), settings.Backends),
				TimeBudget:   budget,
				OutputDir:    pickString(c.String("out"), settings.OutputDir),
				Format:       pickString(c.String("format"), settings.Format),
				Verbose:      c.Bool("verbose") || settings.Verbose,
			})
			return cmd.Execute(c.Context)
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Solve many scenario files concurrently and compare profits",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "scenarios",
				Usage:    "Glob of scenario YAML files, e.g. 'scenarios/*.yaml'",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "backend",
				Usage: "Solver backend priority order (repeatable)",
			},
			&cli.DurationFlag{
				Name:  "time-budget",
				Usage: "Per-solve time budget",
			},
			&cli.IntFlag{
				Name:  "workers",
				Value: 4,
				Usage: "Concurrent solves",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Per-scenario report format when --out is set",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Directory for per-scenario report files",
			},
		},
		Action: func(c *cli.Context) error {
			settings, budget, err := loadSettings(c)
			if err != nil {
				return err
			}
			cmd := commands.NewBatchCommand(commands.BatchConfig{
				ScenarioGlob: c.String("scenarios"),
				Backends:     pick(c.StringSlice("backend"), settings.Backends),
				TimeBudget:   budget,
				Workers:      c.Int("workers"),
				OutputDir:    c.String("out"),
				Format:       pickString(c.String("format"), settings.Format),
				Verbose:      c.Bool("verbose") || settings.Verbose,
			})
			return cmd.Execute(c.Context)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write a randomized scenario for demos and solver stress runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Scenario name (defaults to a seed-derived name)",
			},
			&cli.IntFlag{
				Name:  "standard",
				Value: 3,
				Usage: "Number of standard products",
			},
			&cli.IntFlag{
				Name:  "premium",
				Value: 2,
				Usage: "Number of premium products",
			},
			&cli.IntFlag{
				Name:  "resources",
				Value: 2,
				Usage: "Number of shared resources",
			},
			&cli.Float64Flag{
				Name:  "tightness",
				Value: 0.6,
				Usage: "Capacity multiplier: below 1 makes resources scarce",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Random seed for reproducible generation",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Destination YAML file",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Destination CSV scenario directory",
			},
		},
		Action: func(c *cli.Context) error {
			settings, _, err := loadSettings(c)
			if err != nil {
				return err
			}
			cmd := commands.NewGenerateCommand(commands.GenerateConfig{
				Name:       c.String("name"),
				Currency:   settings.Currency,
				Standard:   c.Int("standard"),
				Premium:    c.Int("premium"),
				Resources:  c.Int("resources"),
				Tightness:  c.Float64("tightness"),
				Seed:       c.Int64("seed"),
				OutputFile: c.String("out"),
				OutputDir:  c.String("out-dir"),
				Verbose:    c.Bool("verbose"),
			})
			return cmd.Execute(c.Context)
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Enter a scenario interactively and save it as YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "scenario.yaml",
				Usage:   "Destination YAML file",
			},
		},
		Action: func(c *cli.Context) error {
			cmd := commands.NewNewCommand(commands.NewConfig{
				OutputFile: c.String("out"),
				Verbose:    true,
			})
			return cmd.Execute(c.Context)
		},
	}
}

// loadSettings reads the settings file and resolves the effective
// time budget, with the command-line flag taking precedence
func loadSettings(c *cli.Context) (*config.Settings, time.Duration, error) {
	settings, err := config.LoadSettings(c.String("config"))
	if err != nil {
		return nil, 0, err
	}
	if err := settings.Validate(); err != nil {
		return nil, 0, fmt.Errorf("invalid settings: %w", err)
	}

	budget, err := settings.Budget()
	if err != nil {
		return nil, 0, err
	}
	if c.IsSet("time-budget") {
		budget = c.Duration("time-budget")
	}
	return settings, budget, nil
}

func pick(flag, fallback []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return fallback
}

func pickString(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
