package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/config"
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/internal/output"
)

var (
	cfgFile      string
	reportFormat string
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "fireplan",
	Short: "FIRE retirement planning calculator",
	Long: `fireplan projects paths to financial independence: Monte Carlo
retirement simulations, deterministic years-to-FI estimates, and glide path
portfolio projections.

Run with --config to analyze every scenario in a plan file. Console formats
print to stdout; file formats are written as timestamped fire_plan_report_*
files in the working directory.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return cmd.Help()
		}
		return runPlanFile(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "plan configuration file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&reportFormat, "format", "f", "console",
		"report format: "+strings.Join(output.AvailableFormatterNames(), ", ")+", or all")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to stderr")
}

// newEngine builds a calculation engine honoring the --debug flag.
func newEngine() *calculation.CalculationEngine {
	eng := calculation.NewCalculationEngine()
	if debugMode {
		eng.Debug = true
		eng.SetLogger(calculation.NewStderrLogger())
	}
	return eng
}

// runPlanFile loads the plan, runs every scenario, and emits the report.
func runPlanFile(cmd *cobra.Command) error {
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}

	comparison, err := newEngine().RunPlan(cmd.Context(), plan)
	if err != nil {
		return fmt.Errorf("plan calculation failed: %w", err)
	}
	return writeReport(comparison)
}

// writeReport renders console formats to stdout and everything else to files.
func writeReport(comparison *domain.PlanComparison) error {
	switch output.NormalizeFormatName(reportFormat) {
	case "console", "console-lite":
		f := output.GetFormatterByName(reportFormat)
		data, err := f.Format(comparison)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	return output.GenerateReport(comparison, reportFormat)
}

// decimalFlag parses a string flag as a decimal, naming the flag on failure.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid --%s value %q: %w", name, s, err)
	}
	return d, nil
}

// flagParser returns a parse closure that records the first failure in err.
func flagParser(cmd *cobra.Command, err *error) func(string) decimal.Decimal {
	return func(name string) decimal.Decimal {
		if *err != nil {
			return decimal.Decimal{}
		}
		var d decimal.Decimal
		d, *err = decimalFlag(cmd, name)
		return d
	}
}
