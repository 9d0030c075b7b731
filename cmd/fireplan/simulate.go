package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/internal/output"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "run a one-off Monte Carlo retirement simulation",
	Long: `simulate runs independent portfolio survival trials from flags alone,
without a plan file. Pass --historical-csv to calibrate the return assumptions
from a year,return series instead of --mean/--stdev.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Int("trials", 1000, "number of simulation trials")
	f.Int("years", 30, "retirement years to simulate")
	f.String("portfolio", "1000000", "initial portfolio balance")
	f.String("strategy", domain.StrategyFixedReal, "withdrawal strategy: fixed_real or percentage_of_portfolio")
	f.String("withdrawal", "40000", "annual withdrawal for the fixed_real strategy")
	f.String("rate", "0.04", "withdrawal rate for the percentage_of_portfolio strategy")
	f.String("mean", "0.07", "expected annual return (mean)")
	f.String("stdev", "0.15", "return standard deviation")
	f.String("inflation", "0.03", "annual inflation rate")
	f.Int64("seed", 0, "random seed (omit for fresh entropy)")
	f.String("historical-csv", "", "calibrate mean/stdev from a year,return CSV file")
	f.String("csv-dir", "", "write summary/detailed/percentile CSV reports to this directory")
	f.String("html", "", "write an HTML report to this path")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	trials, _ := flags.GetInt("trials")
	years, _ := flags.GetInt("years")
	strategy, _ := flags.GetString("strategy")

	var err error
	parse := flagParser(cmd, &err)
	portfolio := parse("portfolio")
	mean := parse("mean")
	stdev := parse("stdev")
	inflation := parse("inflation")
	if err != nil {
		return err
	}

	cfg := domain.SimulationConfig{
		NumSimulations:      trials,
		RetirementYears:     years,
		InitialPortfolio:    portfolio,
		WithdrawalStrategy:  strategy,
		ExpectedReturnMean:  mean,
		ExpectedReturnStdev: stdev,
		InflationRate:       inflation,
	}
	switch strategy {
	case domain.StrategyFixedReal:
		w := parse("withdrawal")
		if err != nil {
			return err
		}
		cfg.AnnualWithdrawal = &w
	case domain.StrategyPercentageOfPortfolio:
		r := parse("rate")
		if err != nil {
			return err
		}
		cfg.WithdrawalRate = &r
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		cfg.RandomSeed = &seed
	}

	if path, _ := flags.GetString("historical-csv"); path != "" {
		history, lerr := calculation.LoadReturnHistory(path)
		if lerr != nil {
			return fmt.Errorf("failed to load return history: %w", lerr)
		}
		history.CalibrateSimulation(&cfg)
		fmt.Printf("Calibrated from %s: mean %s, stdev %s (%d years, %d-%d)\n\n",
			history.Name,
			output.FormatRate(history.Statistics.Mean),
			output.FormatRate(history.Statistics.StdDev),
			history.Statistics.Count, history.MinYear, history.MaxYear)
	}

	result, err := calculation.NewMonteCarloSimulator().Run(cfg)
	if err != nil {
		return err
	}
	printSimulation(result)

	if dir, _ := flags.GetString("csv-dir"); dir != "" {
		report := &output.MonteCarloCSVReport{Result: result}
		if err := report.GenerateAllCSVReports(dir); err != nil {
			return err
		}
		fmt.Printf("\nCSV reports written to %s\n", dir)
	}
	if path, _ := flags.GetString("html"); path != "" {
		report := &output.MonteCarloHTMLReport{Result: result}
		if err := report.GenerateHTMLReport(path); err != nil {
			return err
		}
		fmt.Printf("\nHTML report written to %s\n", path)
	}
	return nil
}

func printSimulation(result *domain.SimulationResult) {
	summary := output.SummarizeSimulation(result)

	fmt.Println("MONTE CARLO SIMULATION")
	fmt.Println("======================")
	fmt.Printf("%-20s %d\n", "Trials:", result.NumSimulations)
	fmt.Printf("%-20s %d\n", "Retirement Years:", result.RetirementYears)
	fmt.Printf("%-20s %s\n", "Initial Portfolio:", output.FormatCurrency(result.InitialPortfolio))
	fmt.Printf("%-20s %s\n", "Withdrawal Strategy:", result.WithdrawalStrategy)
	fmt.Printf("%-20s %d\n", "Random Seed:", result.Seed)
	fmt.Printf("%-20s %s\n", "Success Rate:", output.FormatRate(result.SuccessRate))
	fmt.Printf("%-20s %s\n", "Depletion Rate:", output.FormatRate(summary.DepletionRate))
	fmt.Println()
	fmt.Println("FINAL BALANCE DISTRIBUTION:")
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Minimum", summary.Min},
		{"10th Percentile", summary.Percentiles.P10},
		{"25th Percentile", summary.Percentiles.P25},
		{"Median", summary.Percentiles.P50},
		{"75th Percentile", summary.Percentiles.P75},
		{"90th Percentile", summary.Percentiles.P90},
		{"Maximum", summary.Max},
		{"Mean", summary.Mean},
	}
	for _, row := range rows {
		fmt.Printf("  %-18s %18s\n", row.label, output.FormatCurrency(row.value))
	}
}
