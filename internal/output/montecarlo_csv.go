package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo simulation results.
type MonteCarloCSVReport struct {
	Result *domain.SimulationResult
}

// GenerateSummaryCSV creates a summary CSV with aggregate statistics.
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Metric", "Value", "Description"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	summary := SummarizeSimulation(m.Result)
	summaryData := [][]string{
		{"Success Rate", FormatRate(m.Result.SuccessRate), "Percentage of trials that kept a positive balance"},
		{"Depletion Rate", FormatRate(summary.DepletionRate), "Percentage of trials that ran out of money"},
		{"Median Final Balance", "$" + summary.Percentiles.P50.StringFixed(0), "Median portfolio balance at the end of retirement"},
		{"Mean Final Balance", "$" + summary.Mean.StringFixed(0), "Mean portfolio balance at the end of retirement"},
		{"Balance Volatility", "$" + summary.StdDev.StringFixed(0), "Standard deviation of final balances"},
		{"10th Percentile Balance", "$" + summary.Percentiles.P10.StringFixed(0), "Worst 10% of trials end at or below this"},
		{"25th Percentile Balance", "$" + summary.Percentiles.P25.StringFixed(0), "Below average trials"},
		{"75th Percentile Balance", "$" + summary.Percentiles.P75.StringFixed(0), "Above average trials"},
		{"90th Percentile Balance", "$" + summary.Percentiles.P90.StringFixed(0), "Best 10% of trials end at or above this"},
		{"Number of Trials", strconv.Itoa(m.Result.NumSimulations), "Total number of trials run"},
		{"Retirement Years", strconv.Itoa(m.Result.RetirementYears), "Years of withdrawals simulated"},
		{"Withdrawal Strategy", m.Result.WithdrawalStrategy, "How the annual withdrawal was computed"},
		{"Random Seed", strconv.FormatInt(m.Result.Seed, 10), "Seed used for the return streams"},
	}

	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}

	return nil
}

// GenerateDetailedCSV creates a detailed CSV with individual trial results.
func (m *MonteCarloCSVReport) GenerateDetailedCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"TrialID",
		"Survived",
		"FinalBalance",
		"PortfolioLasted",
		"TotalWithdrawn",
		"MinEndBalance",
		"MaxEndBalance",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, run := range m.Result.Runs {
		totalWithdrawn := decimal.Zero
		minBalance := run.FinalPortfolio
		maxBalance := run.FinalPortfolio
		for _, outcome := range run.YearOutcomes {
			totalWithdrawn = totalWithdrawn.Add(outcome.Withdrawal)
			if outcome.EndBalance.LessThan(minBalance) {
				minBalance = outcome.EndBalance
			}
			if outcome.EndBalance.GreaterThan(maxBalance) {
				maxBalance = outcome.EndBalance
			}
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatBool(run.Survived),
			run.FinalPortfolio.StringFixed(2),
			strconv.Itoa(run.PortfolioLasted),
			totalWithdrawn.StringFixed(2),
			minBalance.StringFixed(2),
			maxBalance.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write trial row: %w", err)
		}
	}

	return nil
}

// GeneratePercentileCSV creates a CSV with year-by-year balance percentile bands.
func (m *MonteCarloCSVReport) GeneratePercentileCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Year", "P10", "P25", "P50", "P75", "P90", "SolventTrials"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for year := 0; year < m.Result.RetirementYears; year++ {
		balances := make([]decimal.Decimal, 0, len(m.Result.Runs))
		solvent := 0
		for _, run := range m.Result.Runs {
			if year >= len(run.YearOutcomes) {
				continue
			}
			end := run.YearOutcomes[year].EndBalance
			balances = append(balances, end)
			if end.IsPositive() {
				solvent++
			}
		}
		sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })
		row := []string{
			strconv.Itoa(year + 1),
			calculatePercentile(balances, 0.10).StringFixed(0),
			calculatePercentile(balances, 0.25).StringFixed(0),
			calculatePercentile(balances, 0.50).StringFixed(0),
			calculatePercentile(balances, 0.75).StringFixed(0),
			calculatePercentile(balances, 0.90).StringFixed(0),
			strconv.Itoa(solvent),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write percentile row: %w", err)
		}
	}

	return nil
}

// GenerateAllCSVReports creates all CSV reports in a single directory.
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryPath := fmt.Sprintf("%s/monte_carlo_summary.csv", outputDir)
	if err := m.GenerateSummaryCSV(summaryPath); err != nil {
		return fmt.Errorf("failed to generate summary CSV: %w", err)
	}

	detailedPath := fmt.Sprintf("%s/monte_carlo_detailed.csv", outputDir)
	if err := m.GenerateDetailedCSV(detailedPath); err != nil {
		return fmt.Errorf("failed to generate detailed CSV: %w", err)
	}

	percentilePath := fmt.Sprintf("%s/monte_carlo_percentiles.csv", outputDir)
	if err := m.GeneratePercentileCSV(percentilePath); err != nil {
		return fmt.Errorf("failed to generate percentile CSV: %w", err)
	}

	return nil
}
