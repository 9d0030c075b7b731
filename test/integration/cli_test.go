package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/config"
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	// Load the plan before switching directories; the fixture path is relative
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile("../testdata/example_plan.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunPlan(context.Background(), plan)
	require.NoError(t, err)

	// Report files land in the working directory, so point that at a temp dir
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	for _, format := range []string{"console", "json", "csv", "html"} {
		assert.NoError(t, output.GenerateReport(results, format), "format %s", format)
	}

	files, err := filepath.Glob("fire_plan_report_*")
	require.NoError(t, err)
	written := make(map[string]bool)
	for _, f := range files {
		written[filepath.Ext(f)] = true
	}
	for _, ext := range []string{".txt", ".json", ".csv", ".html"} {
		assert.True(t, written[ext], "no %s report written", ext)
	}
}

func TestBasicCalculations(t *testing.T) {
	// Every scenario must come back with numbers in a sane range
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile("../testdata/example_plan.yaml")
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	results, err := engine.RunPlan(context.Background(), plan)
	require.NoError(t, err)
	assert.Len(t, results.Scenarios, 3)

	for _, scenario := range results.Scenarios {
		require.NotNil(t, scenario.FI)
		assert.True(t, scenario.FI.FINumber.GreaterThan(decimal.Zero))
		assert.True(t, scenario.FI.CurrentProgress.GreaterThan(decimal.Zero))
		assert.True(t, scenario.FI.RemainingNeeded.GreaterThanOrEqual(decimal.Zero))

		require.NotNil(t, scenario.Simulation)
		assert.Len(t, scenario.Simulation.Runs, scenario.Simulation.NumSimulations)
		for _, run := range scenario.Simulation.Runs {
			if run.FinalPortfolio.IsNegative() {
				t.Fatalf("scenario %q produced a negative final portfolio: %s",
					scenario.Name, run.FinalPortfolio)
			}
		}

		require.NotNil(t, scenario.Projection)
		assert.True(t, scenario.Projection.YearsToFI.Reachable(),
			"scenario %q glide path projection never reaches FI", scenario.Name)
	}
}

func TestHistoricalCalibration(t *testing.T) {
	history, err := calculation.LoadReturnHistory("../testdata/sp500_annual_returns.csv")
	require.NoError(t, err)

	assert.Equal(t, "sp500_annual_returns.csv", history.Name)
	assert.Equal(t, 20, history.Statistics.Count)
	assert.Equal(t, 2004, history.MinYear)
	assert.Equal(t, 2023, history.MaxYear)
	assert.True(t, history.Statistics.Mean.IsPositive())
	assert.True(t, history.Statistics.StdDev.IsPositive())
	assert.True(t, history.Statistics.Min.Equal(decimal.NewFromFloat(-0.37)))
	assert.True(t, history.Statistics.Max.Equal(decimal.NewFromFloat(0.3239)))

	// Calibrated moments feed straight into a seeded simulation
	withdrawal := decimal.NewFromInt(48000)
	seed := int64(7)
	cfg := domain.SimulationConfig{
		NumSimulations:     200,
		RetirementYears:    30,
		InitialPortfolio:   decimal.NewFromInt(1200000),
		WithdrawalStrategy: domain.StrategyFixedReal,
		AnnualWithdrawal:   &withdrawal,
		InflationRate:      decimal.NewFromFloat(0.03),
		RandomSeed:         &seed,
	}
	history.CalibrateSimulation(&cfg)
	assert.True(t, cfg.ExpectedReturnMean.Equal(history.Statistics.Mean))
	assert.True(t, cfg.ExpectedReturnStdev.Equal(history.Statistics.StdDev))

	result, err := calculation.NewMonteCarloSimulator().Run(cfg)
	require.NoError(t, err)
	assert.Len(t, result.Runs, 200)
	assert.True(t, result.SuccessRate.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(1)))
}
