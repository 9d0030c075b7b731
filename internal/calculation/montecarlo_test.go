package calculation

import (
	"errors"
	"testing"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

func fixedRealConfig() domain.SimulationConfig {
	withdrawal := decimal.NewFromInt(40000)
	seed := int64(12345)
	return domain.SimulationConfig{
		NumSimulations:      100,
		RetirementYears:     25,
		InitialPortfolio:    decimal.NewFromInt(1000000),
		WithdrawalStrategy:  domain.StrategyFixedReal,
		AnnualWithdrawal:    &withdrawal,
		ExpectedReturnMean:  decimal.NewFromFloat(0.07),
		ExpectedReturnStdev: decimal.NewFromFloat(0.15),
		InflationRate:       decimal.NewFromFloat(0.03),
		RandomSeed:          &seed,
	}
}

func TestMonteCarloSimulator(t *testing.T) {
	config := fixedRealConfig()

	simulator := NewMonteCarloSimulator()
	result, err := simulator.Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}
	if result == nil {
		t.Fatal("Simulation result is nil")
	}

	if result.NumSimulations != config.NumSimulations {
		t.Errorf("Expected %d simulations, got %d", config.NumSimulations, result.NumSimulations)
	}
	if len(result.Runs) != config.NumSimulations {
		t.Errorf("Expected %d runs, got %d", config.NumSimulations, len(result.Runs))
	}
	if result.RetirementYears != config.RetirementYears {
		t.Errorf("Expected %d retirement years, got %d", config.RetirementYears, result.RetirementYears)
	}
	if result.WithdrawalStrategy != domain.StrategyFixedReal {
		t.Errorf("Expected strategy %q, got %q", domain.StrategyFixedReal, result.WithdrawalStrategy)
	}
	if result.Seed != *config.RandomSeed {
		t.Errorf("Expected seed %d echoed in result, got %d", *config.RandomSeed, result.Seed)
	}

	// Success rate must be a valid probability
	if result.SuccessRate.LessThan(decimal.Zero) || result.SuccessRate.GreaterThan(decimal.NewFromInt(1)) {
		t.Errorf("Success rate should be between 0 and 1, got %s", result.SuccessRate)
	}

	// A 4% initial withdrawal should survive in at least some trials
	successCount := 0
	for _, run := range result.Runs {
		if run.Survived {
			successCount++
		}
	}
	if successCount == 0 {
		t.Error("Expected at least some surviving trials")
	}

	// Every trial records one outcome per retirement year
	for i, run := range result.Runs {
		if len(run.YearOutcomes) != config.RetirementYears {
			t.Fatalf("Run %d: expected %d year outcomes, got %d", i, config.RetirementYears, len(run.YearOutcomes))
		}
		for y := 1; y < len(run.YearOutcomes); y++ {
			if !run.YearOutcomes[y].StartBalance.Equal(run.YearOutcomes[y-1].EndBalance) {
				t.Fatalf("Run %d year %d: start balance %s does not chain from previous end balance %s",
					i, y, run.YearOutcomes[y].StartBalance, run.YearOutcomes[y-1].EndBalance)
			}
		}
	}
}

func TestWithdrawThenGrowOrdering(t *testing.T) {
	// With zero volatility a single year is exact: (100 - 10) * 1.10 = 99.
	// Growing first would give 100*1.10 - 10 = 100 instead.
	withdrawal := decimal.NewFromInt(10)
	seed := int64(1)
	config := domain.SimulationConfig{
		NumSimulations:     1,
		RetirementYears:    1,
		InitialPortfolio:   decimal.NewFromInt(100),
		WithdrawalStrategy: domain.StrategyFixedReal,
		AnnualWithdrawal:   &withdrawal,
		ExpectedReturnMean: decimal.NewFromFloat(0.10),
		RandomSeed:         &seed,
	}

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	want := decimal.NewFromInt(99)
	got := result.Runs[0].FinalPortfolio
	if !got.Equal(want) {
		t.Errorf("Expected final portfolio %s, got %s", want, got)
	}

	outcome := result.Runs[0].YearOutcomes[0]
	if !outcome.StartBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected start balance 100, got %s", outcome.StartBalance)
	}
	if !outcome.Withdrawal.Equal(withdrawal) {
		t.Errorf("Expected withdrawal %s, got %s", withdrawal, outcome.Withdrawal)
	}
	if !outcome.EndBalance.Equal(want) {
		t.Errorf("Expected end balance %s, got %s", want, outcome.EndBalance)
	}
}

func TestSeedReproducibility(t *testing.T) {
	config := fixedRealConfig()

	first, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run first simulation: %v", err)
	}
	second, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run second simulation: %v", err)
	}

	if !first.SuccessRate.Equal(second.SuccessRate) {
		t.Errorf("Same seed gave different success rates: %s vs %s", first.SuccessRate, second.SuccessRate)
	}
	for i := range first.Runs {
		if !first.Runs[i].FinalPortfolio.Equal(second.Runs[i].FinalPortfolio) {
			t.Fatalf("Run %d: same seed gave different final portfolios: %s vs %s",
				i, first.Runs[i].FinalPortfolio, second.Runs[i].FinalPortfolio)
		}
	}

	otherSeed := int64(99999)
	config.RandomSeed = &otherSeed
	third, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run third simulation: %v", err)
	}

	diverged := false
	for i := range first.Runs {
		if !first.Runs[i].FinalPortfolio.Equal(third.Runs[i].FinalPortfolio) {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Error("Different seeds produced identical trial outcomes")
	}
}

func TestZeroRetirementYears(t *testing.T) {
	config := fixedRealConfig()
	config.RetirementYears = 0

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	if !result.SuccessRate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected success rate 1 for zero-length retirement, got %s", result.SuccessRate)
	}
	for i, run := range result.Runs {
		if !run.FinalPortfolio.Equal(config.InitialPortfolio) {
			t.Errorf("Run %d: expected untouched portfolio %s, got %s", i, config.InitialPortfolio, run.FinalPortfolio)
		}
		if run.PortfolioLasted != 0 {
			t.Errorf("Run %d: expected portfolio lasted 0, got %d", i, run.PortfolioLasted)
		}
	}

	// The edge holds even when there is nothing to start with
	config.InitialPortfolio = decimal.Zero
	result, err = NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}
	if !result.SuccessRate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected success rate 1 for zero-length retirement of empty portfolio, got %s", result.SuccessRate)
	}
}

func TestZeroVolatilityIsDeterministic(t *testing.T) {
	config := fixedRealConfig()
	config.ExpectedReturnStdev = decimal.Zero
	config.NumSimulations = 50

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	firstFinal := result.Runs[0].FinalPortfolio
	for i, run := range result.Runs {
		if !run.FinalPortfolio.Equal(firstFinal) {
			t.Fatalf("Run %d: zero volatility should make every trial identical, got %s vs %s",
				i, run.FinalPortfolio, firstFinal)
		}
	}
	if !result.SuccessRate.Equal(decimal.Zero) && !result.SuccessRate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Zero volatility success rate should be 0 or 1, got %s", result.SuccessRate)
	}
}

func TestClassicRetirementScenario(t *testing.T) {
	// $1M portfolio, $40K inflation-adjusted spending, 30 years: the 4% rule
	// setup. With a 7% mean and 15% volatility the success rate lands well
	// inside a broad band.
	config := fixedRealConfig()
	config.NumSimulations = 1000
	config.RetirementYears = 30
	seed := int64(42)
	config.RandomSeed = &seed

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	low := decimal.NewFromFloat(0.65)
	high := decimal.NewFromFloat(0.98)
	if result.SuccessRate.LessThan(low) || result.SuccessRate.GreaterThan(high) {
		t.Errorf("Expected success rate between %s and %s, got %s", low, high, result.SuccessRate)
	}
}

func TestSuccessRateMonotonicInInitialPortfolio(t *testing.T) {
	// With the trial streams pinned by the seed, more starting money can
	// never do worse.
	config := fixedRealConfig()
	config.NumSimulations = 200
	seed := int64(7)
	config.RandomSeed = &seed

	portfolios := []int64{500000, 750000, 1000000, 1500000}
	var prevRate decimal.Decimal
	for i, p := range portfolios {
		config.InitialPortfolio = decimal.NewFromInt(p)
		result, err := NewMonteCarloSimulator().Run(config)
		if err != nil {
			t.Fatalf("Failed to run simulation for portfolio %d: %v", p, err)
		}
		if i > 0 && result.SuccessRate.LessThan(prevRate) {
			t.Errorf("Success rate dropped from %s to %s when portfolio grew to %d",
				prevRate, result.SuccessRate, p)
		}
		prevRate = result.SuccessRate
	}
}

func TestPercentageOfPortfolioNeverDepletes(t *testing.T) {
	rate := decimal.NewFromFloat(0.04)
	seed := int64(4242)
	config := domain.SimulationConfig{
		NumSimulations:      200,
		RetirementYears:     40,
		InitialPortfolio:    decimal.NewFromInt(1000000),
		WithdrawalStrategy:  domain.StrategyPercentageOfPortfolio,
		WithdrawalRate:      &rate,
		ExpectedReturnMean:  decimal.NewFromFloat(0.05),
		ExpectedReturnStdev: decimal.NewFromFloat(0.12),
		RandomSeed:          &seed,
	}

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	if !result.SuccessRate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected success rate 1, got %s", result.SuccessRate)
	}
	for i, run := range result.Runs {
		if !run.Survived {
			t.Errorf("Run %d: percentage withdrawals emptied the portfolio", i)
		}
		if run.PortfolioLasted != config.RetirementYears {
			t.Errorf("Run %d: expected portfolio to last %d years, got %d",
				i, config.RetirementYears, run.PortfolioLasted)
		}
	}
}

func TestPortfolioLastedCountsDepletionYear(t *testing.T) {
	// 100 start, 60 withdrawn each year, flat returns: year 0 ends at 40,
	// year 1 drains the rest, so the portfolio lasted 2 years.
	withdrawal := decimal.NewFromInt(60)
	seed := int64(1)
	config := domain.SimulationConfig{
		NumSimulations:     1,
		RetirementYears:    5,
		InitialPortfolio:   decimal.NewFromInt(100),
		WithdrawalStrategy: domain.StrategyFixedReal,
		AnnualWithdrawal:   &withdrawal,
		RandomSeed:         &seed,
	}

	result, err := NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	run := result.Runs[0]
	if run.Survived {
		t.Error("Expected the portfolio to be depleted")
	}
	if run.PortfolioLasted != 2 {
		t.Errorf("Expected portfolio lasted 2 years, got %d", run.PortfolioLasted)
	}
	if !result.SuccessRate.Equal(decimal.Zero) {
		t.Errorf("Expected success rate 0, got %s", result.SuccessRate)
	}

	// An empty portfolio never lasted at all
	config.InitialPortfolio = decimal.Zero
	result, err = NewMonteCarloSimulator().Run(config)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}
	if result.Runs[0].PortfolioLasted != 0 {
		t.Errorf("Expected portfolio lasted 0 years, got %d", result.Runs[0].PortfolioLasted)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	config := fixedRealConfig()
	config.NumSimulations = 0

	_, err := NewMonteCarloSimulator().Run(config)
	if err == nil {
		t.Fatal("Expected an error for zero simulations")
	}
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected a ConfigurationError, got %T: %v", err, err)
	}
	if cfgErr.Field != "num_simulations" {
		t.Errorf("Expected error on field num_simulations, got %q", cfgErr.Field)
	}
}
