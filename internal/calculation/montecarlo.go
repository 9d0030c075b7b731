package calculation

import (
	"fmt"
	"sync"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// maxConcurrentTrials caps the number of Monte Carlo trials in flight.
const maxConcurrentTrials = 10

var decimalOne = decimal.NewFromInt(1)

// onePlus returns 1 + rate as a growth factor.
func onePlus(rate decimal.Decimal) decimal.Decimal {
	return decimalOne.Add(rate)
}

// MonteCarloSimulator runs independent portfolio survival trials.
type MonteCarloSimulator struct {
	Concurrency int // max trials in flight, defaults to maxConcurrentTrials
}

// NewMonteCarloSimulator creates a simulator with default concurrency.
func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{Concurrency: maxConcurrentTrials}
}

// Run executes the configured number of trials and aggregates the outcomes.
//
// Trial i seeds its own return stream with seed+i, so a fixed RandomSeed
// reproduces results exactly regardless of goroutine scheduling.
func (mcs *MonteCarloSimulator) Run(cfg domain.SimulationConfig) (*domain.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation configuration rejected: %w", err)
	}

	policy, err := NewWithdrawalPolicy(cfg)
	if err != nil {
		return nil, err
	}

	seed := resolveSeed(cfg.RandomSeed)

	runs := make([]domain.SimulationRun, cfg.NumSimulations)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, mcs.concurrency())

	for i := 0; i < cfg.NumSimulations; i++ {
		wg.Add(1)
		go func(trial int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			gen := NewNormalReturnGenerator(seed + int64(trial))
			runs[trial] = runTrial(cfg, policy, gen)
		}(i)
	}
	wg.Wait()

	return &domain.SimulationResult{
		Runs:               runs,
		SuccessRate:        successRate(runs, cfg.RetirementYears),
		NumSimulations:     cfg.NumSimulations,
		RetirementYears:    cfg.RetirementYears,
		InitialPortfolio:   cfg.InitialPortfolio,
		WithdrawalStrategy: policy.Name(),
		Seed:               seed,
	}, nil
}

func (mcs *MonteCarloSimulator) concurrency() int {
	if mcs.Concurrency > 0 {
		return mcs.Concurrency
	}
	return maxConcurrentTrials
}

// resolveSeed picks the configured seed or asks the seed source for one.
func resolveSeed(configured *int64) int64 {
	if configured != nil {
		return *configured
	}
	return seedFunc()
}

// runTrial simulates one retirement. Each year draws a return, withdraws
// first, then grows the remainder, flooring the balance at zero. A depleted
// portfolio stays at zero for all later years.
func runTrial(cfg domain.SimulationConfig, policy WithdrawalPolicy, gen ReturnGenerator) domain.SimulationRun {
	balance := cfg.InitialPortfolio
	outcomes := make([]domain.YearOutcome, 0, cfg.RetirementYears)
	lasted := cfg.RetirementYears

	for year := 0; year < cfg.RetirementYears; year++ {
		r := gen.Draw(cfg.ExpectedReturnMean, cfg.ExpectedReturnStdev)
		start := balance

		remaining, withdrawn := policy.Apply(balance, year)
		balance = remaining.Mul(onePlus(r))
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		outcomes = append(outcomes, domain.YearOutcome{
			Year:         year,
			StartBalance: start,
			Withdrawal:   withdrawn,
			Return:       r,
			EndBalance:   balance,
		})

		if balance.IsZero() && lasted == cfg.RetirementYears {
			if start.IsZero() {
				lasted = year
			} else {
				lasted = year + 1
			}
		}
	}

	return domain.SimulationRun{
		FinalPortfolio:  balance,
		Survived:        balance.IsPositive(),
		PortfolioLasted: lasted,
		YearOutcomes:    outcomes,
	}
}

// successRate counts surviving trials. A zero-length retirement cannot fail.
func successRate(runs []domain.SimulationRun, retirementYears int) decimal.Decimal {
	if retirementYears == 0 {
		return decimalOne
	}
	successCount := 0
	for _, run := range runs {
		if run.Survived {
			successCount++
		}
	}
	return decimal.NewFromInt(int64(successCount)).Div(decimal.NewFromInt(int64(len(runs))))
}
