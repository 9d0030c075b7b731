package domain

import (
	"github.com/shopspring/decimal"
)

// Withdrawal strategy tags accepted by SimulationConfig.
const (
	StrategyFixedReal             = "fixed_real"
	StrategyPercentageOfPortfolio = "percentage_of_portfolio"
)

// SimulationConfig describes one Monte Carlo retirement simulation. Exactly
// one of AnnualWithdrawal and WithdrawalRate must be set, matching the
// strategy tag.
type SimulationConfig struct {
	NumSimulations      int              `yaml:"num_simulations" json:"num_simulations"`
	RetirementYears     int              `yaml:"retirement_years" json:"retirement_years"`
	InitialPortfolio    decimal.Decimal  `yaml:"initial_portfolio" json:"initial_portfolio"`
	WithdrawalStrategy  string           `yaml:"withdrawal_strategy" json:"withdrawal_strategy"`
	AnnualWithdrawal    *decimal.Decimal `yaml:"annual_withdrawal,omitempty" json:"annual_withdrawal,omitempty"`
	WithdrawalRate      *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	ExpectedReturnMean  decimal.Decimal  `yaml:"expected_return_mean" json:"expected_return_mean"`
	ExpectedReturnStdev decimal.Decimal  `yaml:"expected_return_stdev" json:"expected_return_stdev"`
	InflationRate       decimal.Decimal  `yaml:"inflation_rate" json:"inflation_rate"`
	RandomSeed          *int64           `yaml:"random_seed,omitempty" json:"random_seed,omitempty"`
}

// Validate rejects configurations that cannot be simulated. It runs before
// any trial starts.
func (sc *SimulationConfig) Validate() error {
	if sc.NumSimulations < 1 {
		return NewConfigurationError("num_simulations", "must be at least 1, got %d", sc.NumSimulations)
	}
	if sc.RetirementYears < 0 {
		return NewConfigurationError("retirement_years", "cannot be negative, got %d", sc.RetirementYears)
	}
	if sc.InitialPortfolio.IsNegative() {
		return NewConfigurationError("initial_portfolio", "cannot be negative, got %s", sc.InitialPortfolio)
	}
	if sc.ExpectedReturnStdev.IsNegative() {
		return NewConfigurationError("expected_return_stdev", "cannot be negative, got %s", sc.ExpectedReturnStdev)
	}

	switch sc.WithdrawalStrategy {
	case StrategyFixedReal:
		if sc.AnnualWithdrawal == nil {
			return NewConfigurationError("annual_withdrawal", "required for the %s strategy", StrategyFixedReal)
		}
		if sc.WithdrawalRate != nil {
			return NewConfigurationError("withdrawal_rate", "cannot be combined with the %s strategy", StrategyFixedReal)
		}
		if sc.AnnualWithdrawal.IsNegative() {
			return NewConfigurationError("annual_withdrawal", "cannot be negative, got %s", sc.AnnualWithdrawal)
		}
	case StrategyPercentageOfPortfolio:
		if sc.WithdrawalRate == nil {
			return NewConfigurationError("withdrawal_rate", "required for the %s strategy", StrategyPercentageOfPortfolio)
		}
		if sc.AnnualWithdrawal != nil {
			return NewConfigurationError("annual_withdrawal", "cannot be combined with the %s strategy", StrategyPercentageOfPortfolio)
		}
		if !sc.WithdrawalRate.IsPositive() || sc.WithdrawalRate.GreaterThan(decimal.NewFromInt(1)) {
			return NewConfigurationError("withdrawal_rate", "must be between 0 and 1, got %s", sc.WithdrawalRate)
		}
	default:
		return NewConfigurationError("withdrawal_strategy", "must be %q or %q, got %q",
			StrategyFixedReal, StrategyPercentageOfPortfolio, sc.WithdrawalStrategy)
	}

	return nil
}

// YearOutcome captures a single simulated year of one trial.
type YearOutcome struct {
	Year         int             `json:"year"`
	StartBalance decimal.Decimal `json:"start_balance"`
	Withdrawal   decimal.Decimal `json:"withdrawal"`
	Return       decimal.Decimal `json:"return"`
	EndBalance   decimal.Decimal `json:"end_balance"`
}

// SimulationRun is the outcome of a single Monte Carlo trial.
type SimulationRun struct {
	FinalPortfolio  decimal.Decimal `json:"final_portfolio"`
	Survived        bool            `json:"survived"`
	PortfolioLasted int             `json:"portfolio_lasted"` // years before depletion
	YearOutcomes    []YearOutcome   `json:"year_outcomes,omitempty"`
}

// SimulationResult aggregates every trial of one simulation together with the
// inputs needed to reproduce it.
type SimulationResult struct {
	Runs               []SimulationRun `json:"runs"`
	SuccessRate        decimal.Decimal `json:"success_rate"`
	NumSimulations     int             `json:"num_simulations"`
	RetirementYears    int             `json:"retirement_years"`
	InitialPortfolio   decimal.Decimal `json:"initial_portfolio"`
	WithdrawalStrategy string          `json:"withdrawal_strategy"`
	Seed               int64           `json:"seed"`
}

// FinalBalances collects each trial's ending portfolio value.
func (sr *SimulationResult) FinalBalances() []decimal.Decimal {
	balances := make([]decimal.Decimal, len(sr.Runs))
	for i, run := range sr.Runs {
		balances[i] = run.FinalPortfolio
	}
	return balances
}
