package calculation

import (
	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// WithdrawalPolicy removes one year's spending from a portfolio balance.
// Policies are stateless and safe to share across concurrent trials; the
// simulator owns growth, a policy only withdraws.
type WithdrawalPolicy interface {
	// Apply withdraws from balance for the given zero-based retirement year
	// and returns the remaining balance plus the amount actually withdrawn.
	Apply(balance decimal.Decimal, yearIndex int) (newBalance, withdrawn decimal.Decimal)

	// Name returns the strategy tag the policy was built from.
	Name() string
}

// NewWithdrawalPolicy resolves the configured strategy tag. The policy is
// built once per run, never per trial or per year.
func NewWithdrawalPolicy(cfg domain.SimulationConfig) (WithdrawalPolicy, error) {
	switch cfg.WithdrawalStrategy {
	case domain.StrategyFixedReal:
		if cfg.AnnualWithdrawal == nil {
			return nil, domain.NewConfigurationError("annual_withdrawal", "required for the %s strategy", domain.StrategyFixedReal)
		}
		return NewFixedRealWithdrawal(*cfg.AnnualWithdrawal, cfg.InflationRate), nil
	case domain.StrategyPercentageOfPortfolio:
		if cfg.WithdrawalRate == nil {
			return nil, domain.NewConfigurationError("withdrawal_rate", "required for the %s strategy", domain.StrategyPercentageOfPortfolio)
		}
		return NewPercentageOfPortfolioWithdrawal(*cfg.WithdrawalRate), nil
	default:
		return nil, domain.NewConfigurationError("withdrawal_strategy", "must be %q or %q, got %q",
			domain.StrategyFixedReal, domain.StrategyPercentageOfPortfolio, cfg.WithdrawalStrategy)
	}
}

// FixedRealWithdrawal implements constant purchasing power spending: a first
// year amount grown by inflation every year thereafter.
type FixedRealWithdrawal struct {
	Amount        decimal.Decimal
	InflationRate decimal.Decimal
}

// NewFixedRealWithdrawal creates a fixed real withdrawal policy.
func NewFixedRealWithdrawal(amount, inflationRate decimal.Decimal) *FixedRealWithdrawal {
	return &FixedRealWithdrawal{Amount: amount, InflationRate: inflationRate}
}

// Apply withdraws the inflation-grown amount, capped at the balance.
func (w *FixedRealWithdrawal) Apply(balance decimal.Decimal, yearIndex int) (decimal.Decimal, decimal.Decimal) {
	inflationFactor := onePlus(w.InflationRate)
	requested := w.Amount.Mul(inflationFactor.Pow(decimal.NewFromInt(int64(yearIndex))))
	return drawDown(balance, requested)
}

func (w *FixedRealWithdrawal) Name() string {
	return domain.StrategyFixedReal
}

// PercentageOfPortfolioWithdrawal withdraws a fixed fraction of whatever the
// balance is when the year starts. It shrinks a portfolio but never empties
// it on its own.
type PercentageOfPortfolioWithdrawal struct {
	Rate decimal.Decimal
}

// NewPercentageOfPortfolioWithdrawal creates a percentage of portfolio policy.
func NewPercentageOfPortfolioWithdrawal(rate decimal.Decimal) *PercentageOfPortfolioWithdrawal {
	return &PercentageOfPortfolioWithdrawal{Rate: rate}
}

// Apply withdraws rate times the current balance.
func (w *PercentageOfPortfolioWithdrawal) Apply(balance decimal.Decimal, yearIndex int) (decimal.Decimal, decimal.Decimal) {
	return drawDown(balance, balance.Mul(w.Rate))
}

func (w *PercentageOfPortfolioWithdrawal) Name() string {
	return domain.StrategyPercentageOfPortfolio
}

// drawDown takes requested out of balance without going below zero.
func drawDown(balance, requested decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if requested.IsNegative() {
		requested = decimal.Zero
	}
	if requested.GreaterThan(balance) {
		return decimal.Zero, balance
	}
	return balance.Sub(requested), requested
}
