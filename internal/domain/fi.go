package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FIInputs describes the current financial position for the deterministic
// years-to-FI calculation. Net worth is signed: assets minus liabilities.
type FIInputs struct {
	CurrentNetWorth decimal.Decimal `yaml:"current_net_worth" json:"current_net_worth"`
	AnnualExpenses  decimal.Decimal `yaml:"annual_expenses" json:"annual_expenses"`
	AnnualSavings   decimal.Decimal `yaml:"annual_savings" json:"annual_savings"`
	ExpectedReturn  decimal.Decimal `yaml:"expected_return" json:"expected_return"`
	WithdrawalRate  decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`
}

// Validate rejects inputs the projection cannot run with.
func (fi *FIInputs) Validate() error {
	if !fi.WithdrawalRate.IsPositive() {
		return NewConfigurationError("withdrawal_rate", "must be positive, got %s", fi.WithdrawalRate)
	}
	if fi.ExpectedReturn.LessThan(decimalNegOne) {
		return NewConfigurationError("expected_return", "cannot be below -100%%, got %s", fi.ExpectedReturn)
	}
	return nil
}

// FIResult is the outcome of a deterministic years-to-FI projection.
// ProjectedFIDate is nil when the target is never reached.
type FIResult struct {
	FINumber        decimal.Decimal `json:"fi_number"`
	YearsToFI       Years           `json:"years_to_fi"`
	ProjectedFIDate *time.Time      `json:"projected_fi_date,omitempty"`
	CurrentProgress decimal.Decimal `json:"current_progress"` // percent of the FI number already reached
	RemainingNeeded decimal.Decimal `json:"remaining_needed"`
}

var decimalNegOne = decimal.NewFromInt(-1)
