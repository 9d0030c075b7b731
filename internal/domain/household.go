package domain

import (
	"time"

	"github.com/firego/fire-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Household carries the financial position every calculation starts from.
// Net worth is signed: assets minus liabilities.
type Household struct {
	CurrentAge      int             `yaml:"current_age,omitempty" json:"current_age,omitempty"`
	BirthDate       *time.Time      `yaml:"birth_date,omitempty" json:"birth_date,omitempty"`
	CurrentNetWorth decimal.Decimal `yaml:"current_net_worth" json:"current_net_worth"`
	AnnualIncome    decimal.Decimal `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`
	AnnualExpenses  decimal.Decimal `yaml:"annual_expenses" json:"annual_expenses"`
	AnnualSavings   decimal.Decimal `yaml:"annual_savings" json:"annual_savings"`
}

// AgeAt resolves the household age, preferring an explicit current_age over
// the birth date.
func (h *Household) AgeAt(at time.Time) int {
	if h.CurrentAge > 0 {
		return h.CurrentAge
	}
	if h.BirthDate != nil {
		return dateutil.Age(*h.BirthDate, at)
	}
	return 0
}

// Validate rejects household inputs no plan can run with.
func (h *Household) Validate() error {
	if h.CurrentAge < 0 {
		return NewConfigurationError("household.current_age", "cannot be negative, got %d", h.CurrentAge)
	}
	if h.CurrentAge == 0 && h.BirthDate == nil {
		return NewConfigurationError("household", "either current_age or birth_date is required")
	}
	if h.AnnualExpenses.IsNegative() {
		return NewConfigurationError("household.annual_expenses", "cannot be negative, got %s", h.AnnualExpenses)
	}
	return nil
}
