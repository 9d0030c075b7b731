package domain

import (
	"github.com/shopspring/decimal"
)

// GlidePathConfig describes a linear shift from stocks toward bonds across an
// age range. Outside the range the endpoint allocations hold.
type GlidePathConfig struct {
	StartAge             int             `yaml:"start_age" json:"start_age"`
	EndAge               int             `yaml:"end_age" json:"end_age"`
	StartStockAllocation decimal.Decimal `yaml:"start_stock_allocation" json:"start_stock_allocation"`
	EndStockAllocation   decimal.Decimal `yaml:"end_stock_allocation" json:"end_stock_allocation"`
}

// Validate rejects glide paths with an empty age range or allocations outside
// the unit interval.
func (gp *GlidePathConfig) Validate() error {
	if gp.StartAge >= gp.EndAge {
		return NewConfigurationError("glide_path", "start_age must be before end_age, got %d >= %d", gp.StartAge, gp.EndAge)
	}
	if gp.StartStockAllocation.IsNegative() || gp.StartStockAllocation.GreaterThan(decimalOne) {
		return NewConfigurationError("glide_path.start_stock_allocation", "must be between 0 and 1, got %s", gp.StartStockAllocation)
	}
	if gp.EndStockAllocation.IsNegative() || gp.EndStockAllocation.GreaterThan(decimalOne) {
		return NewConfigurationError("glide_path.end_stock_allocation", "must be between 0 and 1, got %s", gp.EndStockAllocation)
	}
	return nil
}

// ProjectionInputs drives the age-aware deterministic FI projection.
type ProjectionInputs struct {
	CurrentAge            int             `yaml:"current_age" json:"current_age"`
	CurrentNetWorth       decimal.Decimal `yaml:"current_net_worth" json:"current_net_worth"`
	InitialAnnualSavings  decimal.Decimal `yaml:"initial_annual_savings" json:"initial_annual_savings"`
	InitialAnnualExpenses decimal.Decimal `yaml:"initial_annual_expenses" json:"initial_annual_expenses"`
	IncomeGrowthRate      decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	StockGrowthRate       decimal.Decimal `yaml:"stock_growth_rate" json:"stock_growth_rate"`
	BondGrowthRate        decimal.Decimal `yaml:"bond_growth_rate" json:"bond_growth_rate"`
	InflationRate         decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	WithdrawalRate        decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`
	GlidePath             GlidePathConfig `yaml:"glide_path" json:"glide_path"`
	ProjectionYears       int             `yaml:"projection_years,omitempty" json:"projection_years,omitempty"`
}

// Validate rejects projection inputs that cannot be iterated.
func (pi *ProjectionInputs) Validate() error {
	if pi.CurrentAge < 0 {
		return NewConfigurationError("current_age", "cannot be negative, got %d", pi.CurrentAge)
	}
	if pi.ProjectionYears < 0 {
		return NewConfigurationError("projection_years", "cannot be negative, got %d", pi.ProjectionYears)
	}
	if !pi.WithdrawalRate.IsPositive() {
		return NewConfigurationError("withdrawal_rate", "must be positive, got %s", pi.WithdrawalRate)
	}
	if pi.StockGrowthRate.LessThan(decimalNegOne) {
		return NewConfigurationError("stock_growth_rate", "cannot be below -100%%, got %s", pi.StockGrowthRate)
	}
	if pi.BondGrowthRate.LessThan(decimalNegOne) {
		return NewConfigurationError("bond_growth_rate", "cannot be below -100%%, got %s", pi.BondGrowthRate)
	}
	if pi.IncomeGrowthRate.LessThan(decimalNegOne) {
		return NewConfigurationError("income_growth_rate", "cannot be below -100%%, got %s", pi.IncomeGrowthRate)
	}
	return pi.GlidePath.Validate()
}

// ProjectionPoint is one year of the deterministic projection.
type ProjectionPoint struct {
	Year            int             `json:"year"`
	Age             int             `json:"age"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	Savings         decimal.Decimal `json:"savings"`
	StockAllocation decimal.Decimal `json:"stock_allocation"`
	BlendedReturn   decimal.Decimal `json:"blended_return"`
}

// ProjectionResult is the year-by-year projection plus the FI crossing.
type ProjectionResult struct {
	Points    []ProjectionPoint `json:"points"`
	FINumber  decimal.Decimal   `json:"fi_number"`
	YearsToFI Years             `json:"years_to_fi"`
}

// FIPoint returns the first projection point at or past the FI number, or nil
// when the horizon never crosses it.
func (pr *ProjectionResult) FIPoint() *ProjectionPoint {
	if !pr.YearsToFI.Reachable() {
		return nil
	}
	idx := int(pr.YearsToFI)
	if idx < 0 || idx >= len(pr.Points) {
		return nil
	}
	return &pr.Points[idx]
}

var decimalOne = decimal.NewFromInt(1)
