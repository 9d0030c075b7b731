package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanConfig is the top level YAML document for a full plan run.
type PlanConfig struct {
	Household   Household          `yaml:"household" json:"household"`
	Assumptions Assumptions        `yaml:"assumptions" json:"assumptions"`
	GlidePath   GlidePathConfig    `yaml:"glide_path" json:"glide_path"`
	Simulation  SimulationSettings `yaml:"simulation" json:"simulation"`
	Scenarios   []Scenario         `yaml:"scenarios" json:"scenarios"`
}

// Assumptions holds the baseline market and planning rates shared by every
// scenario. Rates are decimal fractions: 0.07 means 7% per year.
type Assumptions struct {
	ExpectedReturnMean  decimal.Decimal `yaml:"expected_return_mean" json:"expected_return_mean"`
	ExpectedReturnStdev decimal.Decimal `yaml:"expected_return_stdev" json:"expected_return_stdev"`
	ExpectedReturn      decimal.Decimal `yaml:"expected_return" json:"expected_return"`
	InflationRate       decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	WithdrawalRate      decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`
	IncomeGrowthRate    decimal.Decimal `yaml:"income_growth_rate" json:"income_growth_rate"`
	StockGrowthRate     decimal.Decimal `yaml:"stock_growth_rate" json:"stock_growth_rate"`
	BondGrowthRate      decimal.Decimal `yaml:"bond_growth_rate" json:"bond_growth_rate"`
	ProjectionYears     int             `yaml:"projection_years,omitempty" json:"projection_years,omitempty"`
}

// GenerateAssumptions creates dynamic assumptions list from actual config values
func (a *Assumptions) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Market return: %.1f%% mean with %.1f%% volatility", a.ExpectedReturnMean.Mul(decimalHundred).InexactFloat64(), a.ExpectedReturnStdev.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Deterministic growth rate: %.1f%% annually", a.ExpectedReturn.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Inflation: %.1f%% annually", a.InflationRate.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Safe withdrawal rate: %.1f%% of the portfolio", a.WithdrawalRate.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Income growth: %.1f%% annually", a.IncomeGrowthRate.Mul(decimalHundred).InexactFloat64()),
		fmt.Sprintf("Stock returns %.1f%%, bond returns %.1f%% annually", a.StockGrowthRate.Mul(decimalHundred).InexactFloat64(), a.BondGrowthRate.Mul(decimalHundred).InexactFloat64()),
	}
}

// SimulationSettings configures the Monte Carlo block of a plan file.
type SimulationSettings struct {
	NumSimulations     int              `yaml:"num_simulations" json:"num_simulations"`
	RetirementYears    int              `yaml:"retirement_years" json:"retirement_years"`
	InitialPortfolio   decimal.Decimal  `yaml:"initial_portfolio" json:"initial_portfolio"`
	WithdrawalStrategy string           `yaml:"withdrawal_strategy" json:"withdrawal_strategy"`
	AnnualWithdrawal   *decimal.Decimal `yaml:"annual_withdrawal,omitempty" json:"annual_withdrawal,omitempty"`
	WithdrawalRate     *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	RandomSeed         *int64           `yaml:"random_seed,omitempty" json:"random_seed,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for SimulationSettings so
// the optional decimal fields accept both quoted and bare numbers.
func (ss *SimulationSettings) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		NumSimulations     int             `yaml:"num_simulations"`
		RetirementYears    int             `yaml:"retirement_years"`
		InitialPortfolio   decimal.Decimal `yaml:"initial_portfolio"`
		WithdrawalStrategy string          `yaml:"withdrawal_strategy"`
		AnnualWithdrawal   *string         `yaml:"annual_withdrawal,omitempty"`
		WithdrawalRate     *string         `yaml:"withdrawal_rate,omitempty"`
		RandomSeed         *int64          `yaml:"random_seed,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	ss.NumSimulations = aux.NumSimulations
	ss.RetirementYears = aux.RetirementYears
	ss.InitialPortfolio = aux.InitialPortfolio
	ss.WithdrawalStrategy = aux.WithdrawalStrategy
	ss.RandomSeed = aux.RandomSeed

	var err error
	if ss.AnnualWithdrawal, err = decimalFromStringPtr(aux.AnnualWithdrawal); err != nil {
		return err
	}
	if ss.WithdrawalRate, err = decimalFromStringPtr(aux.WithdrawalRate); err != nil {
		return err
	}
	return nil
}

// Scenario is a named what-if layered over the base assumptions.
type Scenario struct {
	Name      string            `yaml:"name" json:"name"`
	Overrides ScenarioOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// ScenarioOverrides holds the values a scenario may replace. A nil field
// inherits the base value.
type ScenarioOverrides struct {
	ExpectedReturnMean  *decimal.Decimal `yaml:"expected_return_mean,omitempty" json:"expected_return_mean,omitempty"`
	ExpectedReturnStdev *decimal.Decimal `yaml:"expected_return_stdev,omitempty" json:"expected_return_stdev,omitempty"`
	ExpectedReturn      *decimal.Decimal `yaml:"expected_return,omitempty" json:"expected_return,omitempty"`
	InflationRate       *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	WithdrawalRate      *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	IncomeGrowthRate    *decimal.Decimal `yaml:"income_growth_rate,omitempty" json:"income_growth_rate,omitempty"`
	StockGrowthRate     *decimal.Decimal `yaml:"stock_growth_rate,omitempty" json:"stock_growth_rate,omitempty"`
	BondGrowthRate      *decimal.Decimal `yaml:"bond_growth_rate,omitempty" json:"bond_growth_rate,omitempty"`
	InitialPortfolio    *decimal.Decimal `yaml:"initial_portfolio,omitempty" json:"initial_portfolio,omitempty"`
	AnnualSavings       *decimal.Decimal `yaml:"annual_savings,omitempty" json:"annual_savings,omitempty"`
	AnnualExpenses      *decimal.Decimal `yaml:"annual_expenses,omitempty" json:"annual_expenses,omitempty"`
	RetirementYears     *int             `yaml:"retirement_years,omitempty" json:"retirement_years,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for ScenarioOverrides so
// override rates accept both quoted and bare numbers.
func (so *ScenarioOverrides) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		ExpectedReturnMean  *string `yaml:"expected_return_mean,omitempty"`
		ExpectedReturnStdev *string `yaml:"expected_return_stdev,omitempty"`
		ExpectedReturn      *string `yaml:"expected_return,omitempty"`
		InflationRate       *string `yaml:"inflation_rate,omitempty"`
		WithdrawalRate      *string `yaml:"withdrawal_rate,omitempty"`
		IncomeGrowthRate    *string `yaml:"income_growth_rate,omitempty"`
		StockGrowthRate     *string `yaml:"stock_growth_rate,omitempty"`
		BondGrowthRate      *string `yaml:"bond_growth_rate,omitempty"`
		InitialPortfolio    *string `yaml:"initial_portfolio,omitempty"`
		AnnualSavings       *string `yaml:"annual_savings,omitempty"`
		AnnualExpenses      *string `yaml:"annual_expenses,omitempty"`
		RetirementYears     *int    `yaml:"retirement_years,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	so.RetirementYears = aux.RetirementYears

	fields := []struct {
		dst **decimal.Decimal
		src *string
	}{
		{&so.ExpectedReturnMean, aux.ExpectedReturnMean},
		{&so.ExpectedReturnStdev, aux.ExpectedReturnStdev},
		{&so.ExpectedReturn, aux.ExpectedReturn},
		{&so.InflationRate, aux.InflationRate},
		{&so.WithdrawalRate, aux.WithdrawalRate},
		{&so.IncomeGrowthRate, aux.IncomeGrowthRate},
		{&so.StockGrowthRate, aux.StockGrowthRate},
		{&so.BondGrowthRate, aux.BondGrowthRate},
		{&so.InitialPortfolio, aux.InitialPortfolio},
		{&so.AnnualSavings, aux.AnnualSavings},
		{&so.AnnualExpenses, aux.AnnualExpenses},
	}
	for _, f := range fields {
		val, err := decimalFromStringPtr(f.src)
		if err != nil {
			return err
		}
		*f.dst = val
	}
	return nil
}

// ApplyTo layers the overrides over base assumptions.
func (so *ScenarioOverrides) ApplyTo(base Assumptions) Assumptions {
	out := base
	if so.ExpectedReturnMean != nil {
		out.ExpectedReturnMean = *so.ExpectedReturnMean
	}
	if so.ExpectedReturnStdev != nil {
		out.ExpectedReturnStdev = *so.ExpectedReturnStdev
	}
	if so.ExpectedReturn != nil {
		out.ExpectedReturn = *so.ExpectedReturn
	}
	if so.InflationRate != nil {
		out.InflationRate = *so.InflationRate
	}
	if so.WithdrawalRate != nil {
		out.WithdrawalRate = *so.WithdrawalRate
	}
	if so.IncomeGrowthRate != nil {
		out.IncomeGrowthRate = *so.IncomeGrowthRate
	}
	if so.StockGrowthRate != nil {
		out.StockGrowthRate = *so.StockGrowthRate
	}
	if so.BondGrowthRate != nil {
		out.BondGrowthRate = *so.BondGrowthRate
	}
	return out
}

// ApplyToHousehold layers the household level overrides.
func (so *ScenarioOverrides) ApplyToHousehold(base Household) Household {
	out := base
	if so.AnnualSavings != nil {
		out.AnnualSavings = *so.AnnualSavings
	}
	if so.AnnualExpenses != nil {
		out.AnnualExpenses = *so.AnnualExpenses
	}
	return out
}

// ApplyToSimulation layers the simulation level overrides.
func (so *ScenarioOverrides) ApplyToSimulation(base SimulationSettings) SimulationSettings {
	out := base
	if so.InitialPortfolio != nil {
		out.InitialPortfolio = *so.InitialPortfolio
	}
	if so.RetirementYears != nil {
		out.RetirementYears = *so.RetirementYears
	}
	return out
}

// ScenarioReport bundles every calculation for one scenario.
type ScenarioReport struct {
	Name       string            `json:"name"`
	Simulation *SimulationResult `json:"simulation,omitempty"`
	FI         *FIResult         `json:"fi,omitempty"`
	Projection *ProjectionResult `json:"projection,omitempty"`
}

// PlanComparison is the full output of a plan run across all scenarios.
type PlanComparison struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Scenarios   []ScenarioReport `json:"scenarios"`
	Assumptions []string         `json:"assumptions"`
}

func decimalFromStringPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	val, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

var decimalHundred = decimal.NewFromInt(100)
