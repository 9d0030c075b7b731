package config

import (
	"fmt"
	"os"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of plan configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlanConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var plan domain.PlanConfig
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&plan)

	if err := ip.ValidatePlanConfig(&plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &plan, nil
}

// applyDefaults fills the gaps a plan file may leave open. A plan without
// scenarios still runs once, unmodified.
func (ip *InputParser) applyDefaults(plan *domain.PlanConfig) {
	if len(plan.Scenarios) == 0 {
		plan.Scenarios = []domain.Scenario{{Name: "base"}}
	}
}

// ValidatePlanConfig validates the loaded plan before anything runs with it
func (ip *InputParser) ValidatePlanConfig(plan *domain.PlanConfig) error {
	if err := plan.Household.Validate(); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}

	if err := ip.validateAssumptions(&plan.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}

	// The glide path block is optional; an end age marks it configured
	if plan.GlidePath.EndAge > 0 {
		if err := plan.GlidePath.Validate(); err != nil {
			return fmt.Errorf("glide path validation failed: %w", err)
		}
	}

	// The simulation block is optional; a trial count marks it configured
	if plan.Simulation.NumSimulations > 0 {
		if err := ip.validateSimulationSettings(&plan.Simulation); err != nil {
			return fmt.Errorf("simulation validation failed: %w", err)
		}
	}

	seen := make(map[string]bool)
	for i, scenario := range plan.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// validateAssumptions validates the shared market and planning rates
func (ip *InputParser) validateAssumptions(assumptions *domain.Assumptions) error {
	if assumptions.ExpectedReturnStdev.LessThan(decimal.Zero) {
		return fmt.Errorf("expected return stdev cannot be negative")
	}
	if assumptions.ExpectedReturnMean.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("expected return mean cannot be less than -100%%")
	}
	if assumptions.ExpectedReturn.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("expected return cannot be less than -100%%")
	}
	if assumptions.StockGrowthRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("stock growth rate cannot be less than -100%%")
	}
	if assumptions.BondGrowthRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("bond growth rate cannot be less than -100%%")
	}
	if assumptions.IncomeGrowthRate.LessThan(decimal.NewFromFloat(-1.0)) {
		return fmt.Errorf("income growth rate cannot be less than -100%%")
	}
	if assumptions.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) {
		return fmt.Errorf("inflation rate cannot be less than -10%% (extreme deflation)")
	}
	if assumptions.WithdrawalRate.LessThanOrEqual(decimal.Zero) || assumptions.WithdrawalRate.GreaterThan(decimal.NewFromFloat(1.0)) {
		return fmt.Errorf("withdrawal rate must be between 0 and 1")
	}
	if assumptions.ProjectionYears < 0 || assumptions.ProjectionYears > 200 {
		return fmt.Errorf("projection years must be between 0 and 200")
	}
	return nil
}

// validateSimulationSettings validates the Monte Carlo block
func (ip *InputParser) validateSimulationSettings(settings *domain.SimulationSettings) error {
	if settings.NumSimulations > 1000000 {
		return fmt.Errorf("num simulations must be between 1 and 1000000")
	}
	if settings.RetirementYears < 0 {
		return fmt.Errorf("retirement years cannot be negative")
	}
	if settings.InitialPortfolio.LessThan(decimal.Zero) {
		return fmt.Errorf("initial portfolio cannot be negative")
	}

	switch settings.WithdrawalStrategy {
	case domain.StrategyFixedReal:
		if settings.AnnualWithdrawal == nil {
			return fmt.Errorf("annual withdrawal is required for the %s strategy", domain.StrategyFixedReal)
		}
		if settings.AnnualWithdrawal.LessThan(decimal.Zero) {
			return fmt.Errorf("annual withdrawal cannot be negative")
		}
		if settings.WithdrawalRate != nil {
			return fmt.Errorf("withdrawal rate cannot be combined with the %s strategy", domain.StrategyFixedReal)
		}
	case domain.StrategyPercentageOfPortfolio:
		if settings.WithdrawalRate == nil {
			return fmt.Errorf("withdrawal rate is required for the %s strategy", domain.StrategyPercentageOfPortfolio)
		}
		if settings.WithdrawalRate.LessThanOrEqual(decimal.Zero) || settings.WithdrawalRate.GreaterThan(decimal.NewFromFloat(1.0)) {
			return fmt.Errorf("withdrawal rate must be between 0 and 1")
		}
		if settings.AnnualWithdrawal != nil {
			return fmt.Errorf("annual withdrawal cannot be combined with the %s strategy", domain.StrategyPercentageOfPortfolio)
		}
	default:
		return fmt.Errorf("withdrawal strategy must be %q or %q", domain.StrategyFixedReal, domain.StrategyPercentageOfPortfolio)
	}

	return nil
}

// validateScenario validates a single scenario block
func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	o := scenario.Overrides
	if o.WithdrawalRate != nil && (o.WithdrawalRate.LessThanOrEqual(decimal.Zero) || o.WithdrawalRate.GreaterThan(decimal.NewFromFloat(1.0))) {
		return fmt.Errorf("withdrawal rate override must be between 0 and 1")
	}
	if o.ExpectedReturnStdev != nil && o.ExpectedReturnStdev.LessThan(decimal.Zero) {
		return fmt.Errorf("expected return stdev override cannot be negative")
	}
	if o.InitialPortfolio != nil && o.InitialPortfolio.LessThan(decimal.Zero) {
		return fmt.Errorf("initial portfolio override cannot be negative")
	}
	if o.AnnualExpenses != nil && o.AnnualExpenses.LessThan(decimal.Zero) {
		return fmt.Errorf("annual expenses override cannot be negative")
	}
	if o.RetirementYears != nil && *o.RetirementYears < 0 {
		return fmt.Errorf("retirement years override cannot be negative")
	}

	return nil
}

// CreateExamplePlan creates a complete example plan configuration
func (ip *InputParser) CreateExamplePlan() *domain.PlanConfig {
	withdrawal := decimal.NewFromInt(40000)
	return &domain.PlanConfig{
		Household: domain.Household{
			CurrentAge:      35,
			CurrentNetWorth: decimal.NewFromInt(250000),
			AnnualIncome:    decimal.NewFromInt(120000),
			AnnualExpenses:  decimal.NewFromInt(48000),
			AnnualSavings:   decimal.NewFromInt(30000),
		},
		Assumptions: domain.Assumptions{
			ExpectedReturnMean:  decimal.NewFromFloat(0.07),
			ExpectedReturnStdev: decimal.NewFromFloat(0.15),
			ExpectedReturn:      decimal.NewFromFloat(0.05),
			InflationRate:       decimal.NewFromFloat(0.03),
			WithdrawalRate:      decimal.NewFromFloat(0.04),
			IncomeGrowthRate:    decimal.NewFromFloat(0.03),
			StockGrowthRate:     decimal.NewFromFloat(0.08),
			BondGrowthRate:      decimal.NewFromFloat(0.035),
			ProjectionYears:     40,
		},
		GlidePath: domain.GlidePathConfig{
			StartAge:             30,
			EndAge:               60,
			StartStockAllocation: decimal.NewFromFloat(0.90),
			EndStockAllocation:   decimal.NewFromFloat(0.50),
		},
		Simulation: domain.SimulationSettings{
			NumSimulations:     1000,
			RetirementYears:    30,
			InitialPortfolio:   decimal.NewFromInt(1000000),
			WithdrawalStrategy: domain.StrategyFixedReal,
			AnnualWithdrawal:   &withdrawal,
		},
		Scenarios: []domain.Scenario{
			{
				Name: "base",
			},
			{
				Name: "market downturn",
				Overrides: domain.ScenarioOverrides{
					ExpectedReturnMean:  decimalPtr("0.05"),
					ExpectedReturnStdev: decimalPtr("0.18"),
					ExpectedReturn:      decimalPtr("0.03"),
				},
			},
			{
				Name: "lean fire",
				Overrides: domain.ScenarioOverrides{
					AnnualExpenses: decimalPtr("36000"),
					AnnualSavings:  decimalPtr("42000"),
				},
			},
		},
	}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
