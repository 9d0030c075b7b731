package calculation

import (
	"context"
	"fmt"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates all plan calculations
type CalculationEngine struct {
	Simulator *MonteCarloSimulator
	FI        *FIProjector
	GlidePath *GlidePathProjector
	Debug     bool // Enable debug output for detailed calculations
	Logger    Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Simulator: NewMonteCarloSimulator(),
		FI:        NewFIProjector(),
		GlidePath: NewGlidePathProjector(),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario calculates a complete report for one scenario: the Monte Carlo
// simulation, the deterministic years-to-FI projection, and the glide path
// projection when the plan configures one.
func (ce *CalculationEngine) RunScenario(ctx context.Context, plan *domain.PlanConfig, scenario *domain.Scenario) (*domain.ScenarioReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assumptions := scenario.Overrides.ApplyTo(plan.Assumptions)
	household := scenario.Overrides.ApplyToHousehold(plan.Household)
	settings := scenario.Overrides.ApplyToSimulation(plan.Simulation)

	// Validate inflation is reasonable (allow deflation but cap extreme values)
	if assumptions.InflationRate.LessThan(decimal.NewFromFloat(-0.10)) || assumptions.InflationRate.GreaterThan(decimal.NewFromFloat(0.20)) {
		return nil, fmt.Errorf("inflation rate must be between -10%% and 20%%, got %s%%",
			assumptions.InflationRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
	}

	report := &domain.ScenarioReport{Name: scenario.Name}

	fiInputs := domain.FIInputs{
		CurrentNetWorth: household.CurrentNetWorth,
		AnnualExpenses:  household.AnnualExpenses,
		AnnualSavings:   household.AnnualSavings,
		ExpectedReturn:  assumptions.ExpectedReturn,
		WithdrawalRate:  assumptions.WithdrawalRate,
	}
	fi, err := ce.FI.CalculateYearsToFI(fiInputs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: years-to-FI projection failed: %w", scenario.Name, err)
	}
	report.FI = fi
	if ce.Debug {
		ce.Logger.Debugf("Scenario %s: FI number $%s, years to FI %s",
			scenario.Name, fi.FINumber.StringFixed(2), fi.YearsToFI)
	}

	if settings.NumSimulations > 0 {
		simConfig := buildSimulationConfig(settings, assumptions)
		sim, err := ce.Simulator.Run(simConfig)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: simulation failed: %w", scenario.Name, err)
		}
		report.Simulation = sim
		if ce.Debug {
			ce.Logger.Debugf("Scenario %s: %d trials, success rate %s, seed %d",
				scenario.Name, sim.NumSimulations, sim.SuccessRate.StringFixed(4), sim.Seed)
		}
	}

	if plan.GlidePath.EndAge > 0 {
		projInputs := domain.ProjectionInputs{
			CurrentAge:            household.AgeAt(nowFunc()),
			CurrentNetWorth:       household.CurrentNetWorth,
			InitialAnnualSavings:  household.AnnualSavings,
			InitialAnnualExpenses: household.AnnualExpenses,
			IncomeGrowthRate:      assumptions.IncomeGrowthRate,
			StockGrowthRate:       assumptions.StockGrowthRate,
			BondGrowthRate:        assumptions.BondGrowthRate,
			InflationRate:         assumptions.InflationRate,
			WithdrawalRate:        assumptions.WithdrawalRate,
			GlidePath:             plan.GlidePath,
			ProjectionYears:       assumptions.ProjectionYears,
		}
		projection, err := ce.GlidePath.CalculateFIProjection(projInputs)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: glide path projection failed: %w", scenario.Name, err)
		}
		report.Projection = projection
		if ce.Debug {
			ce.Logger.Debugf("Scenario %s: glide path years to FI %s over %d points",
				scenario.Name, projection.YearsToFI, len(projection.Points))
		}
	}

	return report, nil
}

// buildSimulationConfig merges plan level simulation settings with the market
// assumptions a scenario resolved to.
func buildSimulationConfig(settings domain.SimulationSettings, assumptions domain.Assumptions) domain.SimulationConfig {
	return domain.SimulationConfig{
		NumSimulations:      settings.NumSimulations,
		RetirementYears:     settings.RetirementYears,
		InitialPortfolio:    settings.InitialPortfolio,
		WithdrawalStrategy:  settings.WithdrawalStrategy,
		AnnualWithdrawal:    settings.AnnualWithdrawal,
		WithdrawalRate:      settings.WithdrawalRate,
		ExpectedReturnMean:  assumptions.ExpectedReturnMean,
		ExpectedReturnStdev: assumptions.ExpectedReturnStdev,
		InflationRate:       assumptions.InflationRate,
		RandomSeed:          settings.RandomSeed,
	}
}

// RunPlan runs every scenario in the plan and returns a comparison
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan *domain.PlanConfig) (*domain.PlanComparison, error) {
	scenarios := plan.Scenarios
	if len(scenarios) == 0 {
		scenarios = []domain.Scenario{{Name: "base"}}
	}

	reports := make([]domain.ScenarioReport, len(scenarios))
	for i, scenario := range scenarios {
		report, err := ce.RunScenario(ctx, plan, &scenario)
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		reports[i] = *report
	}

	return &domain.PlanComparison{
		GeneratedAt: nowFunc(),
		Scenarios:   reports,
		Assumptions: plan.Assumptions.GenerateAssumptions(),
	}, nil
}
