package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestHousehold_AgeAt(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("explicit age wins", func(t *testing.T) {
		birthDate := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
		h := &Household{CurrentAge: 40, BirthDate: &birthDate}
		assert.Equal(t, 40, h.AgeAt(at))
	})

	t.Run("birth date fallback", func(t *testing.T) {
		birthDate := time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)
		h := &Household{BirthDate: &birthDate}
		assert.Equal(t, 34, h.AgeAt(at))
	})

	t.Run("neither set", func(t *testing.T) {
		h := &Household{}
		assert.Equal(t, 0, h.AgeAt(at))
	})
}

func TestHousehold_Validate(t *testing.T) {
	valid := Household{
		CurrentAge:      35,
		CurrentNetWorth: decimal.NewFromInt(200000),
		AnnualExpenses:  decimal.NewFromInt(40000),
		AnnualSavings:   decimal.NewFromInt(30000),
	}
	assert.NoError(t, valid.Validate())

	missing := Household{CurrentNetWorth: decimal.NewFromInt(200000)}
	assert.Error(t, missing.Validate())

	negExpenses := valid
	negExpenses.AnnualExpenses = decimal.NewFromInt(-1)
	assert.Error(t, negExpenses.Validate())
}

func TestSimulationSettings_UnmarshalYAML(t *testing.T) {
	// Bare numbers and quoted strings both have to parse for the optional
	// decimal fields.
	data := `
num_simulations: 1000
retirement_years: 30
initial_portfolio: "1000000"
withdrawal_strategy: fixed_real
annual_withdrawal: 40000
random_seed: 42
`
	var ss SimulationSettings
	err := yaml.Unmarshal([]byte(data), &ss)
	assert.NoError(t, err)
	assert.Equal(t, 1000, ss.NumSimulations)
	assert.Equal(t, 30, ss.RetirementYears)
	assert.True(t, ss.InitialPortfolio.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, StrategyFixedReal, ss.WithdrawalStrategy)
	if assert.NotNil(t, ss.AnnualWithdrawal) {
		assert.True(t, ss.AnnualWithdrawal.Equal(decimal.NewFromInt(40000)))
	}
	assert.Nil(t, ss.WithdrawalRate)
	if assert.NotNil(t, ss.RandomSeed) {
		assert.Equal(t, int64(42), *ss.RandomSeed)
	}
}

func TestSimulationSettings_UnmarshalYAML_InvalidDecimal(t *testing.T) {
	data := `
num_simulations: 10
withdrawal_strategy: fixed_real
annual_withdrawal: not-a-number
`
	var ss SimulationSettings
	err := yaml.Unmarshal([]byte(data), &ss)
	assert.Error(t, err)
}

func TestScenarioOverrides_UnmarshalYAML(t *testing.T) {
	data := `
name: pessimistic
overrides:
  expected_return_mean: 0.03
  expected_return_stdev: "0.18"
  annual_savings: 20000
  retirement_years: 40
`
	var sc Scenario
	err := yaml.Unmarshal([]byte(data), &sc)
	assert.NoError(t, err)
	assert.Equal(t, "pessimistic", sc.Name)
	if assert.NotNil(t, sc.Overrides.ExpectedReturnMean) {
		assert.True(t, sc.Overrides.ExpectedReturnMean.Equal(decimal.NewFromFloat(0.03)))
	}
	if assert.NotNil(t, sc.Overrides.ExpectedReturnStdev) {
		assert.True(t, sc.Overrides.ExpectedReturnStdev.Equal(decimal.NewFromFloat(0.18)))
	}
	if assert.NotNil(t, sc.Overrides.AnnualSavings) {
		assert.True(t, sc.Overrides.AnnualSavings.Equal(decimal.NewFromInt(20000)))
	}
	if assert.NotNil(t, sc.Overrides.RetirementYears) {
		assert.Equal(t, 40, *sc.Overrides.RetirementYears)
	}
	assert.Nil(t, sc.Overrides.InflationRate)
}

func TestScenarioOverrides_Apply(t *testing.T) {
	base := Assumptions{
		ExpectedReturnMean:  decimal.NewFromFloat(0.07),
		ExpectedReturnStdev: decimal.NewFromFloat(0.15),
		ExpectedReturn:      decimal.NewFromFloat(0.05),
		InflationRate:       decimal.NewFromFloat(0.03),
		WithdrawalRate:      decimal.NewFromFloat(0.04),
	}
	mean := decimal.NewFromFloat(0.04)
	overrides := ScenarioOverrides{ExpectedReturnMean: &mean}

	merged := overrides.ApplyTo(base)
	assert.True(t, merged.ExpectedReturnMean.Equal(mean))
	// Untouched fields inherit the base values.
	assert.True(t, merged.ExpectedReturnStdev.Equal(base.ExpectedReturnStdev))
	assert.True(t, merged.InflationRate.Equal(base.InflationRate))

	household := Household{
		AnnualSavings:  decimal.NewFromInt(30000),
		AnnualExpenses: decimal.NewFromInt(40000),
	}
	savings := decimal.NewFromInt(10000)
	hhOverrides := ScenarioOverrides{AnnualSavings: &savings}
	mergedHH := hhOverrides.ApplyToHousehold(household)
	assert.True(t, mergedHH.AnnualSavings.Equal(savings))
	assert.True(t, mergedHH.AnnualExpenses.Equal(household.AnnualExpenses))

	settings := SimulationSettings{RetirementYears: 30, InitialPortfolio: decimal.NewFromInt(1000000)}
	years := 45
	simOverrides := ScenarioOverrides{RetirementYears: &years}
	mergedSim := simOverrides.ApplyToSimulation(settings)
	assert.Equal(t, 45, mergedSim.RetirementYears)
	assert.True(t, mergedSim.InitialPortfolio.Equal(settings.InitialPortfolio))
}

func TestAssumptions_GenerateAssumptions(t *testing.T) {
	a := Assumptions{
		ExpectedReturnMean:  decimal.NewFromFloat(0.07),
		ExpectedReturnStdev: decimal.NewFromFloat(0.15),
		ExpectedReturn:      decimal.NewFromFloat(0.05),
		InflationRate:       decimal.NewFromFloat(0.03),
		WithdrawalRate:      decimal.NewFromFloat(0.04),
		IncomeGrowthRate:    decimal.NewFromFloat(0.02),
		StockGrowthRate:     decimal.NewFromFloat(0.07),
		BondGrowthRate:      decimal.NewFromFloat(0.03),
	}

	lines := a.GenerateAssumptions()
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "7.0%")
	assert.Contains(t, lines[0], "15.0%")
	assert.Contains(t, lines[2], "3.0%")
	assert.Contains(t, lines[3], "4.0%")
}

func TestPlanConfig_UnmarshalYAML(t *testing.T) {
	data := `
household:
  current_age: 35
  current_net_worth: "250000"
  annual_expenses: "40000"
  annual_savings: "30000"
assumptions:
  expected_return_mean: "0.07"
  expected_return_stdev: "0.15"
  expected_return: "0.05"
  inflation_rate: "0.03"
  withdrawal_rate: "0.04"
  income_growth_rate: "0.02"
  stock_growth_rate: "0.07"
  bond_growth_rate: "0.03"
glide_path:
  start_age: 30
  end_age: 60
  start_stock_allocation: "0.95"
  end_stock_allocation: "0.60"
simulation:
  num_simulations: 200
  retirement_years: 30
  initial_portfolio: "1000000"
  withdrawal_strategy: fixed_real
  annual_withdrawal: 40000
scenarios:
  - name: base
  - name: lean
    overrides:
      annual_expenses: 32000
`
	var plan PlanConfig
	err := yaml.Unmarshal([]byte(data), &plan)
	assert.NoError(t, err)
	assert.Equal(t, 35, plan.Household.CurrentAge)
	assert.True(t, plan.Household.CurrentNetWorth.Equal(decimal.NewFromInt(250000)))
	assert.True(t, plan.Assumptions.ExpectedReturnMean.Equal(decimal.NewFromFloat(0.07)))
	assert.Equal(t, 30, plan.GlidePath.StartAge)
	assert.Equal(t, 200, plan.Simulation.NumSimulations)
	assert.Len(t, plan.Scenarios, 2)
	assert.Equal(t, "lean", plan.Scenarios[1].Name)
	assert.NotNil(t, plan.Scenarios[1].Overrides.AnnualExpenses)
}
