package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/domain"
)

// Sweeps the initial portfolio and prints the success rate at each step with a
// fixed seed. Eyeball check: the curve must never decrease.
func main() {
	seed := int64(12345)
	withdrawal := decimal.NewFromInt(40000)

	fmt.Println("InitialPortfolio,SuccessRate")
	for p := 400000; p <= 1600000; p += 100000 {
		cfg := domain.SimulationConfig{
			NumSimulations:      500,
			RetirementYears:     30,
			InitialPortfolio:    decimal.NewFromInt(int64(p)),
			WithdrawalStrategy:  domain.StrategyFixedReal,
			AnnualWithdrawal:    &withdrawal,
			ExpectedReturnMean:  decimal.NewFromFloat(0.07),
			ExpectedReturnStdev: decimal.NewFromFloat(0.15),
			InflationRate:       decimal.NewFromFloat(0.03),
			RandomSeed:          &seed,
		}
		res, err := calculation.NewMonteCarloSimulator().Run(cfg)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d,%s\n", p, res.SuccessRate.StringFixed(4))
	}
}
