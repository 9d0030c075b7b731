package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/internal/output"
)

var glidepathCmd = &cobra.Command{
	Use:   "glidepath",
	Short: "project net worth under an age-based stock/bond glide path",
	Long: `glidepath projects net worth year by year while the stock allocation
slides linearly between two age anchors, printing the full allocation and
growth table together with the FI crossing.`,
	RunE: runGlidePath,
}

func init() {
	f := glidepathCmd.Flags()
	f.Int("age", 30, "current age")
	f.String("net-worth", "100000", "current net worth")
	f.String("savings", "30000", "initial annual savings")
	f.String("expenses", "50000", "initial annual expenses")
	f.String("stock-return", "0.07", "expected annual stock return")
	f.String("bond-return", "0.03", "expected annual bond return")
	f.String("income-growth", "0.02", "annual savings growth rate")
	f.String("inflation", "0.03", "annual inflation rate")
	f.String("rate", "0.04", "safe withdrawal rate")
	f.Int("start-age", 30, "age where the glide path begins")
	f.Int("end-age", 65, "age where the glide path ends")
	f.String("start-alloc", "0.90", "stock allocation at the start age")
	f.String("end-alloc", "0.50", "stock allocation at the end age")
	f.Int("years", 30, "projection horizon in years (0 for the default 100-year horizon)")
	rootCmd.AddCommand(glidepathCmd)
}

func runGlidePath(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	age, _ := flags.GetInt("age")
	startAge, _ := flags.GetInt("start-age")
	endAge, _ := flags.GetInt("end-age")
	years, _ := flags.GetInt("years")

	var err error
	parse := flagParser(cmd, &err)
	inputs := domain.ProjectionInputs{
		CurrentAge:            age,
		CurrentNetWorth:       parse("net-worth"),
		InitialAnnualSavings:  parse("savings"),
		InitialAnnualExpenses: parse("expenses"),
		StockGrowthRate:       parse("stock-return"),
		BondGrowthRate:        parse("bond-return"),
		IncomeGrowthRate:      parse("income-growth"),
		InflationRate:         parse("inflation"),
		WithdrawalRate:        parse("rate"),
		GlidePath: domain.GlidePathConfig{
			StartAge:             startAge,
			EndAge:               endAge,
			StartStockAllocation: parse("start-alloc"),
			EndStockAllocation:   parse("end-alloc"),
		},
		ProjectionYears: years,
	}
	if err != nil {
		return err
	}

	result, err := calculation.NewGlidePathProjector().CalculateFIProjection(inputs)
	if err != nil {
		return err
	}

	fmt.Println("GLIDE PATH PROJECTION")
	fmt.Println("=====================")
	fmt.Printf("%-6s %-5s %18s %18s %10s %10s\n", "YEAR", "AGE", "NET WORTH", "SAVINGS", "STOCKS", "RETURN")
	for _, p := range result.Points {
		fmt.Printf("%-6d %-5d %18s %18s %10s %10s\n",
			p.Year, p.Age,
			output.FormatCurrency(p.NetWorth), output.FormatCurrency(p.Savings),
			output.FormatRate(p.StockAllocation), output.FormatRate(p.BlendedReturn),
		)
	}
	fmt.Println()
	if fp := result.FIPoint(); fp != nil {
		fmt.Printf("FI number %s reached in year %d (age %d)\n", output.FormatCurrency(result.FINumber), fp.Year, fp.Age)
	} else {
		fmt.Printf("FI number %s not reached within the projection horizon\n", output.FormatCurrency(result.FINumber))
	}
	return nil
}
