package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/internal/output"
)

var fiCmd = &cobra.Command{
	Use:   "fi",
	Short: "estimate years to financial independence",
	Long: `fi compounds net worth forward under constant assumptions until it
reaches the FI number (annual expenses / withdrawal rate) and reports the
fractional crossing year.`,
	RunE: runFI,
}

func init() {
	f := fiCmd.Flags()
	f.String("net-worth", "0", "current net worth")
	f.String("expenses", "40000", "annual expenses")
	f.String("savings", "20000", "annual savings")
	f.String("return", "0.05", "expected annual return")
	f.String("rate", "0.04", "safe withdrawal rate")
	rootCmd.AddCommand(fiCmd)
}

func runFI(cmd *cobra.Command, args []string) error {
	var err error
	parse := flagParser(cmd, &err)
	inputs := domain.FIInputs{
		CurrentNetWorth: parse("net-worth"),
		AnnualExpenses:  parse("expenses"),
		AnnualSavings:   parse("savings"),
		ExpectedReturn:  parse("return"),
		WithdrawalRate:  parse("rate"),
	}
	if err != nil {
		return err
	}

	result, err := calculation.NewFIProjector().CalculateYearsToFI(inputs)
	if err != nil {
		return err
	}

	fmt.Println("FINANCIAL INDEPENDENCE")
	fmt.Println("======================")
	fmt.Printf("%-20s %s\n", "FI Number:", output.FormatCurrency(result.FINumber))
	fmt.Printf("%-20s %s\n", "Current Progress:", output.FormatPercentage(result.CurrentProgress))
	fmt.Printf("%-20s %s\n", "Remaining Needed:", output.FormatCurrency(result.RemainingNeeded))
	fmt.Printf("%-20s %s\n", "Years to FI:", output.FormatYears(result.YearsToFI))
	if result.ProjectedFIDate != nil {
		fmt.Printf("%-20s %s\n", "Projected FI Date:", result.ProjectedFIDate.Format("January 2, 2006"))
	}
	return nil
}
