package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
)

// ConsoleVerboseFormatter renders the full detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "FIRE PLAN ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	if !results.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", results.GeneratedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(&buf)
	}
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeComparisonTable(&buf, results)

	for i, scenario := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, scenario.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		if scenario.FI != nil {
			writeFISection(&buf, scenario.FI)
		}
		if scenario.Simulation != nil {
			writeSimulationSection(&buf, scenario.Simulation)
		}
		if scenario.Projection != nil {
			writeProjectionSection(&buf, scenario.Projection)
		}
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s\n", rec.ScenarioName)
		fmt.Fprintf(&buf, "Simulation Success Rate: %s\n", FormatRate(rec.SuccessRate))
		fmt.Fprintf(&buf, "Median Final Balance: %s\n", FormatCurrency(rec.MedianFinalBalance))
		fmt.Fprintf(&buf, "Years to Financial Independence: %s\n", FormatYears(rec.YearsToFI))
	}

	return buf.Bytes(), nil
}

// writeComparisonTable renders the side-by-side scenario metrics ahead of the detail sections.
func writeComparisonTable(buf *bytes.Buffer, results *domain.PlanComparison) {
	fmt.Fprintln(buf, "=================================================================================")
	fmt.Fprintln(buf, "SCENARIO COMPARISON")
	fmt.Fprintln(buf, "=================================================================================")
	fmt.Fprintf(buf, "%-25s %18s %14s %10s %18s\n", "SCENARIO", "FI NUMBER", "YEARS TO FI", "SUCCESS", "MEDIAN FINAL")
	fmt.Fprintln(buf, strings.Repeat("-", 89))
	for _, sc := range results.Scenarios {
		fiNumber, yearsToFI := "-", "-"
		if sc.FI != nil {
			fiNumber = FormatCurrency(sc.FI.FINumber)
			yearsToFI = FormatYears(sc.FI.YearsToFI)
		}
		success, median := "-", "-"
		if sc.Simulation != nil {
			success = FormatRate(sc.Simulation.SuccessRate)
			median = FormatCurrency(SummarizeSimulation(sc.Simulation).Percentiles.P50)
		}
		fmt.Fprintf(buf, "%-25s %18s %14s %10s %18s\n", sc.Name, fiNumber, yearsToFI, success, median)
	}
	fmt.Fprintln(buf)
}

func writeFISection(buf *bytes.Buffer, fi *domain.FIResult) {
	fmt.Fprintln(buf, "FINANCIAL INDEPENDENCE:")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  FI Number:              %s\n", FormatCurrency(fi.FINumber))
	fmt.Fprintf(buf, "  Current Progress:       %s\n", FormatPercentage(fi.CurrentProgress))
	fmt.Fprintf(buf, "  Remaining Needed:       %s\n", FormatCurrency(fi.RemainingNeeded))
	fmt.Fprintf(buf, "  Years to FI:            %s\n", FormatYears(fi.YearsToFI))
	if fi.ProjectedFIDate != nil {
		fmt.Fprintf(buf, "  Projected FI Date:      %s\n", fi.ProjectedFIDate.Format("January 2, 2006"))
	}
	fmt.Fprintln(buf)
}

func writeSimulationSection(buf *bytes.Buffer, sim *domain.SimulationResult) {
	summary := SummarizeSimulation(sim)
	fmt.Fprintln(buf, "MONTE CARLO SIMULATION:")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  Trials:                 %d\n", sim.NumSimulations)
	fmt.Fprintf(buf, "  Retirement Years:       %d\n", sim.RetirementYears)
	fmt.Fprintf(buf, "  Withdrawal Strategy:    %s\n", sim.WithdrawalStrategy)
	fmt.Fprintf(buf, "  Random Seed:            %d\n", sim.Seed)
	fmt.Fprintf(buf, "  Success Rate:           %s\n", FormatRate(sim.SuccessRate))
	fmt.Fprintf(buf, "  Depletion Rate:         %s\n", FormatRate(summary.DepletionRate))
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "  FINAL BALANCE DISTRIBUTION:")
	dist := []struct {
		label string
		value decimal.Decimal
	}{
		{"Minimum", summary.Min},
		{"10th Percentile", summary.Percentiles.P10},
		{"25th Percentile", summary.Percentiles.P25},
		{"Median", summary.Percentiles.P50},
		{"75th Percentile", summary.Percentiles.P75},
		{"90th Percentile", summary.Percentiles.P90},
		{"Maximum", summary.Max},
		{"Mean", summary.Mean},
		{"Std Deviation", summary.StdDev},
	}
	for _, d := range dist {
		fmt.Fprintf(buf, "  %-20s %18s\n", d.label+":", FormatCurrency(d.value))
	}
	fmt.Fprintln(buf)
}

func writeProjectionSection(buf *bytes.Buffer, proj *domain.ProjectionResult) {
	fmt.Fprintln(buf, "GLIDE PATH PROJECTION:")
	fmt.Fprintln(buf, "----------------------------------------")
	fmt.Fprintf(buf, "  %-6s %-5s %18s %18s %10s %10s\n", "YEAR", "AGE", "NET WORTH", "SAVINGS", "STOCKS", "RETURN")
	last := len(proj.Points) - 1
	for _, p := range proj.Points {
		// print every fifth year plus the final point
		if p.Year%5 != 0 && p.Year != last {
			continue
		}
		fmt.Fprintf(buf, "  %-6d %-5d %18s %18s %10s %10s\n",
			p.Year, p.Age,
			FormatCurrency(p.NetWorth), FormatCurrency(p.Savings),
			FormatRate(p.StockAllocation), FormatRate(p.BlendedReturn),
		)
	}
	fmt.Fprintln(buf)
	if fp := proj.FIPoint(); fp != nil {
		fmt.Fprintf(buf, "  FI number %s reached in year %d (age %d)\n", FormatCurrency(proj.FINumber), fp.Year, fp.Age)
	} else {
		fmt.Fprintf(buf, "  FI number %s not reached within the projection horizon\n", FormatCurrency(proj.FINumber))
	}
	fmt.Fprintln(buf)
}
