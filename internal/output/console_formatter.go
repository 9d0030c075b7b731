package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/firego/fire-planner/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "FIRE PLAN SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintln(&buf)
	scenarios := append([]domain.ScenarioReport(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		fmt.Fprintf(&buf, "%s:", sc.Name)
		if sc.FI != nil {
			fmt.Fprintf(&buf, " FINumber=%s YearsToFI=%s Progress=%s",
				FormatCurrency(sc.FI.FINumber),
				FormatYears(sc.FI.YearsToFI),
				FormatPercentage(sc.FI.CurrentProgress),
			)
		}
		fmt.Fprintln(&buf)
		if sc.Simulation != nil {
			summary := SummarizeSimulation(sc.Simulation)
			fmt.Fprintf(&buf, "  Simulation: Trials=%d SuccessRate=%s MedianFinal=%s\n",
				sc.Simulation.NumSimulations,
				FormatRate(sc.Simulation.SuccessRate),
				FormatCurrency(summary.Percentiles.P50),
			)
		}
		if sc.Projection != nil {
			if fp := sc.Projection.FIPoint(); fp != nil {
				fmt.Fprintf(&buf, "  GlidePath: FI at age %d (year %d)\n", fp.Age, fp.Year)
			} else {
				fmt.Fprintf(&buf, "  GlidePath: FI not reached within %d years\n", len(sc.Projection.Points)-1)
			}
		}
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (success %s, FI in %s)\n",
			rec.ScenarioName, FormatRate(rec.SuccessRate), FormatYears(rec.YearsToFI))
	}
	return buf.Bytes(), nil
}
