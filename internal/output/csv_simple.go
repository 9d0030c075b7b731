package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/firego/fire-planner/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "FINumber", "YearsToFI", "CurrentProgress", "SuccessRate", "Trials", "MedianFinalBalance", "P10FinalBalance", "P90FinalBalance", "DepletionRate", "GlidePathFIAge"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioReport(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		row := make([]string, len(header))
		row[0] = sc.Name
		if sc.FI != nil {
			row[1] = sc.FI.FINumber.StringFixed(2)
			row[2] = sc.FI.YearsToFI.String()
			row[3] = sc.FI.CurrentProgress.StringFixed(2)
		}
		if sc.Simulation != nil {
			summary := SummarizeSimulation(sc.Simulation)
			row[4] = sc.Simulation.SuccessRate.StringFixed(4)
			row[5] = intToString(sc.Simulation.NumSimulations)
			row[6] = summary.Percentiles.P50.StringFixed(2)
			row[7] = summary.Percentiles.P10.StringFixed(2)
			row[8] = summary.Percentiles.P90.StringFixed(2)
			row[9] = summary.DepletionRate.StringFixed(4)
		}
		if sc.Projection != nil {
			if fp := sc.Projection.FIPoint(); fp != nil {
				row[10] = intToString(fp.Age)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}
