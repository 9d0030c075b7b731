package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/firego/fire-planner/internal/domain"
)

// CSVDetailedExporter provides raw annual projection detail per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.PlanComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Age", "NetWorth", "AnnualSavings", "StockAllocation", "BlendedReturn", "ReachedFI"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioReport(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		if sc.Projection == nil {
			continue
		}
		for _, p := range sc.Projection.Points {
			row := []string{
				sc.Name,
				intToString(p.Year),
				intToString(p.Age),
				p.NetWorth.StringFixed(2),
				p.Savings.StringFixed(2),
				p.StockAllocation.StringFixed(4),
				p.BlendedReturn.StringFixed(4),
				boolToString(p.NetWorth.GreaterThanOrEqual(sc.Projection.FINumber)),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), nil
}
