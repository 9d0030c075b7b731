package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with embedded charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"years": FormatYears,
	"add":   func(i, j int) int { return i + j },
	"rateClass": func(fraction decimal.Decimal) string {
		switch {
		case fraction.GreaterThanOrEqual(decimal.NewFromFloat(0.90)):
			return "success"
		case fraction.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
			return "warning"
		default:
			return "danger"
		}
	},
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// projectionSeries carries chart-ready slices for one scenario.
type projectionSeries struct {
	Years    []int     `json:"years"`
	NetWorth []float64 `json:"net_worth"`
	FINumber float64   `json:"fi_number"`
}

func (h HTMLFormatter) Format(results *domain.PlanComparison) ([]byte, error) {
	var buf bytes.Buffer
	rec := AnalyzeScenarios(results)

	// Use assumptions from results if available, otherwise fall back to defaults
	assumptions := results.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	summaries := make(map[string]SimulationSummary)
	charts := make(map[string]projectionSeries)
	for _, sc := range results.Scenarios {
		if sc.Simulation != nil {
			summaries[sc.Name] = SummarizeSimulation(sc.Simulation)
		}
		if sc.Projection != nil {
			series := projectionSeries{FINumber: sc.Projection.FINumber.InexactFloat64()}
			for _, p := range sc.Projection.Points {
				series.Years = append(series.Years, p.Year)
				series.NetWorth = append(series.NetWorth, p.NetWorth.InexactFloat64())
			}
			charts[sc.Name] = series
		}
	}

	data := struct {
		*domain.PlanComparison
		Recommendation Recommendation
		Assumptions    []string
		Summaries      map[string]SimulationSummary
		Charts         map[string]projectionSeries
	}{results, rec, assumptions, summaries, charts}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
