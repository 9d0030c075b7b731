package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
)

// MonteCarloHTMLReport generates an interactive HTML report for a simulation run.
type MonteCarloHTMLReport struct {
	Result *domain.SimulationResult
}

// GenerateHTMLReport creates an interactive HTML report with charts.
func (m *MonteCarloHTMLReport) GenerateHTMLReport(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	htmlContent := m.generateHTMLContent()

	if err := os.WriteFile(outputPath, []byte(htmlContent), 0644); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}

	return nil
}

// generateHTMLContent creates the complete HTML report with embedded JavaScript.
func (m *MonteCarloHTMLReport) generateHTMLContent() string {
	summary := SummarizeSimulation(m.Result)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Monte Carlo Retirement Analysis</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 20px;
            background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
            min-height: 100vh;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 15px;
            box-shadow: 0 20px 40px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #2c3e50 0%%, #3498db 100%%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { margin: 0; font-size: 2.2em; font-weight: 300; }
        .header .subtitle { margin-top: 10px; opacity: 0.9; }
        .content { padding: 30px; }
        .summary-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .summary-card {
            background: #f8f9fa;
            border-radius: 10px;
            padding: 20px;
            text-align: center;
            border-left: 4px solid #3498db;
        }
        .summary-card.success { border-left-color: #27ae60; }
        .summary-card.warning { border-left-color: #f39c12; }
        .summary-card.danger { border-left-color: #e74c3c; }
        .summary-card h3 { margin: 0 0 10px 0; color: #2c3e50; font-size: 1.0em; }
        .summary-card .value { font-size: 1.8em; font-weight: bold; color: #3498db; }
        .summary-card.success .value { color: #27ae60; }
        .summary-card.warning .value { color: #f39c12; }
        .summary-card.danger .value { color: #e74c3c; }
        .chart-box { margin: 30px 0; height: 360px; }
        .insights {
            background: #f8f9fa;
            border-radius: 10px;
            padding: 20px;
            margin-top: 30px;
        }
        .insights h2 { margin-top: 0; color: #2c3e50; }
        .insights li { margin: 8px 0; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>Monte Carlo Retirement Analysis</h1>
        <div class="subtitle">%d trials, %d retirement years, %s withdrawals</div>
    </div>
    <div class="content">
        <div class="summary-grid">
            <div class="summary-card %s">
                <h3>Success Rate</h3>
                <div class="value">%s</div>
            </div>
            <div class="summary-card">
                <h3>Median Final Balance</h3>
                <div class="value">%s</div>
            </div>
            <div class="summary-card %s">
                <h3>Depletion Rate</h3>
                <div class="value">%s</div>
            </div>
            <div class="summary-card">
                <h3>Risk Level</h3>
                <div class="value">%s</div>
            </div>
        </div>

        <div class="chart-box"><canvas id="fanChart"></canvas></div>
        <div class="chart-box"><canvas id="histChart"></canvas></div>

        <div class="insights">
            <h2>Assessment</h2>
            <ul>
%s            </ul>
        </div>
    </div>
</div>
<script>
const bands = %s;
new Chart(document.getElementById('fanChart'), {
    type: 'line',
    data: {
        labels: bands.labels,
        datasets: [
            { label: 'P90', data: bands.p90, borderColor: 'rgba(39, 174, 96, 0.8)', pointRadius: 0, fill: false },
            { label: 'P75', data: bands.p75, borderColor: 'rgba(39, 174, 96, 0.4)', pointRadius: 0, fill: '-1', backgroundColor: 'rgba(39, 174, 96, 0.08)' },
            { label: 'Median', data: bands.p50, borderColor: '#3498db', borderWidth: 2, pointRadius: 0, fill: '-1', backgroundColor: 'rgba(52, 152, 219, 0.08)' },
            { label: 'P25', data: bands.p25, borderColor: 'rgba(231, 76, 60, 0.4)', pointRadius: 0, fill: '-1', backgroundColor: 'rgba(231, 76, 60, 0.08)' },
            { label: 'P10', data: bands.p10, borderColor: 'rgba(231, 76, 60, 0.8)', pointRadius: 0, fill: '-1', backgroundColor: 'rgba(231, 76, 60, 0.08)' }
        ]
    },
    options: {
        responsive: true,
        maintainAspectRatio: false,
        plugins: { title: { display: true, text: 'Portfolio Balance Percentile Bands by Year' } },
        scales: { y: { ticks: { callback: function (v) { return '$' + v.toLocaleString(); } } } }
    }
});
const hist = %s;
new Chart(document.getElementById('histChart'), {
    type: 'bar',
    data: {
        labels: hist.labels,
        datasets: [{ label: 'Trials', data: hist.counts, backgroundColor: 'rgba(52, 152, 219, 0.6)' }]
    },
    options: {
        responsive: true,
        maintainAspectRatio: false,
        plugins: { title: { display: true, text: 'Distribution of Final Balances' } }
    }
});
</script>
</body>
</html>`,
		m.Result.NumSimulations,
		m.Result.RetirementYears,
		m.Result.WithdrawalStrategy,
		m.getSuccessRateClass(),
		FormatRate(m.Result.SuccessRate),
		m.formatCurrency(summary.Percentiles.P50),
		m.getSuccessRateClass(),
		FormatRate(summary.DepletionRate),
		m.getRiskLevel(),
		m.generateAssessmentHTML(summary),
		m.generateTimeSeriesData(),
		m.generateHistogramData(),
	)
}

func (m *MonteCarloHTMLReport) getSuccessRateClass() string {
	rate := m.Result.SuccessRate
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromFloat(0.90)):
		return "success"
	case rate.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
		return "warning"
	default:
		return "danger"
	}
}

func (m *MonteCarloHTMLReport) getRiskLevel() string {
	rate := m.Result.SuccessRate
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromFloat(0.90)):
		return "Low"
	case rate.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
		return "Moderate"
	default:
		return "High"
	}
}

// generateAssessmentHTML renders the bullet list in the insights box.
func (m *MonteCarloHTMLReport) generateAssessmentHTML(summary SimulationSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "            <li>%s of %d trials kept a positive balance through year %d.</li>\n",
		FormatRate(m.Result.SuccessRate), m.Result.NumSimulations, m.Result.RetirementYears)
	fmt.Fprintf(&b, "            <li>The median trial ended with %s; the worst decile ended at or below %s.</li>\n",
		m.formatCurrency(summary.Percentiles.P50), m.formatCurrency(summary.Percentiles.P10))

	switch m.getSuccessRateClass() {
	case "success":
		fmt.Fprintf(&b, "            <li>The plan looks robust at the configured withdrawal level.</li>\n")
	case "warning":
		fmt.Fprintf(&b, "            <li>The plan survives most trials but is sensitive to poor early returns. A lower withdrawal or a larger starting balance would add margin.</li>\n")
	default:
		fmt.Fprintf(&b, "            <li>The plan depletes in a substantial share of trials. Reduce the withdrawal, extend the accumulation phase, or plan for flexible spending.</li>\n")
	}

	if summary.Percentiles.P10.IsZero() && m.Result.SuccessRate.IsPositive() {
		fmt.Fprintf(&b, "            <li>At least 10%% of trials ran out of money before the end of retirement.</li>\n")
	}
	return b.String()
}

func (m *MonteCarloHTMLReport) formatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(0)
}

// generateHistogramData returns bar chart labels and counts as a JS object literal.
func (m *MonteCarloHTMLReport) generateHistogramData() string {
	bins := m.createHistogramBins(m.Result.FinalBalances(), 20)
	labels := make([]string, len(bins))
	counts := make([]string, len(bins))
	for i, bin := range bins {
		labels[i] = `"` + bin.Label + `"`
		counts[i] = fmt.Sprintf("%d", bin.Count)
	}
	return fmt.Sprintf("{labels: [%s], counts: [%s]}", strings.Join(labels, ", "), strings.Join(counts, ", "))
}

// generateTimeSeriesData creates year-by-year percentile data for the fan chart.
func (m *MonteCarloHTMLReport) generateTimeSeriesData() string {
	percentiles := []struct {
		key string
		pct float64
	}{
		{"p10", 0.10}, {"p25", 0.25}, {"p50", 0.50}, {"p75", 0.75}, {"p90", 0.90},
	}

	labels := make([]string, 0, m.Result.RetirementYears)
	series := make(map[string][]string, len(percentiles))
	for year := 0; year < m.Result.RetirementYears; year++ {
		labels = append(labels, fmt.Sprintf("%d", year+1))
		balances := make([]decimal.Decimal, 0, len(m.Result.Runs))
		for _, run := range m.Result.Runs {
			if year < len(run.YearOutcomes) {
				balances = append(balances, run.YearOutcomes[year].EndBalance)
			}
		}
		sort.Slice(balances, func(i, j int) bool { return balances[i].LessThan(balances[j]) })
		for _, p := range percentiles {
			series[p.key] = append(series[p.key], calculatePercentile(balances, p.pct).StringFixed(0))
		}
	}

	var b strings.Builder
	b.WriteString("{labels: [" + strings.Join(labels, ", ") + "]")
	for _, p := range percentiles {
		b.WriteString(", " + p.key + ": [" + strings.Join(series[p.key], ", ") + "]")
	}
	b.WriteString("}")
	return b.String()
}

// HistogramBin groups final balances for the distribution chart.
type HistogramBin struct {
	Label string
	Count int
	Min   decimal.Decimal
	Max   decimal.Decimal
}

func (m *MonteCarloHTMLReport) createHistogramBins(values []decimal.Decimal, numBins int) []HistogramBin {
	if len(values) == 0 {
		return []HistogramBin{}
	}

	min := values[0]
	max := values[0]
	for _, v := range values {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	if max.Equal(min) {
		return []HistogramBin{{Label: min.Div(decimal.NewFromInt(1000)).StringFixed(0) + "K", Count: len(values), Min: min, Max: max}}
	}

	binWidth := max.Sub(min).Div(decimal.NewFromInt(int64(numBins)))
	bins := make([]HistogramBin, numBins)

	for i := 0; i < numBins; i++ {
		binMin := min.Add(binWidth.Mul(decimal.NewFromInt(int64(i))))
		binMax := min.Add(binWidth.Mul(decimal.NewFromInt(int64(i + 1))))
		bins[i] = HistogramBin{
			Label: binMin.Div(decimal.NewFromInt(1000)).StringFixed(0) + "K",
			Min:   binMin,
			Max:   binMax,
		}
	}

	for _, value := range values {
		for i := range bins {
			if value.GreaterThanOrEqual(bins[i].Min) && (i == len(bins)-1 || value.LessThan(bins[i].Max)) {
				bins[i].Count++
				break
			}
		}
	}

	return bins
}
