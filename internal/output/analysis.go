package output

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
)

// PercentileRanges holds the spread of final balances across simulation trials.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// SimulationSummary aggregates the per-trial outcomes of one Monte Carlo run.
type SimulationSummary struct {
	Mean          decimal.Decimal  `json:"mean"`
	StdDev        decimal.Decimal  `json:"std_dev"`
	Min           decimal.Decimal  `json:"min"`
	Max           decimal.Decimal  `json:"max"`
	Percentiles   PercentileRanges `json:"percentiles"`
	DepletionRate decimal.Decimal  `json:"depletion_rate"`
}

// SummarizeSimulation computes aggregate statistics over the final balances of a run.
// Extracted from embedded formatter logic for testability.
func SummarizeSimulation(result *domain.SimulationResult) SimulationSummary {
	balances := result.FinalBalances()
	if len(balances) == 0 {
		return SimulationSummary{}
	}
	sorted := append([]decimal.Decimal(nil), balances...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := decimal.NewFromInt(int64(len(sorted)))
	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	mean := sum.Div(n)

	varianceSum := decimal.Zero
	for _, b := range balances {
		diff := b.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(n)
	// Convert to float for the square root
	stdDev := decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))

	depleted := 0
	for _, run := range result.Runs {
		if !run.Survived {
			depleted++
		}
	}

	return SimulationSummary{
		Mean:   mean,
		StdDev: stdDev,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Percentiles: PercentileRanges{
			P10: calculatePercentile(sorted, 0.10),
			P25: calculatePercentile(sorted, 0.25),
			P50: calculatePercentile(sorted, 0.50),
			P75: calculatePercentile(sorted, 0.75),
			P90: calculatePercentile(sorted, 0.90),
		},
		DepletionRate: decimal.NewFromInt(int64(depleted)).Div(n),
	}
}

// calculatePercentile interpolates a percentile from an ascending-sorted slice.
func calculatePercentile(sorted []decimal.Decimal, percentile float64) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	index := percentile * float64(len(sorted)-1)
	lowerIndex := int(index)
	upperIndex := lowerIndex + 1
	if upperIndex >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := decimal.NewFromFloat(index - float64(lowerIndex))
	lower := sorted[lowerIndex]
	upper := sorted[upperIndex]
	return lower.Add(upper.Sub(lower).Mul(weight))
}

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName       string
	SuccessRate        decimal.Decimal
	MedianFinalBalance decimal.Decimal
	YearsToFI          domain.Years
}

// AnalyzeScenarios picks the strongest scenario in a comparison. Scenarios that
// ran a simulation are ranked by success rate, then by median final balance;
// scenarios without one rank below those and compare on years to FI.
func AnalyzeScenarios(results *domain.PlanComparison) Recommendation {
	type ranked struct {
		name   string
		hasSim bool
		rate   decimal.Decimal
		median decimal.Decimal
		toFI   domain.Years
	}
	var ranks []ranked
	for _, sc := range results.Scenarios {
		r := ranked{name: sc.Name, toFI: domain.Never()}
		if sc.FI != nil {
			r.toFI = sc.FI.YearsToFI
		}
		if sc.Simulation != nil {
			r.hasSim = true
			r.rate = sc.Simulation.SuccessRate
			r.median = SummarizeSimulation(sc.Simulation).Percentiles.P50
		}
		ranks = append(ranks, r)
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		a, b := ranks[i], ranks[j]
		if a.hasSim != b.hasSim {
			return a.hasSim
		}
		if a.hasSim {
			if !a.rate.Equal(b.rate) {
				return a.rate.GreaterThan(b.rate)
			}
			return a.median.GreaterThan(b.median)
		}
		return float64(a.toFI) < float64(b.toFI)
	})
	best := ranks[0]
	return Recommendation{
		ScenarioName:       best.name,
		SuccessRate:        best.rate,
		MedianFinalBalance: best.median,
		YearsToFI:          best.toFI,
	}
}
