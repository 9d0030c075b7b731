package calculation

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// AnnualReturn is one year's historical market return as a decimal fraction.
type AnnualReturn struct {
	Year   int             `json:"year"`
	Return decimal.Decimal `json:"return"`
}

// ReturnHistory is a loaded series of annual returns with summary statistics,
// used to calibrate simulation assumptions from real market data.
type ReturnHistory struct {
	Name       string           `json:"name"`
	DataPoints []AnnualReturn   `json:"data_points"`
	MinYear    int              `json:"min_year"`
	MaxYear    int              `json:"max_year"`
	Statistics ReturnStatistics `json:"statistics"`
}

// ReturnStatistics summarizes a return series.
type ReturnStatistics struct {
	Mean   decimal.Decimal `json:"mean"`
	StdDev decimal.Decimal `json:"std_dev"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Count  int             `json:"count"`
}

// LoadReturnHistory reads a year,return CSV file. The first row is a header;
// malformed rows are skipped.
func LoadReturnHistory(filePath string) (*ReturnHistory, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid CSV format: expected at least 2 columns")
	}

	var dataPoints []AnnualReturn
	var values []decimal.Decimal

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}

		if len(record) < 2 {
			continue // Skip malformed rows
		}

		year, err := strconv.Atoi(record[0])
		if err != nil {
			continue // Skip rows with invalid year
		}

		value, err := decimal.NewFromString(record[1])
		if err != nil {
			continue // Skip rows with invalid value
		}

		dataPoints = append(dataPoints, AnnualReturn{Year: year, Return: value})
		values = append(values, value)
	}

	if len(dataPoints) == 0 {
		return nil, fmt.Errorf("no valid data rows in %s", filePath)
	}

	history := &ReturnHistory{
		Name:       filepath.Base(filePath),
		DataPoints: dataPoints,
		MinYear:    dataPoints[0].Year,
		MaxYear:    dataPoints[0].Year,
		Statistics: computeReturnStatistics(values),
	}
	for _, dp := range dataPoints {
		if dp.Year < history.MinYear {
			history.MinYear = dp.Year
		}
		if dp.Year > history.MaxYear {
			history.MaxYear = dp.Year
		}
	}
	return history, nil
}

// CalibrateSimulation overwrites the simulation's return assumptions with the
// series moments.
func (rh *ReturnHistory) CalibrateSimulation(cfg *domain.SimulationConfig) {
	cfg.ExpectedReturnMean = rh.Statistics.Mean
	cfg.ExpectedReturnStdev = rh.Statistics.StdDev
}

// computeReturnStatistics calculates the summary moments of a return series.
func computeReturnStatistics(values []decimal.Decimal) ReturnStatistics {
	if len(values) == 0 {
		return ReturnStatistics{}
	}

	var sum decimal.Decimal
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values))))

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

	var varianceSum decimal.Decimal
	for _, v := range values {
		diff := v.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance := varianceSum.Div(decimal.NewFromInt(int64(len(values))))
	// Convert to float for the square root
	varianceFloat, _ := variance.Float64()
	stdDev := decimal.NewFromFloat(math.Sqrt(varianceFloat))

	return ReturnStatistics{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Count:  len(values),
	}
}
