package calculation

import (
	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// maxCompoundingYears bounds the year-by-year search. Inputs that have not
// crossed the target by then never will within any meaningful horizon.
const maxCompoundingYears = 1000

var decimalHundred = decimal.NewFromInt(100)

// FIProjector computes deterministic years to financial independence under
// constant growth and savings assumptions.
type FIProjector struct{}

// NewFIProjector creates a projector.
func NewFIProjector() *FIProjector {
	return &FIProjector{}
}

// CalculateYearsToFI compounds net worth year by year until it crosses the FI
// number, interpolating a fractional final year. A target that is never
// reached yields the infinite sentinel, not an error.
func (fp *FIProjector) CalculateYearsToFI(inputs domain.FIInputs) (*domain.FIResult, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	fiNumber := inputs.AnnualExpenses.Div(inputs.WithdrawalRate)

	result := &domain.FIResult{
		FINumber:  fiNumber,
		YearsToFI: fp.yearsToTarget(inputs, fiNumber),
	}

	if fiNumber.IsPositive() {
		result.CurrentProgress = inputs.CurrentNetWorth.Div(fiNumber).Mul(decimalHundred)
	}

	remaining := fiNumber.Sub(inputs.CurrentNetWorth)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	result.RemainingNeeded = remaining

	if result.YearsToFI.Reachable() {
		date := dateutil.AddFractionalYears(nowFunc(), float64(result.YearsToFI))
		result.ProjectedFIDate = &date
	}

	return result, nil
}

// yearsToTarget iterates netWorth = netWorth*(1+r) + savings until the target
// is crossed.
func (fp *FIProjector) yearsToTarget(inputs domain.FIInputs, fiNumber decimal.Decimal) domain.Years {
	if inputs.CurrentNetWorth.GreaterThanOrEqual(fiNumber) {
		return 0
	}
	// Neither savings nor growth can move net worth upward.
	if !inputs.AnnualSavings.IsPositive() && !inputs.ExpectedReturn.IsPositive() {
		return domain.Never()
	}

	growth := onePlus(inputs.ExpectedReturn)
	netWorth := inputs.CurrentNetWorth

	for year := 1; year <= maxCompoundingYears; year++ {
		prev := netWorth
		netWorth = netWorth.Mul(growth).Add(inputs.AnnualSavings)
		if netWorth.GreaterThanOrEqual(fiNumber) {
			return domain.Years(float64(year-1) + crossingFraction(prev, netWorth, fiNumber))
		}
	}
	return domain.Never()
}

// crossingFraction places the target inside [prev, curr] as a fraction of the
// year, clamped to [0, 1].
func crossingFraction(prev, curr, target decimal.Decimal) float64 {
	denom := curr.Sub(prev)
	if denom.IsZero() {
		return 1
	}
	t := target.Sub(prev).Div(denom)
	if t.LessThan(decimal.Zero) {
		t = decimal.Zero
	} else if t.GreaterThan(decimalOne) {
		t = decimalOne
	}
	return t.InexactFloat64()
}
