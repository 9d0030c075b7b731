package calculation

import (
	"github.com/firego/fire-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// defaultProjectionHorizon bounds the projection when the inputs do not name
// a horizon. The iteration must always terminate, reached target or not.
const defaultProjectionHorizon = 100

// GlidePathProjector runs the age-aware deterministic FI projection under a
// stock-to-bond glide path.
type GlidePathProjector struct{}

// NewGlidePathProjector creates a projector.
func NewGlidePathProjector() *GlidePathProjector {
	return &GlidePathProjector{}
}

// StockAllocationAt linearly interpolates the stock allocation for an age,
// holding the endpoint allocations outside the configured range.
func StockAllocationAt(gp domain.GlidePathConfig, age int) decimal.Decimal {
	if age <= gp.StartAge {
		return gp.StartStockAllocation
	}
	if age >= gp.EndAge {
		return gp.EndStockAllocation
	}
	span := decimal.NewFromInt(int64(gp.EndAge - gp.StartAge))
	progress := decimal.NewFromInt(int64(age - gp.StartAge)).Div(span)
	return gp.StartStockAllocation.Add(gp.EndStockAllocation.Sub(gp.StartStockAllocation).Mul(progress))
}

// CalculateFIProjection iterates net worth year by year under the blended
// glide path return, recording every point and the first FI crossing. Point
// zero is the starting position.
func (gpp *GlidePathProjector) CalculateFIProjection(inputs domain.ProjectionInputs) (*domain.ProjectionResult, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	// The FI target stays pinned to first-year expenses.
	// TODO: decide whether the target should track inflation-grown expenses instead.
	fiNumber := inputs.InitialAnnualExpenses.Div(inputs.WithdrawalRate)

	horizon := inputs.ProjectionYears
	if horizon == 0 {
		horizon = defaultProjectionHorizon
	}

	netWorth := inputs.CurrentNetWorth
	savings := inputs.InitialAnnualSavings
	yearsToFI := domain.Never()

	startAlloc := StockAllocationAt(inputs.GlidePath, inputs.CurrentAge)
	points := make([]domain.ProjectionPoint, 0, horizon+1)
	points = append(points, domain.ProjectionPoint{
		Year:            0,
		Age:             inputs.CurrentAge,
		NetWorth:        netWorth,
		Savings:         savings,
		StockAllocation: startAlloc,
		BlendedReturn:   blendedReturn(inputs, startAlloc),
	})
	if netWorth.GreaterThanOrEqual(fiNumber) {
		yearsToFI = 0
	}

	for year := 1; year <= horizon; year++ {
		age := inputs.CurrentAge + year
		alloc := StockAllocationAt(inputs.GlidePath, age)
		blended := blendedReturn(inputs, alloc)

		netWorth = netWorth.Mul(onePlus(blended)).Add(savings)
		savings = savings.Mul(onePlus(inputs.IncomeGrowthRate))

		points = append(points, domain.ProjectionPoint{
			Year:            year,
			Age:             age,
			NetWorth:        netWorth,
			Savings:         savings,
			StockAllocation: alloc,
			BlendedReturn:   blended,
		})

		if !yearsToFI.Reachable() && netWorth.GreaterThanOrEqual(fiNumber) {
			yearsToFI = domain.Years(year)
		}
	}

	return &domain.ProjectionResult{
		Points:    points,
		FINumber:  fiNumber,
		YearsToFI: yearsToFI,
	}, nil
}

// blendedReturn mixes stock and bond growth by the stock allocation.
func blendedReturn(inputs domain.ProjectionInputs, stockAllocation decimal.Decimal) decimal.Decimal {
	bondAllocation := decimalOne.Sub(stockAllocation)
	return stockAllocation.Mul(inputs.StockGrowthRate).Add(bondAllocation.Mul(inputs.BondGrowthRate))
}
