package calculation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// ReturnGenerator draws one year's market return for a simulation trial.
type ReturnGenerator interface {
	Draw(mean, stdev decimal.Decimal) decimal.Decimal
}

// NormalReturnGenerator samples normally distributed returns from a seeded
// uniform source through the Box-Muller transform. Each generator owns its
// source, so trials with distinct seeds draw independent streams regardless
// of scheduling.
type NormalReturnGenerator struct {
	rng *rand.Rand
}

// NewNormalReturnGenerator creates a generator with its own seeded source.
func NewNormalReturnGenerator(seed int64) *NormalReturnGenerator {
	return &NormalReturnGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Draw returns mean + z*stdev with z standard normal. A zero stdev draws the
// mean exactly without consuming randomness.
func (g *NormalReturnGenerator) Draw(mean, stdev decimal.Decimal) decimal.Decimal {
	if stdev.IsZero() {
		return mean
	}

	u1 := g.rng.Float64()
	u2 := g.rng.Float64()
	z := boxMullerTransform(u1, u2)

	zDecimal := decimal.NewFromFloat(z)
	return mean.Add(zDecimal.Mul(stdev))
}

// boxMullerTransform converts two uniform samples into a standard normal one.
func boxMullerTransform(u1, u2 float64) float64 {
	if u1 == 0 {
		u1 = math.SmallestNonzeroFloat64 // keep Log finite
	}
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
