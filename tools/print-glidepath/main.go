package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/calculation"
	"github.com/firego/fire-planner/internal/domain"
)

// Prints the interpolated stock allocation and blended return by age,
// including ages outside the glide path window to show the clamping.
func main() {
	gp := domain.GlidePathConfig{
		StartAge:             30,
		EndAge:               65,
		StartStockAllocation: decimal.NewFromFloat(0.90),
		EndStockAllocation:   decimal.NewFromFloat(0.50),
	}
	stock := decimal.NewFromFloat(0.07)
	bond := decimal.NewFromFloat(0.03)
	one := decimal.NewFromInt(1)

	fmt.Println("Age,StockAllocation,BlendedReturn")
	for age := 25; age <= 70; age++ {
		alloc := calculation.StockAllocationAt(gp, age)
		blended := alloc.Mul(stock).Add(one.Sub(alloc).Mul(bond))
		fmt.Printf("%d,%s,%s\n", age, alloc.StringFixed(4), blended.StringFixed(4))
	}
}
