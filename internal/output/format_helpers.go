package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/firego/fire-planner/internal/domain"
	"github.com/firego/fire-planner/pkg/money"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.FromDecimal(amount).Format() }

// FormatPercentage formats an already percent-scaled decimal with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.875 -> "87.50%").
func FormatRate(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(2) + "%"
}

// FormatYears renders a years-to-FI figure, including the unreachable case.
func FormatYears(y domain.Years) string {
	if !y.Reachable() {
		return "never"
	}
	return y.String() + " years"
}

func intToString(v int) string   { return strconv.Itoa(v) }
func boolToString(v bool) string { return strconv.FormatBool(v) }

var decimalHundred = decimal.NewFromInt(100)
