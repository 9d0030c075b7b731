package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
// Used when a comparison carries no generated assumptions of its own.
var DefaultAssumptions = []string{
	"Expected portfolio return: 7.0% annually (before inflation)",
	"Return volatility: 15.0% standard deviation",
	"Inflation: 3.0% annually",
	"Safe withdrawal rate: 4.0% of the FI number",
	"Savings are contributed at the end of each year",
	"Withdrawals are taken at the start of each retirement year",
}
