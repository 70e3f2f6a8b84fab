package report

import (
	"math"
	"strconv"

	"github.com/Dan9191/rental-analyzer/internal/input"
)

// Money formats whole currency units, e.g. "$300,000" or "-$4,562"
func Money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	s := input.FormatAmount(v)
	if s[0] == '-' {
		return "-$" + s[1:]
	}
	return "$" + s
}

// Percent formats a fraction as a percentage with two decimals
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00%"
	}
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

// Decimal formats a plain ratio with two decimals
func Decimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
