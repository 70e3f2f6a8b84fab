package finance

import "math"

// MonthlyPayment returns the level principal+interest payment of a fixed-rate,
// fully amortizing loan. annualRate is a fraction; termYears may be fractional.
//
// A zero rate amortizes straight-line. A non-positive term is repaid in full
// with the first payment.
func MonthlyPayment(loanAmount, annualRate, termYears float64) float64 {
	if loanAmount <= 0 {
		return 0
	}
	r := annualRate / 12
	n := termYears * 12
	if n <= 0 {
		return loanAmount * (1 + r)
	}
	if r == 0 {
		return loanAmount / n
	}
	growth := math.Pow(1+r, n)
	return loanAmount * (r * growth) / (growth - 1)
}
