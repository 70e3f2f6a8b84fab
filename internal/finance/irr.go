package finance

import "math"

const (
	// DefaultIRRGuess is the starting rate for Newton-Raphson iteration
	DefaultIRRGuess = 0.10

	irrMaxIterations = 1000
	irrPrecision     = 1e-7
	irrMinDerivative = 1e-10
)

// NPV discounts periodic cash flows at rate, period 0 undiscounted
func NPV(rate float64, cashFlows []float64) float64 {
	var npv float64
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR returns the per-period rate that zeroes the NPV of cashFlows, starting from DefaultIRRGuess.
func IRR(cashFlows []float64) float64 {
	return IRRWithGuess(cashFlows, DefaultIRRGuess)
}

// IRRWithGuess runs Newton-Raphson from guess. It never fails: on a flat derivative,
// a non-finite step, or exhausted iterations it returns the best rate so far.
// The result can be economically meaningless for streams without a sign change.
func IRRWithGuess(cashFlows []float64, guess float64) float64 {
	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		var npv, dNPV float64
		for t, cf := range cashFlows {
			ft := float64(t)
			npv += cf / math.Pow(1+rate, ft)
			dNPV -= ft * cf / math.Pow(1+rate, ft+1)
		}

		if math.Abs(dNPV) < irrMinDerivative {
			return rate
		}

		next := rate - npv/dNPV
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return rate
		}
		if math.Abs(next-rate) < irrPrecision {
			return next
		}
		rate = next
	}
	return rate
}
