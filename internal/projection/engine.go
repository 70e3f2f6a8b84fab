package projection

import (
	"math"

	"github.com/Dan9191/rental-analyzer/internal/finance"
	"github.com/Dan9191/rental-analyzer/internal/models"
)

const (
	// Years is the length of every projection
	Years = 40

	// PMI is charged while the loan exceeds this share of the original purchase price
	pmiLoanToPriceLimit = 0.8

	onePercentThreshold = 0.01
)

// state is the per-run simulation state. It compounds at the end of every year.
type state struct {
	homeValue   float64
	loanBalance float64
	monthlyRent float64
	taxes       float64
	insurance   float64
	hoa         float64
	utilities   float64
	month       int
}

// debtService is the result of one year of monthly payments
type debtService struct {
	principal float64
	interest  float64
	pmi       float64
}

func (d debtService) total() float64 {
	return d.principal + d.interest + d.pmi
}

// Project runs the 40-year simulation for one deal. It never fails; degenerate
// inputs produce zero-guarded ratios rather than NaN or Inf.
func Project(a models.DealAssumptions) *models.Projection {
	downPayment := a.PurchasePrice * a.DownPaymentRate
	closingCosts := a.PurchasePrice * a.ClosingCostRate
	totalCashInvested := downPayment + closingCosts + a.RehabCost
	loanAmount := a.PurchasePrice - downPayment
	payment := finance.MonthlyPayment(loanAmount, a.MortgageRate, a.LoanTermYears)

	p := &models.Projection{
		DownPayment:       downPayment,
		ClosingCosts:      closingCosts,
		TotalCashInvested: totalCashInvested,
		LoanAmount:        loanAmount,
		MonthlyPayment:    payment,
		OnePercentRule:    onePercentRule(a),
		Years:             make([]models.PeriodRecord, 0, Years),
	}

	s := state{
		homeValue:   a.AfterRepairValue,
		loanBalance: loanAmount,
		monthlyRent: a.MonthlyRent,
		taxes:       a.AnnualTaxes,
		insurance:   a.PurchasePrice * a.InsuranceRate,
		hoa:         a.MonthlyHOA * 12,
		utilities:   a.MonthlyUtilities * 12,
	}
	stream := newCashFlowStream(-totalCashInvested, Years)

	for year := 1; year <= Years; year++ {
		grossRent := s.monthlyRent * 12
		egi := grossRent * (1 - a.VacancyRate)

		management := egi * a.ManagementRate
		repairs := grossRent * a.RepairsRate
		capex := grossRent * a.CapexRate

		opex := s.taxes + s.insurance + s.hoa + s.utilities + management + repairs + capex
		noi := egi - opex

		ds := s.payYear(a, loanAmount, payment)
		annualDebtService := ds.total()
		cashFlow := noi - annualDebtService

		saleProceeds := s.homeValue*(1-a.SaleCostRate) - s.loanBalance
		irr := finance.IRR(stream.withTerminal(cashFlow + saleProceeds))
		stream.append(cashFlow)

		appreciation := s.homeValue - s.homeValue/(1+a.AppreciationRate)

		p.Years = append(p.Years, models.PeriodRecord{
			Year:           year,
			IRR:            irr,
			CashFlow:       cashFlow,
			CashOnCash:     ratio(cashFlow, totalCashInvested),
			CapRate:        ratio(noi, s.homeValue),
			DSCR:           ratio(noi, annualDebtService),
			Principal:      ds.principal,
			InterestPMI:    ds.interest + ds.pmi,
			OperatingCosts: opex,
			EGI:            egi,
			ROI:            ratio(cashFlow+ds.principal+appreciation, totalCashInvested),
			HomeValue:      s.homeValue,
			LoanBalance:    s.loanBalance,
			Equity:         s.homeValue - s.loanBalance,
			ProfitIfSold:   saleProceeds - totalCashInvested,
		})

		s.compound(a)
	}

	return p
}

// payYear applies twelve monthly payments to the loan balance
func (s *state) payYear(a models.DealAssumptions, loanAmount, payment float64) debtService {
	monthlyRate := a.MortgageRate / 12
	finalMonth := int(math.Ceil(a.LoanTermYears * 12))
	var ds debtService

	for m := 0; m < 12; m++ {
		s.month++
		var pmi float64
		if a.PurchasePrice > 0 && s.loanBalance/a.PurchasePrice > pmiLoanToPriceLimit {
			pmi = loanAmount * a.PMIRate / 12
		}

		interest := s.loanBalance * monthlyRate
		principal := payment - interest

		if s.loanBalance <= 0 {
			interest, principal, pmi = 0, 0, 0
		} else if s.loanBalance < principal || s.month == finalMonth {
			// final payoff month; clears any rounding residue left by the schedule
			principal = s.loanBalance
		}

		s.loanBalance -= principal
		ds.principal += principal
		ds.interest += interest
		ds.pmi += pmi
	}

	return ds
}

func (s *state) compound(a models.DealAssumptions) {
	s.monthlyRent *= 1 + a.RentGrowthRate
	s.homeValue *= 1 + a.AppreciationRate
	s.taxes *= 1 + a.CostInflation
	s.insurance *= 1 + a.CostInflation
	s.hoa *= 1 + a.CostInflation
	s.utilities *= 1 + a.CostInflation
}

func onePercentRule(a models.DealAssumptions) models.OnePercentRule {
	r := ratio(a.MonthlyRent, a.PurchasePrice+a.RehabCost)
	return models.OnePercentRule{Ratio: r, Pass: r >= onePercentThreshold}
}

// ratio divides, returning 0 for a non-positive denominator
func ratio(num, den float64) float64 {
	if den > 0 {
		return num / den
	}
	return 0
}
