package projection

import (
	"math"
	"sync"
	"testing"

	"github.com/Dan9191/rental-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDeal() models.DealAssumptions {
	return models.DealAssumptions{
		PurchasePrice:    300000,
		RehabCost:        20000,
		AfterRepairValue: 350000,
		ClosingCostRate:  0.03,
		DownPaymentRate:  0.20,
		MortgageRate:     0.07,
		LoanTermYears:    30,
		PMIRate:          0.006,
		MonthlyRent:      2500,
		AnnualTaxes:      3600,
		InsuranceRate:    0.006,
		MonthlyHOA:       0,
		VacancyRate:      0.06,
		MonthlyUtilities: 50,
		RepairsRate:      0.06,
		CapexRate:        0.06,
		ManagementRate:   0.10,
		AppreciationRate: 0.03,
		RentGrowthRate:   0.03,
		CostInflation:    0.03,
		SaleCostRate:     0.08,
	}
}

func TestProject_DefaultDeal(t *testing.T) {
	p := Project(defaultDeal())
	require.Len(t, p.Years, Years)

	assert.InDelta(t, 60000, p.DownPayment, 1e-6)
	assert.InDelta(t, 9000, p.ClosingCosts, 1e-6)
	assert.InDelta(t, 89000, p.TotalCashInvested, 1e-6)
	assert.InDelta(t, 240000, p.LoanAmount, 1e-6)
	assert.InDelta(t, 1596.7259884, p.MonthlyPayment, 1e-6)

	assert.InDelta(t, 0.0078125, p.OnePercentRule.Ratio, 1e-12)
	assert.False(t, p.OnePercentRule.Pass)

	y1 := p.Years[0]
	assert.Equal(t, 1, y1.Year)
	assert.InDelta(t, 28200, y1.EGI, 1e-6)
	assert.InDelta(t, 12420, y1.OperatingCosts, 1e-6)
	assert.InDelta(t, -3380.7118612, y1.CashFlow, 1e-4)
	assert.InDelta(t, -0.0379855265, y1.CashOnCash, 1e-8)
	assert.InDelta(t, 0.0450857143, y1.CapRate, 1e-8)
	assert.InDelta(t, 0.8235602160, y1.DSCR, 1e-8)
	assert.InDelta(t, 2437.9435903, y1.Principal, 1e-4)
	assert.InDelta(t, 16722.7682709, y1.InterestPMI, 1e-4)
	assert.InDelta(t, 0.1039483875, y1.ROI, 1e-8)
	assert.InDelta(t, 350000, y1.HomeValue, 1e-6)
	assert.InDelta(t, 237562.0564097, y1.LoanBalance, 1e-4)
	assert.InDelta(t, 112437.9435903, y1.Equity, 1e-4)
	assert.InDelta(t, -4562.0564097, y1.ProfitIfSold, 1e-4)
	assert.InDelta(t, -0.0892445873, y1.IRR, 1e-6)

	y10 := p.Years[9]
	assert.InDelta(t, 1428.6089797, y10.CashFlow, 1e-4)
	assert.InDelta(t, 456670.6143402, y10.HomeValue, 1e-4)
	assert.InDelta(t, 205949.7201754, y10.LoanBalance, 1e-4)
	assert.InDelta(t, 0.0808696598, y10.IRR, 1e-6)

	y30 := p.Years[29]
	assert.Equal(t, 0.0, y30.LoanBalance)
	assert.Equal(t, 0.0, p.Years[30].Principal)
	assert.InDelta(t, 0.0839231097, y30.IRR, 1e-6)

	y40 := p.Years[39]
	assert.Equal(t, 40, y40.Year)
	assert.Equal(t, 0.0, y40.LoanBalance)
	assert.Equal(t, 0.0, y40.Principal)
	assert.Equal(t, 0.0, y40.DSCR)
	assert.InDelta(t, 49975.6857842, y40.CashFlow, 1e-4)
	assert.InDelta(t, 0.0833337803, y40.IRR, 1e-6)
}

func TestProject_AllEquityPurchase(t *testing.T) {
	a := defaultDeal()
	a.DownPaymentRate = 1
	p := Project(a)

	assert.Equal(t, 0.0, p.LoanAmount)
	assert.Equal(t, 0.0, p.MonthlyPayment)
	for _, y := range p.Years {
		assert.Equal(t, 0.0, y.Principal, "year %d", y.Year)
		assert.Equal(t, 0.0, y.InterestPMI, "year %d", y.Year)
		assert.Equal(t, 0.0, y.LoanBalance, "year %d", y.Year)
		assert.Equal(t, 0.0, y.DSCR, "year %d", y.Year)
		assert.InDelta(t, y.EGI-y.OperatingCosts, y.CashFlow, 1e-9, "year %d", y.Year)
		assert.Equal(t, y.HomeValue, y.Equity)
	}
}

func TestProject_ZeroRateLoanPaysOffExactly(t *testing.T) {
	a := defaultDeal()
	a.PurchasePrice = 720000
	a.DownPaymentRate = 0.5
	a.MortgageRate = 0
	p := Project(a)

	assert.Equal(t, 1000.0, p.MonthlyPayment)
	assert.Equal(t, 12000.0, p.Years[28].LoanBalance)
	assert.Equal(t, 0.0, p.Years[29].LoanBalance)
	for _, y := range p.Years {
		assert.GreaterOrEqual(t, y.LoanBalance, 0.0, "year %d", y.Year)
		if y.Year <= 30 {
			assert.Equal(t, 12000.0, y.Principal, "year %d", y.Year)
		} else {
			assert.Equal(t, 0.0, y.Principal, "year %d", y.Year)
		}
	}
}

func TestProject_ZeroRateLoanClearsResidueInFinalMonth(t *testing.T) {
	for _, price := range []float64{300000, 333333, 123457, 987654.32} {
		a := defaultDeal()
		a.PurchasePrice = price
		a.MortgageRate = 0
		p := Project(a)

		assert.InDelta(t, price*0.8/360, p.MonthlyPayment, 1e-9, "price %v", price)
		assert.Greater(t, p.Years[28].LoanBalance, 0.0, "price %v", price)
		assert.Equal(t, 0.0, p.Years[29].LoanBalance, "price %v", price)
		assert.InDelta(t, p.LoanAmount, sumPrincipal(p.Years[:30]), 1e-6, "price %v", price)
		for _, y := range p.Years[30:] {
			assert.Equal(t, 0.0, y.Principal, "price %v year %d", price, y.Year)
			assert.Equal(t, 0.0, y.LoanBalance, "price %v year %d", price, y.Year)
		}
	}
}

func TestProject_FractionalTermPaysOffInLastMonth(t *testing.T) {
	a := defaultDeal()
	a.LoanTermYears = 15.5
	p := Project(a)

	assert.Greater(t, p.Years[14].LoanBalance, 0.0)
	assert.Equal(t, 0.0, p.Years[15].LoanBalance)
	assert.Equal(t, 0.0, p.Years[16].Principal)
}

func sumPrincipal(years []models.PeriodRecord) float64 {
	var total float64
	for _, y := range years {
		total += y.Principal
	}
	return total
}

func TestProject_PMIStopsOncePriceRatioReached(t *testing.T) {
	withPMI := defaultDeal()
	withPMI.DownPaymentRate = 0.10
	withoutPMI := withPMI
	withoutPMI.PMIRate = 0

	a := Project(withPMI)
	b := Project(withoutPMI)

	// 270,000 * 0.6% / 12 = 135 per month while balance/price > 0.8
	for i := range a.Years {
		pmi := a.Years[i].InterestPMI - b.Years[i].InterestPMI
		switch {
		case i < 8:
			assert.InDelta(t, 1620, pmi, 1e-6, "year %d", i+1)
		case i == 8:
			assert.InDelta(t, 675, pmi, 1e-6, "year %d", i+1)
		default:
			assert.InDelta(t, 0, pmi, 1e-9, "year %d", i+1)
		}
		assert.Equal(t, b.Years[i].LoanBalance, a.Years[i].LoanBalance)
	}
}

func TestProject_NoPMIAtExactlyEightyPercent(t *testing.T) {
	withPMI := defaultDeal()
	withoutPMI := withPMI
	withoutPMI.PMIRate = 0

	a := Project(withPMI)
	b := Project(withoutPMI)
	for i := range a.Years {
		assert.Equal(t, b.Years[i].InterestPMI, a.Years[i].InterestPMI)
	}
}

func TestProject_Monotonicity(t *testing.T) {
	p := Project(defaultDeal())
	for i := 1; i < len(p.Years); i++ {
		prev, cur := p.Years[i-1], p.Years[i]
		assert.Greater(t, cur.HomeValue, prev.HomeValue, "year %d", cur.Year)
		assert.Greater(t, cur.EGI, prev.EGI, "year %d", cur.Year)
		assert.LessOrEqual(t, cur.LoanBalance, prev.LoanBalance, "year %d", cur.Year)
	}
}

func TestProject_DegenerateInputsStayFinite(t *testing.T) {
	p := Project(models.DealAssumptions{})
	require.Len(t, p.Years, Years)
	assert.Equal(t, models.OnePercentRule{}, p.OnePercentRule)

	for _, y := range p.Years {
		for name, v := range map[string]float64{
			"irr": y.IRR, "coc": y.CashOnCash, "cap": y.CapRate, "dscr": y.DSCR, "roi": y.ROI,
		} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s in year %d", name, y.Year)
		}
		assert.Equal(t, 0.0, y.CashOnCash)
		assert.Equal(t, 0.0, y.CapRate)
		assert.Equal(t, 0.0, y.DSCR)
		assert.Equal(t, 0.0, y.ROI)
	}
}

func TestProject_ZeroTermRepaysInFirstYear(t *testing.T) {
	a := defaultDeal()
	a.LoanTermYears = 0
	p := Project(a)

	assert.InDelta(t, 240000, p.Years[0].Principal, 1e-6)
	assert.Equal(t, 0.0, p.Years[0].LoanBalance)
	assert.Equal(t, 0.0, p.Years[1].InterestPMI)
}

func TestProject_OnePercentRulePass(t *testing.T) {
	a := defaultDeal()
	a.MonthlyRent = 3200
	p := Project(a)
	assert.InDelta(t, 0.01, p.OnePercentRule.Ratio, 1e-12)
	assert.True(t, p.OnePercentRule.Pass)
}

func TestProject_ConcurrentRunsAreIndependent(t *testing.T) {
	want := Project(defaultDeal())

	var wg sync.WaitGroup
	results := make([]*models.Projection, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Project(defaultDeal())
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
