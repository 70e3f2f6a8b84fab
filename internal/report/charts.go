package report

import (
	"fmt"

	"github.com/Dan9191/rental-analyzer/internal/models"
)

// CashFlowPoint feeds the cash flow chart
type CashFlowPoint struct {
	Year          int     `json:"year"`
	CashFlow      float64 `json:"cash_flow"`
	CashOnCashPct float64 `json:"cash_on_cash_pct"`
}

// ExpensePoint feeds the stacked income/expense chart
type ExpensePoint struct {
	Label       string  `json:"label"`
	EGI         float64 `json:"egi"`
	OpEx        float64 `json:"opex"`
	InterestPMI float64 `json:"interest_pmi"`
	Principal   float64 `json:"principal"`
	CashFlow    float64 `json:"cash_flow"`
}

// EquityPoint feeds the equity chart
type EquityPoint struct {
	Year        int     `json:"year"`
	HomeValue   float64 `json:"home_value"`
	LoanBalance float64 `json:"loan_balance"`
	Equity      float64 `json:"equity"`
}

// Charts holds the chart series of a projection
type Charts struct {
	CashFlow []CashFlowPoint `json:"cash_flow"`
	Expenses []ExpensePoint  `json:"expenses"`
	Equity   []EquityPoint   `json:"equity"`
}

// NewCharts builds chart series. Expenses cover year 1 and every fifth year;
// negative cash flow is stacked as zero.
func NewCharts(p *models.Projection) Charts {
	c := Charts{
		CashFlow: make([]CashFlowPoint, 0, len(p.Years)),
		Equity:   make([]EquityPoint, 0, len(p.Years)),
	}
	for i, y := range p.Years {
		c.CashFlow = append(c.CashFlow, CashFlowPoint{
			Year:          y.Year,
			CashFlow:      y.CashFlow,
			CashOnCashPct: y.CashOnCash * 100,
		})
		c.Equity = append(c.Equity, EquityPoint{
			Year:        y.Year,
			HomeValue:   y.HomeValue,
			LoanBalance: y.LoanBalance,
			Equity:      y.Equity,
		})

		if i == 0 || (i+1)%5 == 0 {
			c.Expenses = append(c.Expenses, ExpensePoint{
				Label:       fmt.Sprintf("Yr %d", y.Year),
				EGI:         y.EGI,
				OpEx:        y.OperatingCosts,
				InterestPMI: y.InterestPMI,
				Principal:   y.Principal,
				CashFlow:    max(y.CashFlow, 0),
			})
		}
	}
	return c
}
