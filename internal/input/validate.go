package input

import (
	"errors"
	"fmt"

	"github.com/Dan9191/rental-analyzer/internal/models"
)

const maxLoanTermYears = 50

// Validate rejects assumptions a projection should not be run on.
// The engine accepts anything; this is the caller-side gate.
func Validate(a models.DealAssumptions) error {
	var errs []error

	amounts := []struct {
		name  string
		value float64
	}{
		{"purchase_price", a.PurchasePrice},
		{"rehab_costs", a.RehabCost},
		{"arv", a.AfterRepairValue},
		{"gross_monthly_rent", a.MonthlyRent},
		{"property_taxes", a.AnnualTaxes},
		{"hoa_fees", a.MonthlyHOA},
		{"utilities", a.MonthlyUtilities},
	}
	for _, f := range amounts {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", f.name))
		}
	}

	rates := []struct {
		name  string
		value float64
	}{
		{"closing_costs_pct", a.ClosingCostRate},
		{"down_payment_pct", a.DownPaymentRate},
		{"mortgage_rate", a.MortgageRate},
		{"pmi_pct", a.PMIRate},
		{"insurance_pct", a.InsuranceRate},
		{"vacancy_rate", a.VacancyRate},
		{"repairs_pct", a.RepairsRate},
		{"capex_pct", a.CapexRate},
		{"management_pct", a.ManagementRate},
		{"appreciation_home", a.AppreciationRate},
		{"appreciation_rent", a.RentGrowthRate},
		{"inflation_costs", a.CostInflation},
		{"sale_closing_costs", a.SaleCostRate},
	}
	for _, f := range rates {
		if f.value < 0 || f.value > 1 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 100 percent", f.name))
		}
	}

	if a.PurchasePrice <= 0 {
		errs = append(errs, errors.New("purchase_price is required"))
	}
	if a.DownPaymentRate < 1 && (a.LoanTermYears < 1 || a.LoanTermYears > maxLoanTermYears) {
		errs = append(errs, fmt.Errorf("loan_term must be between 1 and %d years", maxLoanTermYears))
	}

	return errors.Join(errs...)
}
