package input

import (
	"strings"

	"github.com/Dan9191/rental-analyzer/internal/models"
	"github.com/shopspring/decimal"
)

// DealForm holds raw deal values as a user enters them. Money fields may carry
// thousands separators ("300,000"); rate fields are whole percentages ("7.0").
type DealForm struct {
	PurchasePrice    string `json:"purchase_price" mapstructure:"purchase_price"`
	RehabCosts       string `json:"rehab_costs" mapstructure:"rehab_costs"`
	ARV              string `json:"arv" mapstructure:"arv"`
	ClosingCostsPct  string `json:"closing_costs_pct" mapstructure:"closing_costs_pct"`
	DownPaymentPct   string `json:"down_payment_pct" mapstructure:"down_payment_pct"`
	MortgageRate     string `json:"mortgage_rate" mapstructure:"mortgage_rate"`
	LoanTerm         string `json:"loan_term" mapstructure:"loan_term"`
	PMIPct           string `json:"pmi_pct" mapstructure:"pmi_pct"`
	GrossMonthlyRent string `json:"gross_monthly_rent" mapstructure:"gross_monthly_rent"`
	PropertyTaxes    string `json:"property_taxes" mapstructure:"property_taxes"`
	InsurancePct     string `json:"insurance_pct" mapstructure:"insurance_pct"`
	HOAFees          string `json:"hoa_fees" mapstructure:"hoa_fees"`
	VacancyRate      string `json:"vacancy_rate" mapstructure:"vacancy_rate"`
	Utilities        string `json:"utilities" mapstructure:"utilities"`
	RepairsPct       string `json:"repairs_pct" mapstructure:"repairs_pct"`
	CapexPct         string `json:"capex_pct" mapstructure:"capex_pct"`
	ManagementPct    string `json:"management_pct" mapstructure:"management_pct"`
	AppreciationHome string `json:"appreciation_home" mapstructure:"appreciation_home"`
	AppreciationRent string `json:"appreciation_rent" mapstructure:"appreciation_rent"`
	InflationCosts   string `json:"inflation_costs" mapstructure:"inflation_costs"`
	SaleClosingCosts string `json:"sale_closing_costs" mapstructure:"sale_closing_costs"`
}

var hundred = decimal.NewFromInt(100)

// Defaults returns the form a fresh calculator starts from
func Defaults() DealForm {
	return DealForm{
		PurchasePrice:    "300,000",
		RehabCosts:       "20,000",
		ARV:              "350,000",
		ClosingCostsPct:  "3.0",
		DownPaymentPct:   "20",
		MortgageRate:     "7.0",
		LoanTerm:         "30",
		PMIPct:           "0.6",
		GrossMonthlyRent: "2,500",
		PropertyTaxes:    "3,600",
		InsurancePct:     "0.6",
		HOAFees:          "0",
		VacancyRate:      "6.0",
		Utilities:        "50",
		RepairsPct:       "6.0",
		CapexPct:         "6.0",
		ManagementPct:    "10.0",
		AppreciationHome: "3.0",
		AppreciationRent: "3.0",
		InflationCosts:   "3.0",
		SaleClosingCosts: "8.0",
	}
}

// Parse converts a form to engine assumptions. Blank or malformed fields read as 0.
func Parse(f DealForm) models.DealAssumptions {
	return models.DealAssumptions{
		PurchasePrice:    amount(f.PurchasePrice),
		RehabCost:        amount(f.RehabCosts),
		AfterRepairValue: amount(f.ARV),
		ClosingCostRate:  percent(f.ClosingCostsPct),
		DownPaymentRate:  percent(f.DownPaymentPct),
		MortgageRate:     percent(f.MortgageRate),
		LoanTermYears:    amount(f.LoanTerm),
		PMIRate:          percent(f.PMIPct),
		MonthlyRent:      amount(f.GrossMonthlyRent),
		AnnualTaxes:      amount(f.PropertyTaxes),
		InsuranceRate:    percent(f.InsurancePct),
		MonthlyHOA:       amount(f.HOAFees),
		VacancyRate:      percent(f.VacancyRate),
		MonthlyUtilities: amount(f.Utilities),
		RepairsRate:      percent(f.RepairsPct),
		CapexRate:        percent(f.CapexPct),
		ManagementRate:   percent(f.ManagementPct),
		AppreciationRate: percent(f.AppreciationHome),
		RentGrowthRate:   percent(f.AppreciationRent),
		CostInflation:    percent(f.InflationCosts),
		SaleCostRate:     percent(f.SaleClosingCosts),
	}
}

// FormatAmount renders a money value the way the form displays it: grouped, no fraction
func FormatAmount(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	s := d.Abs().String()

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func amount(raw string) float64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	return d.InexactFloat64()
}

func percent(raw string) float64 {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	return d.Div(hundred).InexactFloat64()
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.TrimSuffix(clean, "%")
	if clean == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
