package models

// DealAssumptions holds the numeric inputs of one projection run.
// Rates are decimal fractions (0.07 for 7%).
type DealAssumptions struct {
	PurchasePrice    float64 `json:"purchase_price"`
	RehabCost        float64 `json:"rehab_cost"`
	AfterRepairValue float64 `json:"after_repair_value"`
	ClosingCostRate  float64 `json:"closing_cost_rate"`
	DownPaymentRate  float64 `json:"down_payment_rate"`
	MortgageRate     float64 `json:"mortgage_rate"`
	LoanTermYears    float64 `json:"loan_term_years"`
	PMIRate          float64 `json:"pmi_rate"`
	MonthlyRent      float64 `json:"monthly_rent"`
	AnnualTaxes      float64 `json:"annual_taxes"`
	InsuranceRate    float64 `json:"insurance_rate"`
	MonthlyHOA       float64 `json:"monthly_hoa"`
	VacancyRate      float64 `json:"vacancy_rate"`
	MonthlyUtilities float64 `json:"monthly_utilities"`
	RepairsRate      float64 `json:"repairs_rate"`
	CapexRate        float64 `json:"capex_rate"`
	ManagementRate   float64 `json:"management_rate"`
	AppreciationRate float64 `json:"appreciation_rate"`
	RentGrowthRate   float64 `json:"rent_growth_rate"`
	CostInflation    float64 `json:"cost_inflation"`
	SaleCostRate     float64 `json:"sale_cost_rate"`
}
