package models

// PeriodRecord represents the metrics of one projected year
type PeriodRecord struct {
	Year           int     `json:"year"`
	IRR            float64 `json:"irr"`
	CashFlow       float64 `json:"cash_flow"`
	CashOnCash     float64 `json:"cash_on_cash"`
	CapRate        float64 `json:"cap_rate"`
	DSCR           float64 `json:"dscr"`
	Principal      float64 `json:"principal"`
	InterestPMI    float64 `json:"interest_pmi"`
	OperatingCosts float64 `json:"operating_costs"`
	EGI            float64 `json:"egi"`
	ROI            float64 `json:"roi"`
	HomeValue      float64 `json:"home_value"`
	LoanBalance    float64 `json:"loan_balance"`
	Equity         float64 `json:"equity"`
	ProfitIfSold   float64 `json:"profit_if_sold"`
}

// OnePercentRule reports monthly rent against total acquisition cost
type OnePercentRule struct {
	Ratio float64 `json:"ratio"`
	Pass  bool    `json:"pass"`
}

// Projection is the output of one engine run
type Projection struct {
	DownPayment       float64        `json:"down_payment"`
	ClosingCosts      float64        `json:"closing_costs"`
	TotalCashInvested float64        `json:"total_cash_invested"`
	LoanAmount        float64        `json:"loan_amount"`
	MonthlyPayment    float64        `json:"monthly_payment"`
	OnePercentRule    OnePercentRule `json:"one_percent_rule"`
	Years             []PeriodRecord `json:"years"`
}

// Year returns the record for a 1-based year, or false if it was not projected
func (p *Projection) Year(year int) (PeriodRecord, bool) {
	if p == nil || year < 1 || year > len(p.Years) {
		return PeriodRecord{}, false
	}
	return p.Years[year-1], true
}
