package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Dan9191/rental-analyzer/internal/models"
)

// TableYears are the columns of the summary table
var TableYears = []int{1, 5, 10, 30}

// Summary is the first-year headline of a projection
type Summary struct {
	MonthlyCashFlow  float64 `json:"monthly_cash_flow"`
	CashOnCash       float64 `json:"cash_on_cash"`
	CapRate          float64 `json:"cap_rate"`
	NegativeCashFlow bool    `json:"negative_cash_flow"`
	OnePercentRatio  float64 `json:"one_percent_ratio"`
	OnePercentBadge  string  `json:"one_percent_badge"`
}

// Row is one metric across TableYears, already formatted
type Row struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// Table is the formatted year-of-interest table
type Table struct {
	Years []int `json:"years"`
	Rows  []Row `json:"rows"`
}

type metric struct {
	label string
	value func(models.PeriodRecord) float64
	fmt   func(float64) string
}

var metrics = []metric{
	{"IRR (if Sold)", func(r models.PeriodRecord) float64 { return r.IRR }, Percent},
	{"Monthly Cash Flow", func(r models.PeriodRecord) float64 { return r.CashFlow / 12 }, Money},
	{"Annual Cash Flow", func(r models.PeriodRecord) float64 { return r.CashFlow }, Money},
	{"Cash-on-Cash", func(r models.PeriodRecord) float64 { return r.CashOnCash }, Percent},
	{"Cap Rate", func(r models.PeriodRecord) float64 { return r.CapRate }, Percent},
	{"DSCR", func(r models.PeriodRecord) float64 { return r.DSCR }, Decimal},
	{"Principal Paydown", func(r models.PeriodRecord) float64 { return r.Principal }, Money},
	{"ROI", func(r models.PeriodRecord) float64 { return r.ROI }, Percent},
	{"Profit if Sold", func(r models.PeriodRecord) float64 { return r.ProfitIfSold }, Money},
}

// NewSummary builds the year-one headline. A projection without years yields zeros.
func NewSummary(p *models.Projection) Summary {
	s := Summary{
		OnePercentRatio: p.OnePercentRule.Ratio,
		OnePercentBadge: "Fail",
	}
	if p.OnePercentRule.Pass {
		s.OnePercentBadge = "Pass"
	}
	if y1, ok := p.Year(1); ok {
		s.MonthlyCashFlow = y1.CashFlow / 12
		s.CashOnCash = y1.CashOnCash
		s.CapRate = y1.CapRate
		s.NegativeCashFlow = y1.CashFlow < 0
	}
	return s
}

// NewTable formats the headline metrics for TableYears. Years past the end render "-".
func NewTable(p *models.Projection) Table {
	t := Table{Years: TableYears, Rows: make([]Row, 0, len(metrics))}
	for _, m := range metrics {
		row := Row{Label: m.label, Values: make([]string, 0, len(TableYears))}
		for _, y := range TableYears {
			rec, ok := p.Year(y)
			if !ok {
				row.Values = append(row.Values, "-")
				continue
			}
			row.Values = append(row.Values, m.fmt(m.value(rec)))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// RenderText writes the summary and table as aligned plain text
func RenderText(w io.Writer, s Summary, t Table) error {
	fmt.Fprintf(w, "Monthly cash flow (year 1): %s\n", Money(s.MonthlyCashFlow))
	fmt.Fprintf(w, "Cash-on-cash (year 1):      %s\n", Percent(s.CashOnCash))
	fmt.Fprintf(w, "Cap rate (year 1):          %s\n", Percent(s.CapRate))
	fmt.Fprintf(w, "1%% rule:                    %s (%s)\n\n", Percent(s.OnePercentRatio), s.OnePercentBadge)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := make([]string, 0, len(t.Years)+1)
	header = append(header, "Metric")
	for _, y := range t.Years {
		header = append(header, fmt.Sprintf("Year %d", y))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, r := range t.Rows {
		fmt.Fprintln(tw, r.Label+"\t"+strings.Join(r.Values, "\t")+"\t")
	}
	return tw.Flush()
}
