package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dan9191/rental-analyzer/internal/input"
	"github.com/Dan9191/rental-analyzer/internal/projection"
	"github.com/Dan9191/rental-analyzer/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// formFlags maps CLI flags to deal form fields
func formFlags(f *input.DealForm) []struct {
	name  string
	field *string
	usage string
} {
	return []struct {
		name  string
		field *string
		usage string
	}{
		{"purchase_price", &f.PurchasePrice, "purchase price"},
		{"rehab_costs", &f.RehabCosts, "rehab costs"},
		{"arv", &f.ARV, "after-repair value"},
		{"closing_costs_pct", &f.ClosingCostsPct, "closing costs, % of price"},
		{"down_payment_pct", &f.DownPaymentPct, "down payment, % of price"},
		{"mortgage_rate", &f.MortgageRate, "mortgage rate, %"},
		{"loan_term", &f.LoanTerm, "loan term, years"},
		{"pmi_pct", &f.PMIPct, "PMI, % of loan per year"},
		{"gross_monthly_rent", &f.GrossMonthlyRent, "gross monthly rent"},
		{"property_taxes", &f.PropertyTaxes, "annual property taxes"},
		{"insurance_pct", &f.InsurancePct, "insurance, % of price per year"},
		{"hoa_fees", &f.HOAFees, "monthly HOA fees"},
		{"vacancy_rate", &f.VacancyRate, "vacancy, %"},
		{"utilities", &f.Utilities, "monthly utilities"},
		{"repairs_pct", &f.RepairsPct, "repairs, % of rent"},
		{"capex_pct", &f.CapexPct, "capital expenditures, % of rent"},
		{"management_pct", &f.ManagementPct, "management, % of collected rent"},
		{"appreciation_home", &f.AppreciationHome, "home appreciation, % per year"},
		{"appreciation_rent", &f.AppreciationRent, "rent growth, % per year"},
		{"inflation_costs", &f.InflationCosts, "cost inflation, % per year"},
		{"sale_closing_costs", &f.SaleClosingCosts, "sale closing costs, % of value"},
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rental-analyzer",
		Short:         "Project the returns of a leveraged rental property",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProjectCmd())
	return root
}

func newProjectCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a 40-year projection",
		Long: "Run a 40-year projection. Values start from the calculator defaults, are overridden by\n" +
			"--file (yaml, json or toml with the flag names as keys), then by explicit flags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := loadForm(v, file)
			if err != nil {
				return err
			}
			return runProject(cmd.OutOrStdout(), form, asJSON)
		},
	}

	defaults := input.Defaults()
	for _, f := range formFlags(&defaults) {
		cmd.Flags().String(f.name, *f.field, f.usage)
		_ = v.BindPFlag(f.name, cmd.Flags().Lookup(f.name))
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "deal file to load")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full projection as JSON")

	return cmd
}

func loadForm(v *viper.Viper, file string) (input.DealForm, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return input.DealForm{}, fmt.Errorf("failed to read deal file: %w", err)
		}
	}

	var form input.DealForm
	for _, f := range formFlags(&form) {
		*f.field = v.GetString(f.name)
	}
	return form, nil
}

func runProject(w io.Writer, form input.DealForm, asJSON bool) error {
	a := input.Parse(form)
	if err := input.Validate(a); err != nil {
		return fmt.Errorf("invalid deal: %w", err)
	}

	p := projection.Project(a)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Fprintf(w, "Cash invested: %s  Loan: %s  Payment: %s/mo\n",
		report.Money(p.TotalCashInvested), report.Money(p.LoanAmount), report.Money(p.MonthlyPayment))
	return report.RenderText(w, report.NewSummary(p), report.NewTable(p))
}
