package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultsPass(t *testing.T) {
	assert.NoError(t, Validate(Parse(Defaults())))
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	a := Parse(Defaults())
	a.RehabCost = -1
	a.VacancyRate = 1.5
	a.LoanTermYears = 0

	err := Validate(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rehab_costs must not be negative")
	assert.Contains(t, err.Error(), "vacancy_rate must be between 0 and 100 percent")
	assert.Contains(t, err.Error(), "loan_term must be between 1 and 50 years")
}

func TestValidate_CashPurchaseNeedsNoTerm(t *testing.T) {
	a := Parse(Defaults())
	a.DownPaymentRate = 1
	a.LoanTermYears = 0
	assert.NoError(t, Validate(a))
}

func TestValidate_RequiresPrice(t *testing.T) {
	err := Validate(Parse(DealForm{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase_price is required")
}
