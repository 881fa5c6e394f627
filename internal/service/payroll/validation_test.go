package payroll

import (
	"testing"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePeriodDates(t *testing.T) {
	t.Parallel()

	v := NewValidator(22)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	pay := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, v.ValidatePeriodDates(2025, 1, start, end, pay))

	err := v.ValidatePeriodDates(2025, 2, start, end, pay)
	require.Error(t, err)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "start_date")

	err = v.ValidatePeriodDates(2025, 1, start, end, end.AddDate(0, 0, -1))
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "pay_date")
}

func TestValidateWorkingDays(t *testing.T) {
	t.Parallel()

	v := NewValidator(22)

	assert.NoError(t, v.ValidateWorkingDays(0, 15))
	assert.NoError(t, v.ValidateWorkingDays(15, 15))
	// A half-month period may still bill up to the standard working days.
	assert.NoError(t, v.ValidateWorkingDays(22, 15))
	assert.Error(t, v.ValidateWorkingDays(23, 15))
	assert.Error(t, v.ValidateWorkingDays(32, 31))
	assert.Error(t, v.ValidateWorkingDays(-1, 15))
}

func TestFinalizeIssues_NegativeNetAndDraft(t *testing.T) {
	t.Parallel()

	v := NewValidator(22)
	items := []payroll.PayrollItem{
		{ID: "i-1", EmployeeID: "emp-1", Status: payroll.ItemStatusComputed, NetPay: d("12000")},
		{ID: "i-2", EmployeeID: "emp-2", Status: payroll.ItemStatusComputed, NetPay: d("-350")},
		{ID: "i-3", EmployeeID: "emp-3", Status: payroll.ItemStatusDraft},
	}
	lines := map[string][]payroll.PayrollItemLine{}

	issues := v.FinalizeIssues(items, lines)

	require.Len(t, issues, 2)
	ids := []string{issues[0].EmployeeID, issues[1].EmployeeID}
	assert.Contains(t, ids, "emp-2")
	assert.Contains(t, ids, "emp-3")
}

func TestFinalizeIssues_TotalMismatch(t *testing.T) {
	t.Parallel()

	v := NewValidator(22)
	items := []payroll.PayrollItem{
		{ID: "i-1", EmployeeID: "emp-1", Status: payroll.ItemStatusComputed,
			NetPay: d("1000"), TotalAllowances: d("999"), TotalDeductions: d("0")},
	}
	lines := map[string][]payroll.PayrollItemLine{
		"i-1": {{LineType: payroll.LineTypeAllowance, Amount: d("1000")}},
	}

	issues := v.FinalizeIssues(items, lines)

	require.Len(t, issues, 1)
	assert.Equal(t, "emp-1", issues[0].EmployeeID)
	assert.Contains(t, issues[0].Reason, "totals")
}

func TestFinalizeIssues_CleanPeriod(t *testing.T) {
	t.Parallel()

	v := NewValidator(22)
	items := []payroll.PayrollItem{
		{ID: "i-1", EmployeeID: "emp-1", Status: payroll.ItemStatusComputed,
			NetPay: d("1000"), TotalAllowances: d("1000"), TotalDeductions: d("0")},
	}
	lines := map[string][]payroll.PayrollItemLine{
		"i-1": {{LineType: payroll.LineTypeAllowance, Amount: d("1000")}},
	}

	assert.Empty(t, v.FinalizeIssues(items, lines))
}
