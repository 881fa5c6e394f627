package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestSumLines_AdjustmentSigns(t *testing.T) {
	t.Parallel()

	lines := []PayrollItemLine{
		{LineType: LineTypeAllowance, Amount: d("1500")},
		{LineType: LineTypeAllowance, Amount: d("500")},
		{LineType: LineTypeDeduction, Amount: d("300")},
		{LineType: LineTypeAdjustment, Amount: d("250")},  // raises allowances
		{LineType: LineTypeAdjustment, Amount: d("-100")}, // raises deductions
	}

	allowances, deductions := SumLines(lines)

	assert.True(t, d("2250").Equal(allowances), "allowances = %s", allowances)
	assert.True(t, d("400").Equal(deductions), "deductions = %s", deductions)
}

func TestApplyTotals_GrossAndNetDerivation(t *testing.T) {
	t.Parallel()

	item := PayrollItem{BasicPay: d("11000")}
	item.ApplyTotals([]PayrollItemLine{
		{LineType: LineTypeAllowance, Amount: d("2000")},
		{LineType: LineTypeDeduction, Amount: d("1250.50")},
	})

	assert.True(t, d("13000").Equal(item.GrossPay))
	assert.True(t, d("11749.50").Equal(item.NetPay))
	assert.True(t, item.GrossPay.Equal(item.BasicPay.Add(item.TotalAllowances)))
	assert.True(t, item.NetPay.Equal(item.GrossPay.Sub(item.TotalDeductions)))
}

func TestApplyTotals_ReSummingDoesNotDrift(t *testing.T) {
	t.Parallel()

	item := PayrollItem{BasicPay: d("10000")}
	lines := []PayrollItemLine{
		{LineType: LineTypeAllowance, Amount: d("1000")},
	}

	// Applying repeatedly with the same line set must not accumulate.
	for i := 0; i < 3; i++ {
		item.ApplyTotals(lines)
	}

	assert.True(t, d("1000").Equal(item.TotalAllowances))
	assert.True(t, d("11000").Equal(item.NetPay))
}

func TestComputeBasicPay_RoundsToCentavos(t *testing.T) {
	t.Parallel()

	// 25000 / 22 = 1136.3636..., x 10 days
	rate := d("25000").Div(decimal.NewFromInt(22))
	basic := ComputeBasicPay(rate, 10)

	assert.True(t, d("11363.64").Equal(basic), "basic = %s", basic)
}

func TestComputeBasicPay_ZeroWorkingDays(t *testing.T) {
	t.Parallel()

	assert.True(t, ComputeBasicPay(d("1136.36"), 0).IsZero())
}

func TestPeriodStatus_TransitionGuards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status      PeriodStatus
		canEdit     bool
		canFinalize bool
		canPay      bool
		canReopen   bool
	}{
		{PeriodStatusDraft, true, true, false, false},
		{PeriodStatusProcessing, true, true, false, false},
		{PeriodStatusCompleted, false, false, true, true},
		{PeriodStatusPaid, false, false, false, false},
	}

	for _, tt := range tests {
		p := PayrollPeriod{Status: tt.status}
		assert.Equal(t, tt.canEdit, p.CanEdit(), "CanEdit %s", tt.status)
		assert.Equal(t, tt.canFinalize, p.CanFinalize(), "CanFinalize %s", tt.status)
		assert.Equal(t, tt.canPay, p.CanMarkAsPaid(), "CanMarkAsPaid %s", tt.status)
		assert.Equal(t, tt.canReopen, p.CanReopen(), "CanReopen %s", tt.status)
	}
}

func TestDaysInPeriod_Inclusive(t *testing.T) {
	t.Parallel()

	p := PayrollPeriod{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 15, p.DaysInPeriod())
}

func TestOverrideCovers(t *testing.T) {
	t.Parallel()

	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	open := EmployeeOverride{EffectiveDate: effective}
	bounded := EmployeeOverride{EffectiveDate: effective, EndDate: &end}

	assert.False(t, open.Covers(effective.AddDate(0, 0, -1)))
	assert.True(t, open.Covers(effective))
	assert.True(t, open.Covers(end.AddDate(1, 0, 0)))

	assert.True(t, bounded.Covers(end))
	assert.False(t, bounded.Covers(end.AddDate(0, 0, 1)))
}
