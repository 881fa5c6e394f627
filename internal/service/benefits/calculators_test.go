package benefits

import (
	"context"
	"testing"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/config"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func decp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func boolp(v bool) *bool { return &v }

func testConfig() config.PayrollConfig {
	return config.PayrollConfig{
		StandardWorkingDays: 22,
		MonetizableDaysCap:  29,
		TerminalLeaveFactor: d("0.0481927"),
	}
}

func appointedAt(year, month int) employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmploymentStatus: employee.EmploymentStatusActive,
		AppointmentDate:  time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		MonthlySalary:    decp("30000"),
	}
}

// fakeBasicPaySum stubs the single query the year-end pay calculators
// need.
type fakeBasicPaySum struct {
	benefits.BenefitRepository
	total decimal.Decimal
}

func (f fakeBasicPaySum) SumBasicPayPaidInYear(context.Context, string, int) (decimal.Decimal, error) {
	return f.total, nil
}

type fakeBalances struct {
	leave.LeaveRepository
	balances []leave.LeaveBalance
}

func (f fakeBalances) GetBalancesByEmployeeYear(context.Context, string, int) ([]leave.LeaveBalance, error) {
	return f.balances, nil
}

func TestThirteenthMonth_OneTwelfthOfPaidBasic(t *testing.T) {
	t.Parallel()

	calc := yearEndPayCalculator{benefitRepo: fakeBasicPaySum{total: d("264000")}}
	result, err := calc.Compute(context.Background(), appointedAt(2020, 1), 2025)

	require.NoError(t, err)
	assert.True(t, result.Eligibility.Eligible)
	assert.True(t, d("22000").Equal(result.Amount), "amount = %s", result.Amount)
}

func TestThirteenthMonth_NoPaidSalaryIneligible(t *testing.T) {
	t.Parallel()

	calc := yearEndPayCalculator{benefitRepo: fakeBasicPaySum{total: decimal.Zero}}
	result, err := calc.Compute(context.Background(), appointedAt(2020, 1), 2025)

	require.NoError(t, err)
	assert.False(t, result.Eligibility.Eligible)
	assert.True(t, result.Amount.IsZero())
}

func TestPBB_SeptemberBoundary(t *testing.T) {
	t.Parallel()

	calc := pbbCalculator{standardWorkingDays: 22}

	// Appointed in September: exactly 4 service months, eligible.
	september, err := calc.Compute(context.Background(), appointedAt(2025, 9), 2025)
	require.NoError(t, err)
	assert.True(t, september.Eligibility.Eligible)
	assert.True(t, d("30000").Equal(september.Amount))

	// Appointed in October: 3 months, ineligible.
	october, err := calc.Compute(context.Background(), appointedAt(2025, 10), 2025)
	require.NoError(t, err)
	assert.False(t, october.Eligibility.Eligible)
	assert.NotEmpty(t, october.Eligibility.Reason)
}

func TestPBB_DailyRateFallback(t *testing.T) {
	t.Parallel()

	emp := appointedAt(2020, 1)
	emp.MonthlySalary = nil
	emp.DailyRate = decp("1000")

	calc := pbbCalculator{standardWorkingDays: 22}
	result, err := calc.Compute(context.Background(), emp, 2025)

	require.NoError(t, err)
	assert.True(t, d("22000").Equal(result.Amount))
}

func TestLoyaltyAward_ServiceYearLadder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		years    int
		eligible bool
		amount   string
		next     int
	}{
		{9, false, "0", 1},
		{10, true, "10000", 5},
		{15, true, "15000", 5},
		{16, true, "15000", 4},
	}

	calc := loyaltyCalculator{}
	for _, tt := range tests {
		emp := appointedAt(2025-tt.years, 1)
		result, err := calc.Compute(context.Background(), emp, 2025)
		require.NoError(t, err)

		assert.Equal(t, tt.eligible, result.Eligibility.Eligible, "%d years", tt.years)
		assert.True(t, d(tt.amount).Equal(result.Amount), "%d years: amount = %s", tt.years, result.Amount)
		require.NotNil(t, result.NextEligibleYears, "%d years", tt.years)
		assert.Equal(t, tt.next, *result.NextEligibleYears, "%d years", tt.years)
	}
}

func TestLeaveMonetization_CapPerType(t *testing.T) {
	t.Parallel()

	emp := appointedAt(2020, 1)
	emp.MonthlySalary = nil
	emp.DailyRate = decp("1000")

	repo := fakeBalances{balances: []leave.LeaveBalance{
		{ID: "bal-1", CurrentBalance: d("40"), IsMonetizable: boolp(true)},
	}}

	calc := monetizationCalculator{leaveRepo: repo, cfg: testConfig()}
	result, err := calc.Compute(context.Background(), emp, 2025)

	require.NoError(t, err)
	assert.True(t, result.Eligibility.Eligible)
	// min(40, 29) x 1000
	assert.True(t, d("29000").Equal(result.Amount), "amount = %s", result.Amount)
}

func TestLeaveMonetization_SkipsNonMonetizableAndEmpty(t *testing.T) {
	t.Parallel()

	emp := appointedAt(2020, 1)
	emp.DailyRate = decp("1000")

	repo := fakeBalances{balances: []leave.LeaveBalance{
		{ID: "bal-1", CurrentBalance: d("10"), IsMonetizable: boolp(false)},
		{ID: "bal-2", CurrentBalance: decimal.Zero, IsMonetizable: boolp(true)},
	}}

	calc := monetizationCalculator{leaveRepo: repo, cfg: testConfig()}
	result, err := calc.Compute(context.Background(), emp, 2025)

	require.NoError(t, err)
	assert.False(t, result.Eligibility.Eligible)
}

func TestBuildMonetizationPlan_MultipleTypes(t *testing.T) {
	t.Parallel()

	plan := buildMonetizationPlan([]leave.LeaveBalance{
		{ID: "bal-vl", CurrentBalance: d("35"), IsMonetizable: boolp(true)},
		{ID: "bal-sl", CurrentBalance: d("12.5"), IsMonetizable: boolp(true)},
	}, d("1000"), 29)

	require.Len(t, plan.Debits, 2)
	assert.True(t, d("29").Equal(plan.Debits[0].Days))
	assert.True(t, d("12.5").Equal(plan.Debits[1].Days))
	// (29 + 12.5) x 1000
	assert.True(t, d("41500").Equal(plan.Amount), "amount = %s", plan.Amount)
}

func TestServiceMonthsInYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 12, serviceMonthsInYear(time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), 2025))
	assert.Equal(t, 4, serviceMonthsInYear(time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), 2025))
	assert.Equal(t, 0, serviceMonthsInYear(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 2025))
}

func TestYearsOfService_AnniversaryBoundary(t *testing.T) {
	t.Parallel()

	appointment := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, yearsOfService(appointment, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9, yearsOfService(appointment, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, yearsOfService(appointment, time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)))
}
