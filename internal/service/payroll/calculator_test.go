package payroll

import (
	"testing"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
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

var periodStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		EmployeeCode:     "EMP-0001",
		FirstName:        "Maria",
		LastName:         "Santos",
		AppointmentDate:  time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		EmploymentStatus: employee.EmploymentStatusActive,
		MonthlySalary:    decp("22000"),
	}
}

func TestCompute_BasicPayFromMonthlySalaryFallback(t *testing.T) {
	t.Parallel()

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), nil, nil, periodStart, 22, nil)

	// 22000 / 22 = 1000 daily, x 22 days
	assert.True(t, d("1000").Equal(result.DailyRate), "daily = %s", result.DailyRate)
	assert.True(t, d("22000").Equal(result.BasicPay))
	assert.True(t, result.GrossPay.Equal(result.BasicPay))
	assert.True(t, result.NetPay.Equal(result.GrossPay))
}

func TestCompute_ExplicitDailyRateWins(t *testing.T) {
	t.Parallel()

	emp := testEmployee()
	emp.DailyRate = decp("1500")

	calc := NewItemCalculator(22)
	result := calc.Compute(emp, nil, nil, periodStart, 10, nil)

	assert.True(t, d("1500").Equal(result.DailyRate))
	assert.True(t, d("15000").Equal(result.BasicPay))
}

func TestCompute_ZeroWorkingDaysYieldsZeroBasic(t *testing.T) {
	t.Parallel()

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), nil, nil, periodStart, 0, nil)

	assert.True(t, result.BasicPay.IsZero())
	assert.True(t, result.NetPay.IsZero())
}

func TestCompute_ComponentMethods(t *testing.T) {
	t.Parallel()

	components := []payroll.PayComponent{
		{ID: "c-fixed", Name: "Transport", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodFixed, Amount: d("2000")},
		{ID: "c-pct", Name: "Hazard Pay", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodPercentage, Amount: d("10")},
		{ID: "c-formula", Name: "Meal Subsidy", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodFormula, Amount: d("1100"), IsProrated: true},
		{ID: "c-tax", Name: "Withholding Tax", Kind: payroll.ComponentKindDeduction, Method: payroll.CalculationMethodPercentage, Amount: d("5")},
	}

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), components, nil, periodStart, 11, nil)

	// basic = 1000 x 11 = 11000
	require.True(t, d("11000").Equal(result.BasicPay))

	byName := linesByDescription(result.Lines)
	// fixed
	assert.True(t, d("2000").Equal(byName["Transport"].Amount))
	// 10% of basic
	assert.True(t, d("1100").Equal(byName["Hazard Pay"].Amount))
	// formula prorated 11/22
	assert.True(t, d("550").Equal(byName["Meal Subsidy"].Amount))
	// allowances = 3650, gross = 14650, tax = 5% of gross
	assert.True(t, d("14650").Equal(result.GrossPay))
	assert.True(t, d("732.50").Equal(byName["Withholding Tax"].Amount))
	assert.True(t, d("13917.50").Equal(result.NetPay))
}

func TestCompute_OverrideReplacesComputedAmount(t *testing.T) {
	t.Parallel()

	components := []payroll.PayComponent{
		{ID: "c-pct", Name: "Hazard Pay", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodPercentage, Amount: d("10")},
	}
	overrides := []payroll.EmployeeOverride{
		{ComponentID: "c-pct", Amount: d("777"), EffectiveDate: periodStart.AddDate(0, -1, 0)},
	}

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), components, overrides, periodStart, 22, nil)

	byName := linesByDescription(result.Lines)
	assert.True(t, d("777").Equal(byName["Hazard Pay"].Amount))
	assert.True(t, byName["Hazard Pay"].IsOverride)
	assert.Equal(t, "override", byName["Hazard Pay"].CalculationBasis)
}

func TestCompute_ExpiredOverrideIgnored(t *testing.T) {
	t.Parallel()

	components := []payroll.PayComponent{
		{ID: "c-pct", Name: "Hazard Pay", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodPercentage, Amount: d("10")},
	}
	ended := periodStart.AddDate(0, 0, -1)
	overrides := []payroll.EmployeeOverride{
		{ComponentID: "c-pct", Amount: d("777"), EffectiveDate: periodStart.AddDate(-1, 0, 0), EndDate: &ended},
	}

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), components, overrides, periodStart, 22, nil)

	byName := linesByDescription(result.Lines)
	assert.True(t, d("2200").Equal(byName["Hazard Pay"].Amount))
	assert.False(t, byName["Hazard Pay"].IsOverride)
}

func TestCompute_AdjustmentsCarriedIntoTotals(t *testing.T) {
	t.Parallel()

	adjustments := []payroll.PayrollItemLine{
		{LineType: payroll.LineTypeAdjustment, Description: "Retro pay", Amount: d("500")},
		{LineType: payroll.LineTypeAdjustment, Description: "Overpayment recovery", Amount: d("-200")},
	}

	calc := NewItemCalculator(22)
	result := calc.Compute(testEmployee(), nil, nil, periodStart, 22, adjustments)

	assert.True(t, d("500").Equal(result.TotalAllowances))
	assert.True(t, d("200").Equal(result.TotalDeductions))
	assert.True(t, d("22300").Equal(result.NetPay))
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	components := []payroll.PayComponent{
		{ID: "c-fixed", Name: "Transport", Kind: payroll.ComponentKindAllowance, Method: payroll.CalculationMethodFixed, Amount: d("2000")},
		{ID: "c-tax", Name: "Withholding Tax", Kind: payroll.ComponentKindDeduction, Method: payroll.CalculationMethodPercentage, Amount: d("5")},
	}

	calc := NewItemCalculator(22)
	first := calc.Compute(testEmployee(), components, nil, periodStart, 15, nil)
	second := calc.Compute(testEmployee(), components, nil, periodStart, 15, AdjustmentLines(first.Lines))

	assert.True(t, first.NetPay.Equal(second.NetPay))
	assert.True(t, first.GrossPay.Equal(second.GrossPay))
	assert.True(t, first.TotalAllowances.Equal(second.TotalAllowances))
	assert.True(t, first.TotalDeductions.Equal(second.TotalDeductions))
	assert.Len(t, second.Lines, len(first.Lines))
}

func linesByDescription(lines []payroll.PayrollItemLine) map[string]payroll.PayrollItemLine {
	m := make(map[string]payroll.PayrollItemLine, len(lines))
	for _, line := range lines {
		m[line.Description] = line
	}
	return m
}
