package payroll

import (
	"fmt"
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// ItemCalculator derives one employee's pay lines and totals for a
// period. It is a pure computation: same inputs, same outputs.
type ItemCalculator struct {
	standardWorkingDays int
}

func NewItemCalculator(standardWorkingDays int) *ItemCalculator {
	return &ItemCalculator{standardWorkingDays: standardWorkingDays}
}

// ComputedItem is the calculator output before persistence.
type ComputedItem struct {
	WorkingDays     int
	DailyRate       decimal.Decimal
	BasicPay        decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	Lines           []payroll.PayrollItemLine
}

// Compute evaluates every active component against the employee,
// applying any override in force on the period start date, then folds
// the line set (including carried-over manual adjustments) into totals.
//
// Percentage allowances evaluate against basic pay; percentage
// deductions against gross pay, since deductions are computed after
// allowances. The basis used is recorded on each line.
func (c *ItemCalculator) Compute(
	emp employee.Employee,
	components []payroll.PayComponent,
	overrides []payroll.EmployeeOverride,
	periodStart time.Time,
	workingDays int,
	adjustments []payroll.PayrollItemLine,
) ComputedItem {
	dailyRate := emp.EffectiveDailyRate(c.standardWorkingDays).Round(4)
	basicPay := payroll.ComputeBasicPay(dailyRate, workingDays)

	overrideByComponent := make(map[string]payroll.EmployeeOverride)
	for _, o := range overrides {
		if o.Covers(periodStart) {
			overrideByComponent[o.ComponentID] = o
		}
	}

	var lines []payroll.PayrollItemLine

	// Allowances first: percentage deductions need the gross.
	for _, comp := range components {
		if comp.Kind != payroll.ComponentKindAllowance {
			continue
		}
		lines = append(lines, c.evaluateComponent(comp, overrideByComponent, basicPay, workingDays))
	}

	allowanceTotal, _ := payroll.SumLines(lines)
	grossPay := basicPay.Add(allowanceTotal)

	for _, comp := range components {
		if comp.Kind != payroll.ComponentKindDeduction {
			continue
		}
		lines = append(lines, c.evaluateComponent(comp, overrideByComponent, grossPay, workingDays))
	}

	lines = append(lines, adjustments...)

	item := payroll.PayrollItem{BasicPay: basicPay}
	item.ApplyTotals(lines)

	return ComputedItem{
		WorkingDays:     workingDays,
		DailyRate:       dailyRate,
		BasicPay:        basicPay,
		TotalAllowances: item.TotalAllowances,
		TotalDeductions: item.TotalDeductions,
		GrossPay:        item.GrossPay,
		NetPay:          item.NetPay,
		Lines:           lines,
	}
}

// evaluateComponent produces one line for a component. base is the
// percentage reference amount (basic pay for allowances, gross pay for
// deductions).
func (c *ItemCalculator) evaluateComponent(
	comp payroll.PayComponent,
	overrideByComponent map[string]payroll.EmployeeOverride,
	base decimal.Decimal,
	workingDays int,
) payroll.PayrollItemLine {
	lineType := payroll.LineTypeAllowance
	if comp.Kind == payroll.ComponentKindDeduction {
		lineType = payroll.LineTypeDeduction
	}

	if o, ok := overrideByComponent[comp.ID]; ok {
		return payroll.PayrollItemLine{
			LineType:         lineType,
			Description:      comp.Name,
			Amount:           o.Amount.Round(2),
			IsOverride:       true,
			CalculationBasis: "override",
		}
	}

	var amount decimal.Decimal
	var basis string

	switch comp.Method {
	case payroll.CalculationMethodFixed:
		amount = comp.Amount
		basis = "fixed"
	case payroll.CalculationMethodPercentage:
		amount = base.Mul(comp.Amount).Div(decimal.NewFromInt(100))
		basis = fmt.Sprintf("%s%% of %s", comp.Amount.String(), base.StringFixed(2))
	case payroll.CalculationMethodFormula:
		amount = comp.Amount
		basis = "formula"
		if comp.IsProrated && c.standardWorkingDays > 0 {
			amount = amount.
				Mul(decimal.NewFromInt(int64(workingDays))).
				Div(decimal.NewFromInt(int64(c.standardWorkingDays)))
			basis = fmt.Sprintf("formula prorated %d/%d", workingDays, c.standardWorkingDays)
		}
	}

	return payroll.PayrollItemLine{
		LineType:         lineType,
		Description:      comp.Name,
		Amount:           amount.Round(2),
		CalculationBasis: basis,
	}
}

// AdjustmentLines filters a line set down to the manual adjustments,
// which survive recalculation.
func AdjustmentLines(lines []payroll.PayrollItemLine) []payroll.PayrollItemLine {
	var adjustments []payroll.PayrollItemLine
	for _, line := range lines {
		if line.LineType == payroll.LineTypeAdjustment {
			adjustments = append(adjustments, line)
		}
	}
	return adjustments
}
