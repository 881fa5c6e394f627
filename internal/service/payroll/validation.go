package payroll

import (
	"time"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
)

// Validator applies the business rules that go beyond per-field DTO
// checks: period window consistency, working day bounds and the
// pre-finalization sweep over a period's items.
type Validator struct {
	standardWorkingDays int
}

func NewValidator(standardWorkingDays int) *Validator {
	return &Validator{standardWorkingDays: standardWorkingDays}
}

// ValidatePeriodDates checks that the declared window belongs to the
// declared year and month and that the pay date does not precede it.
func (v *Validator) ValidatePeriodDates(year, month int, start, end, pay time.Time) error {
	var errs validator.ValidationErrors

	if start.Year() != year || int(start.Month()) != month {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must fall within the declared year and month"})
	}
	if end.Year() != year || int(end.Month()) != month {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must fall within the declared year and month"})
	}
	if pay.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must not be before end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateWorkingDays bounds working days. Half-month runs may still
// bill a full month of attendance, so the ceiling is the larger of the
// period's calendar span and the standard working days.
func (v *Validator) ValidateWorkingDays(workingDays, daysInPeriod int) error {
	var errs validator.ValidationErrors

	limit := daysInPeriod
	if v.standardWorkingDays > limit {
		limit = v.standardWorkingDays
	}

	if workingDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be non-negative"})
	}
	if workingDays > limit {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "exceeds the maximum billable days for the period"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FinalizeIssues sweeps every item in a period and collects all
// blockers at once, so one finalization attempt reports the full list.
func (v *Validator) FinalizeIssues(items []payroll.PayrollItem, linesByItem map[string][]payroll.PayrollItemLine) []payroll.ItemIssue {
	var issues []payroll.ItemIssue

	for _, item := range items {
		if item.Status == payroll.ItemStatusDraft {
			issues = append(issues, payroll.ItemIssue{
				ItemID:     item.ID,
				EmployeeID: item.EmployeeID,
				Reason:     "item has not been computed",
			})
			continue
		}
		if item.NetPay.IsNegative() {
			issues = append(issues, payroll.ItemIssue{
				ItemID:     item.ID,
				EmployeeID: item.EmployeeID,
				Reason:     "net pay is negative",
			})
			continue
		}

		allowances, deductions := payroll.SumLines(linesByItem[item.ID])
		if !allowances.Equal(item.TotalAllowances) || !deductions.Equal(item.TotalDeductions) {
			issues = append(issues, payroll.ItemIssue{
				ItemID:     item.ID,
				EmployeeID: item.EmployeeID,
				Reason:     "stored totals do not match the line sum",
			})
		}
	}

	return issues
}
