package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType - leave credit category (vacation, sick, ...). Accrual is
// expressed as credit days earned per month of service.
type LeaveType struct {
	ID             string
	Code           string
	Name           string
	MonthlyAccrual decimal.Decimal
	IsMonetizable  bool
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeaveBalance - per (employee, leave type, year) credit ledger row.
// Invariant: CurrentBalance never goes negative.
type LeaveBalance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	CurrentBalance decimal.Decimal
	MonetizedDays  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	LeaveTypeCode  *string
	LeaveTypeName  *string
	IsMonetizable  *bool
	MonthlyAccrual *decimal.Decimal
}

// SeedBalance computes the opening balance for a year: the carry-forward
// from the previous year plus the accrual rate over the months remaining
// after the appointment (12 for employees appointed before the year).
func SeedBalance(carryForward, monthlyAccrual decimal.Decimal, year int, appointmentDate time.Time) decimal.Decimal {
	months := MonthsRemaining(year, appointmentDate)
	return carryForward.Add(monthlyAccrual.Mul(decimal.NewFromInt(int64(months)))).Round(3)
}

// MonthsRemaining returns how many months of the year the employee
// serves, counting the appointment month itself.
func MonthsRemaining(year int, appointmentDate time.Time) int {
	if appointmentDate.Year() > year {
		return 0
	}
	if appointmentDate.Year() < year {
		return 12
	}
	return 12 - int(appointmentDate.Month()) + 1
}
