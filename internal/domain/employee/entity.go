package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus enum
type EmploymentStatus string

const (
	EmploymentStatusActive    EmploymentStatus = "active"
	EmploymentStatusOnLeave   EmploymentStatus = "on_leave"
	EmploymentStatusSeparated EmploymentStatus = "separated"
	EmploymentStatusRetired   EmploymentStatus = "retired"
)

// Employee - master record read model. The engine never mutates employee
// master data; it is maintained by the personnel module.
type Employee struct {
	ID               string
	EmployeeCode     string
	FirstName        string
	LastName         string
	AppointmentDate  time.Time
	SeparationDate   *time.Time
	EmploymentStatus EmploymentStatus
	MonthlySalary    *decimal.Decimal
	DailyRate        *decimal.Decimal
	DeletedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the employee may appear on a payroll run.
func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive && e.DeletedAt == nil
}

// EffectiveDailyRate returns the configured daily rate, falling back to
// monthly salary divided by the standard working days.
func (e Employee) EffectiveDailyRate(standardWorkingDays int) decimal.Decimal {
	if e.DailyRate != nil && !e.DailyRate.IsZero() {
		return *e.DailyRate
	}
	if e.MonthlySalary != nil && standardWorkingDays > 0 {
		return e.MonthlySalary.Div(decimal.NewFromInt(int64(standardWorkingDays)))
	}
	return decimal.Zero
}

// EffectiveMonthlySalary returns the monthly salary, falling back to
// daily rate times the standard working days.
func (e Employee) EffectiveMonthlySalary(standardWorkingDays int) decimal.Decimal {
	if e.MonthlySalary != nil && !e.MonthlySalary.IsZero() {
		return *e.MonthlySalary
	}
	if e.DailyRate != nil {
		return e.DailyRate.Mul(decimal.NewFromInt(int64(standardWorkingDays)))
	}
	return decimal.Zero
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
