package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusDraft      PeriodStatus = "draft"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusCompleted  PeriodStatus = "completed"
	PeriodStatusPaid       PeriodStatus = "paid"
)

// PayrollPeriod - one half-month pay run. At most one draft/processing
// period may be open per (year, month, period_number).
type PayrollPeriod struct {
	ID           string
	Year         int
	Month        int
	PeriodNumber int // 1 = first half, 2 = second half
	StartDate    time.Time
	EndDate      time.Time
	PayDate      time.Time
	Status       PeriodStatus
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanEdit reports whether items under this period may still be mutated.
func (p PayrollPeriod) CanEdit() bool {
	return p.Status == PeriodStatusDraft || p.Status == PeriodStatusProcessing
}

// CanFinalize reports whether the period may transition to completed.
func (p PayrollPeriod) CanFinalize() bool {
	return p.Status == PeriodStatusDraft || p.Status == PeriodStatusProcessing
}

// CanMarkAsPaid reports whether the period may transition to paid.
func (p PayrollPeriod) CanMarkAsPaid() bool {
	return p.Status == PeriodStatusCompleted
}

// CanReopen reports whether the period may go back to processing.
// The paid-item guard is enforced separately against the item set.
func (p PayrollPeriod) CanReopen() bool {
	return p.Status == PeriodStatusCompleted
}

// DaysInPeriod returns the calendar day count covered by the period,
// inclusive of both endpoints.
func (p PayrollPeriod) DaysInPeriod() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// ItemStatus enum
type ItemStatus string

const (
	ItemStatusDraft     ItemStatus = "draft"
	ItemStatusComputed  ItemStatus = "computed"
	ItemStatusFinalized ItemStatus = "finalized"
	ItemStatusPaid      ItemStatus = "paid"
)

// PayrollItem - one employee's pay for one period. Totals are always
// re-derived from the full line set, never incremented in place.
type PayrollItem struct {
	ID              string
	PeriodID        string
	EmployeeID      string
	WorkingDays     int
	DailyRate       decimal.Decimal
	BasicPay        decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	Status          ItemStatus
	ProcessedBy     string
	AdjustmentNote  *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// CanEdit reports whether the item itself is still mutable. The owning
// period must also be editable; services check both.
func (i PayrollItem) CanEdit() bool {
	return i.Status == ItemStatusDraft || i.Status == ItemStatusComputed
}

// LineType enum
type LineType string

const (
	LineTypeAllowance  LineType = "allowance"
	LineTypeDeduction  LineType = "deduction"
	LineTypeAdjustment LineType = "adjustment"
)

// PayrollItemLine - append-only breakdown entry on a payroll item.
// Adjustment amounts are signed: positive raises the allowance total,
// negative raises the deduction total.
type PayrollItemLine struct {
	ID               string
	ItemID           string
	LineType         LineType
	Description      string
	Amount           decimal.Decimal
	IsOverride       bool
	CalculationBasis string
	CreatedAt        time.Time
}

// SumLines folds a line set into (totalAllowances, totalDeductions).
func SumLines(lines []PayrollItemLine) (decimal.Decimal, decimal.Decimal) {
	allowances := decimal.Zero
	deductions := decimal.Zero
	for _, line := range lines {
		switch line.LineType {
		case LineTypeAllowance:
			allowances = allowances.Add(line.Amount)
		case LineTypeDeduction:
			deductions = deductions.Add(line.Amount)
		case LineTypeAdjustment:
			if line.Amount.IsNegative() {
				deductions = deductions.Add(line.Amount.Neg())
			} else {
				allowances = allowances.Add(line.Amount)
			}
		}
	}
	return allowances.Round(2), deductions.Round(2)
}

// ApplyTotals recomputes the item's derived amounts from its basic pay
// and the full line set.
func (i *PayrollItem) ApplyTotals(lines []PayrollItemLine) {
	i.TotalAllowances, i.TotalDeductions = SumLines(lines)
	i.GrossPay = i.BasicPay.Add(i.TotalAllowances)
	i.NetPay = i.GrossPay.Sub(i.TotalDeductions)
}

// ComputeBasicPay derives basic pay from a daily rate and working days,
// rounded to centavos.
func ComputeBasicPay(dailyRate decimal.Decimal, workingDays int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(workingDays))).Round(2)
}

// ComponentKind enum
type ComponentKind string

const (
	ComponentKindAllowance ComponentKind = "allowance"
	ComponentKindDeduction ComponentKind = "deduction"
)

// CalculationMethod enum
type CalculationMethod string

const (
	CalculationMethodFixed      CalculationMethod = "fixed"
	CalculationMethodPercentage CalculationMethod = "percentage"
	CalculationMethodFormula    CalculationMethod = "formula"
)

// PayComponent - reusable allowance/deduction rule definition.
type PayComponent struct {
	ID          string
	Code        string
	Name        string
	Kind        ComponentKind
	Method      CalculationMethod
	Amount      decimal.Decimal // fixed amount, or percentage rate for the percentage method
	Frequency   string          // per_period, monthly, annual
	IsProrated  bool            // formula method: scale by working_days / standard
	IsTaxable   bool
	IsMandatory bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmployeeOverride - employee-specific replacement of a component's
// computed amount, time-bounded and audit-tracked.
type EmployeeOverride struct {
	ID            string
	EmployeeID    string
	ComponentID   string
	Amount        decimal.Decimal
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	ComponentCode *string
	ComponentKind *ComponentKind
}

// Covers reports whether the override is in force on the given date.
func (o EmployeeOverride) Covers(date time.Time) bool {
	if date.Before(o.EffectiveDate) {
		return false
	}
	if o.EndDate != nil && date.After(*o.EndDate) {
		return false
	}
	return true
}

// PeriodSummary - aggregate statistics for one period.
type PeriodSummary struct {
	PeriodID        string
	TotalEmployees  int
	TotalBasicPay   decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalGrossPay   decimal.Decimal
	TotalNetPay     decimal.Decimal
	DraftCount      int
	ComputedCount   int
	FinalizedCount  int
	PaidCount       int
}
