package payroll

import (
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type CreatePeriodRequest struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	PeriodNumber int    `json:"period_number"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PayDate      string `json:"pay_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.PeriodNumber != 1 && r.PeriodNumber != 2 {
		errs = append(errs, validator.ValidationError{Field: "period_number", Message: "must be 1 or 2"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be before end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PeriodResponse struct {
	ID           string `json:"id"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	PeriodNumber int    `json:"period_number"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PayDate      string `json:"pay_date"`
	Status       string `json:"status"`
	CreatedBy    string `json:"created_by"`
}

type PeriodFilter struct {
	Year   *int    `json:"year,omitempty"`
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

type ListPeriodsResponse struct {
	Data       []PeriodResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

type PeriodSummaryResponse struct {
	PeriodID        string          `json:"period_id"`
	TotalEmployees  int             `json:"total_employees"`
	TotalBasicPay   decimal.Decimal `json:"total_basic_pay"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	DraftCount      int             `json:"draft_count"`
	ComputedCount   int             `json:"computed_count"`
	FinalizedCount  int             `json:"finalized_count"`
	PaidCount       int             `json:"paid_count"`
}

// ========== ITEM DTOs ==========

type EmployeeWorkingDays struct {
	EmployeeID  string `json:"employee_id"`
	WorkingDays *int   `json:"working_days,omitempty"` // nil = standard
}

type BulkProcessRequest struct {
	Employees []EmployeeWorkingDays `json:"employees"`
}

func (r *BulkProcessRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employees", Message: "at least one employee is required"})
	}
	for _, e := range r.Employees {
		if e.EmployeeID == "" {
			errs = append(errs, validator.ValidationError{Field: "employees", Message: "employee_id is required on every entry"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkProcessFailure struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

type BulkProcessResult struct {
	ProcessedCount int                  `json:"processed_count"`
	FailedCount    int                  `json:"failed_count"`
	Failures       []BulkProcessFailure `json:"failures,omitempty"`
	Items          []ItemResponse       `json:"items,omitempty"`
}

type AdjustWorkingDaysRequest struct {
	WorkingDays int    `json:"working_days"`
	Reason      string `json:"reason"`
}

func (r *AdjustWorkingDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkingDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be non-negative"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddAdjustmentRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // signed: negative deducts
}

func (r *AddAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "is required"})
	}
	if r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineResponse struct {
	ID               string          `json:"id"`
	LineType         string          `json:"line_type"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	IsOverride       bool            `json:"is_override"`
	CalculationBasis string          `json:"calculation_basis,omitempty"`
}

type ItemResponse struct {
	ID              string          `json:"id"`
	PeriodID        string          `json:"period_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	WorkingDays     int             `json:"working_days"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	BasicPay        decimal.Decimal `json:"basic_pay"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
	Status          string          `json:"status"`
	AdjustmentNote  *string         `json:"adjustment_note,omitempty"`
}

// PayslipBreakdown is the exact contract the payslip/report layer
// consumes.
type PayslipBreakdown struct {
	Employee    PayslipEmployee    `json:"employee"`
	Calculation PayslipCalculation `json:"calculation"`
	LineItems   []LineResponse     `json:"line_items"`
}

type PayslipEmployee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

type PayslipCalculation struct {
	WorkingDays     int             `json:"working_days"`
	DailyRate       decimal.Decimal `json:"daily_rate"`
	BasicPay        decimal.Decimal `json:"basic_pay"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// ========== COMPONENT DTOs ==========

type CreateComponentRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`   // "allowance" or "deduction"
	Method      string          `json:"method"` // "fixed", "percentage" or "formula"
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency,omitempty"`
	IsProrated  *bool           `json:"is_prorated,omitempty"`
	IsTaxable   *bool           `json:"is_taxable,omitempty"`
	IsMandatory *bool           `json:"is_mandatory,omitempty"`
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Kind != string(ComponentKindAllowance) && r.Kind != string(ComponentKindDeduction) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'allowance' or 'deduction'"})
	}
	if !validator.IsInSlice(r.Method, []string{string(CalculationMethodFixed), string(CalculationMethodPercentage), string(CalculationMethodFormula)}) {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "must be 'fixed', 'percentage' or 'formula'"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID       string
	Name     *string          `json:"name,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type ComponentResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency,omitempty"`
	IsProrated  bool            `json:"is_prorated"`
	IsTaxable   bool            `json:"is_taxable"`
	IsMandatory bool            `json:"is_mandatory"`
	IsActive    bool            `json:"is_active"`
}

// ========== OVERRIDE DTOs ==========

type CreateOverrideRequest struct {
	EmployeeID    string          `json:"-"`
	ComponentID   string          `json:"component_id"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate string          `json:"effective_date"`
	EndDate       *string         `json:"end_date,omitempty"`
}

func (r *CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ComponentID == "" {
		errs = append(errs, validator.ValidationError{Field: "component_id", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	effective, ok := validator.IsValidDate(r.EffectiveDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EndDate != nil {
		end, endOK := validator.IsValidDate(*r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else if ok && end.Before(effective) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before effective_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	ComponentID   string          `json:"component_id"`
	ComponentCode string          `json:"component_code,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate string          `json:"effective_date"`
	EndDate       *string         `json:"end_date,omitempty"`
}
