package leave

import (
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type InitializeBalancesRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

func (r *InitializeBalancesRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AccrualRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *AccrualRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AccrualResult reports a business outcome. An uninitialized ledger is
// not an error; it comes back as Processed=false with a message.
type AccrualResult struct {
	Processed    bool   `json:"processed"`
	Message      string `json:"message,omitempty"`
	UpdatedTypes int    `json:"updated_types"`
}

// AccrualRunSummary reports one scheduled accrual sweep over all
// active employees.
type AccrualRunSummary struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

type BalanceResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	LeaveTypeID    string          `json:"leave_type_id"`
	LeaveTypeCode  string          `json:"leave_type_code,omitempty"`
	LeaveTypeName  string          `json:"leave_type_name,omitempty"`
	Year           int             `json:"year"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	MonetizedDays  decimal.Decimal `json:"monetized_days"`
	IsMonetizable  bool            `json:"is_monetizable"`
}
